// Package ner defines the optional named-entity-recognition boundary of the
// rolefinder pipeline. The nerserver subpackage provides a client for
// HTTP-based entity extraction services.
package ner
