// Package utils provides shared low-level helpers used throughout the
// rolefinder internals: resource closing with logged failures, whitespace
// normalisation, and string truncation for log output.
package utils
