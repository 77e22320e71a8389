// Package record holds the raw input side of the rendering pipeline: record
// collections as returned by an API client and the path resolver that walks
// a key chain through a nested record. Resolution distinguishes a value that
// is present (even when nil or blank) from a key chain that does not resolve,
// which is what lets fields choose between omission and an explicit
// missing marker.
package record
