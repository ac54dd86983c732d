// Package config provides the Configuration value type used by things and
// channels to carry device-specific settings.
//
// A Configuration is a string-keyed map of typed values. Values are
// normalized on construction so that equality does not depend on the
// numeric width a decoder happened to produce: all integer types become
// int64 and all floats become float64, recursively through nested maps
// and slices. Two configurations compare equal when they hold the same
// key set with deep-equal normalized values; key order never matters.
//
// Configurations are plain maps and are not safe for concurrent mutation.
// Code that treats a Configuration as immutable (the thing model does)
// may share it freely; Copy exists for callers that need to mutate.
package config
