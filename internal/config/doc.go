// Package config holds the format-agnostic document model. The HCL loader
// translates raw files into this model; every later pass (resolution,
// ordering, validation) consumes it and never touches the filesystem.
//
// The model is treated as immutable once the loader returns it.
package config
