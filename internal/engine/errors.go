package engine

import "errors"

// ErrConfig marks fatal configuration errors detected at construction.
// Runtime data conditions (bad sizes, failed loads, out-of-range indices)
// are never fatal; they fall back, clamp, or surface through LastLoadError.
var ErrConfig = errors.New("engine: invalid configuration")
