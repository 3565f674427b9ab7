package layout

import "errors"

// ErrUnsupportedDirection names the condition of a run whose font
// lacks horizontal line metrics. No function in this package returns
// it: Layout skips such a run's contribution and always returns a
// best-effort result.
var ErrUnsupportedDirection = errors.New("layout: font does not support horizontal line metrics")

// ErrMissingFont mirrors the same omission policy for an unknown font
// handle.
var ErrMissingFont = errors.New("layout: font handle not known to font storage")
