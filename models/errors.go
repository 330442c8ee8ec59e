package models

import "errors"

// ErrInsufficientData marks a series (or its curated feature rows) as too
// short to evaluate. It is non-fatal: the instrument is skipped and the run
// continues.
var ErrInsufficientData = errors.New("insufficient data")
