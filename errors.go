package cogs

import "errors"

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrSentenceMismatch indicates a gold and system pair whose sentences
	// differ, so the comparison is meaningless.
	ErrSentenceMismatch = errors.New("cogs: gold and system sentences differ")

	// ErrNoMetrics indicates an Evaluator configured without metrics.
	ErrNoMetrics = errors.New("cogs: no metrics configured")
)
