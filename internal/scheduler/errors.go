package scheduler

import "errors"

var (
	// ErrEncodeFailed marks a task whose encode step returned an error.
	// The scheduler does not retry; resubmitting the file is the
	// caller's decision.
	ErrEncodeFailed = errors.New("encode failed")

	// ErrScoreFailed marks a task whose candidate could not be scored
	// and that had no best-effort candidate to fall back to.
	ErrScoreFailed = errors.New("score failed")

	// ErrCancelled marks a task cut short by run cancellation with no
	// best-effort candidate to promote.
	ErrCancelled = errors.New("cancelled")
)
