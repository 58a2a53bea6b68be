package statistics

import "errors"

// ErrUnexpectedStatus is returned when the task source answers with a non-2xx status.
var ErrUnexpectedStatus = errors.New("unexpected status from task source")
