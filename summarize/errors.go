package summarize

import "errors"

// ErrUnknownStrategy reports a strategy selector outside the supported
// set. It is raised before any model call is made.
var ErrUnknownStrategy = errors.New("unknown summarization strategy")
