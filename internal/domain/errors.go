package domain

import "errors"

var (
	ErrNotFound               = errors.New("not found")
	ErrMissingOriginCity      = errors.New("missing origin city")
	ErrMissingDestinationCity = errors.New("missing destination city")
	ErrMissingCredentials     = errors.New("missing credentials")
	ErrSearchFailed           = errors.New("search failed")
	ErrResultMalformed        = errors.New("result malformed")
)

// Kind classifies a failed submission.
type Kind string

const (
	KindMissingInput       Kind = "missing_input"
	KindMissingCredentials Kind = "missing_credentials"
	KindEngineFailure      Kind = "engine_failure"
	KindResultMalformed    Kind = "result_malformed"
)

// Failure ends a submission. Message is what the user sees; Hint is optional guidance.
type Failure struct {
	Kind    Kind
	Message string
	Hint    string
	Err     error
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return string(f.Kind) + ": " + f.Message
	}
	return string(f.Kind) + ": " + f.Err.Error()
}

func (f *Failure) Unwrap() error { return f.Err }

// AsFailure returns the *Failure in err's chain, if any.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}
