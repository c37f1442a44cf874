package domain

import "errors"

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidProfile  = errors.New("invalid profile")
	ErrNoPageContent   = errors.New("No results from script execution.")
)

type ErrorKind string

const (
	KindMissingCredential ErrorKind = "missing_credential"
	KindMissingTarget     ErrorKind = "missing_target"
	KindUpstream          ErrorKind = "upstream_error"
	KindEmptyResponse     ErrorKind = "empty_response"
	KindMalformedResponse ErrorKind = "malformed_response"
	KindExtractionDenied  ErrorKind = "extraction_denied"
)

// Kind sentinels, matched with errors.Is against any *Error of that kind.
var (
	ErrMissingCredential = errors.New("missing credential")
	ErrMissingTarget     = errors.New("missing target")
	ErrUpstream          = errors.New("upstream error")
	ErrEmptyResponse     = errors.New("empty response")
	ErrMalformedResponse = errors.New("malformed response")
	ErrExtractionDenied  = errors.New("extraction denied")
)

var kindSentinels = map[ErrorKind]error{
	KindMissingCredential: ErrMissingCredential,
	KindMissingTarget:     ErrMissingTarget,
	KindUpstream:          ErrUpstream,
	KindEmptyResponse:     ErrEmptyResponse,
	KindMalformedResponse: ErrMalformedResponse,
	KindExtractionDenied:  ErrExtractionDenied,
}

// Error is a pipeline failure carrying a user-facing message.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func NewError(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func (e *Error) Error() string {
	switch {
	case e.Err == nil:
		return e.Message
	case e.Message == "":
		return e.Err.Error()
	default:
		return e.Message + ": " + e.Err.Error()
	}
}

func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if sentinel, ok := kindSentinels[e.Kind]; ok {
		errs = append(errs, sentinel)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}

	return errs
}

// KindOf returns the kind of the outermost *Error in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var kindErr *Error
	if !errors.As(err, &kindErr) {
		return "", false
	}

	return kindErr.Kind, true
}
