package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrUnauthorized indicates the TMDB API key was rejected
	ErrUnauthorized = errors.New("tmdb api key is invalid")

	// ErrNotFound indicates the requested movie does not exist
	ErrNotFound = errors.New("movie not found")

	// ErrAPIUnavailable indicates the TMDB API could not be reached
	ErrAPIUnavailable = errors.New("tmdb api is unreachable")

	// ErrMissingAPIKey indicates no API key was configured
	ErrMissingAPIKey = errors.New("tmdb api key is not configured")

	// ErrStaleSelection indicates a detail result arrived for a selection
	// that is no longer active
	ErrStaleSelection = errors.New("selection changed before details loaded")
)

// ErrorKind classifies the single user-visible error slot
type ErrorKind int

const (
	// NetworkFailure: a request failed (transport error, bad status, malformed body)
	NetworkFailure ErrorKind = iota + 1
	// EmptyResult: a deliberate search produced no displayable movies
	EmptyResult
	// PartialDegradation: some home feeds loaded and some did not
	PartialDegradation
)

// String returns the kind name
func (k ErrorKind) String() string {
	switch k {
	case NetworkFailure:
		return "NetworkFailure"
	case EmptyResult:
		return "EmptyResult"
	case PartialDegradation:
		return "PartialDegradation"
	default:
		return "Unknown"
	}
}

// ViewError is the user-visible error condition. At most one is active.
type ViewError struct {
	Kind ErrorKind
	Err  error // underlying cause, nil for EmptyResult
}

// Error implements the error interface
func (e *ViewError) Error() string {
	if e.Err != nil {
		return e.Kind.String() + ": " + e.Err.Error()
	}
	return e.Kind.String()
}

// Unwrap returns the underlying cause
func (e *ViewError) Unwrap() error { return e.Err }

// Message returns the text shown to the user
func (e *ViewError) Message() string {
	switch e.Kind {
	case EmptyResult:
		return "No results found for your search."
	case NetworkFailure:
		return "An error occurred while searching. Check your connection or try again later."
	case PartialDegradation:
		return "Some sections could not be loaded."
	default:
		return "Something went wrong."
	}
}

// NewViewError builds a ViewError of the given kind
func NewViewError(kind ErrorKind, err error) *ViewError {
	return &ViewError{Kind: kind, Err: err}
}
