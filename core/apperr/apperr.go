package apperr

import (
	"errors"
	"fmt"
)

// Sentinel kinds. Match with errors.Is.
var (
	// ErrConfiguration marks missing or invalid settings. Always fatal, raised before any I/O.
	ErrConfiguration = errors.New("configuration error")
	// ErrConnection marks an unreachable sales database.
	ErrConnection = errors.New("connection error")
	// ErrQuery marks a malformed query or a schema mismatch.
	ErrQuery = errors.New("query error")
	// ErrUpstream marks a non-2xx answer or a network failure from the partner API.
	ErrUpstream = errors.New("upstream error")
	// ErrQueue marks a failed read or write of the failed-turnover queue.
	ErrQueue = errors.New("queue error")
)

// Error wraps an underlying error with its kind and the operation that failed.
type Error struct {
	// Kind is one of the sentinel errors above.
	Kind error
	// Op names the failing operation (e.g. "fetch enrolled customers").
	Op string
	// Status is the HTTP status for upstream errors, 0 when unknown.
	Status int
	// Err is the underlying cause.
	Err error
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Configuration returns a configuration error.
func Configuration(op string, err error) error {
	return &Error{Kind: ErrConfiguration, Op: op, Err: err}
}

// Connection returns a database connection error.
func Connection(op string, err error) error {
	return &Error{Kind: ErrConnection, Op: op, Err: err}
}

// Query returns a database query error.
func Query(op string, err error) error {
	return &Error{Kind: ErrQuery, Op: op, Err: err}
}

// Upstream returns a partner API error. Pass status 0 for network failures.
func Upstream(op string, status int, err error) error {
	return &Error{Kind: ErrUpstream, Op: op, Status: status, Err: err}
}

// Queue returns a failed-turnover queue error.
func Queue(op string, err error) error {
	return &Error{Kind: ErrQueue, Op: op, Err: err}
}

// StatusOf returns the HTTP status carried by an upstream error, or 0.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}
