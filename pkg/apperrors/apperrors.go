package apperrors

import (
	"errors"
	"net/http"
	"strings"
)

// Validation is one failure reason with the HTTP status it maps to.
type Validation struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"errorMessage"`
}

// AggregateError carries every independent failure found while validating a request.
type AggregateError struct {
	Validations []Validation `json:"validations"`
}

func (e *AggregateError) Error() string {
	msgs := make([]string, len(e.Validations))
	for i, v := range e.Validations {
		msgs[i] = v.Message
	}
	return strings.Join(msgs, "; ")
}

// Has reports whether any entry carries the given status code.
func (e *AggregateError) Has(status int) bool {
	for _, v := range e.Validations {
		if v.StatusCode == status {
			return true
		}
	}
	return false
}

// New builds an aggregate holding a single entry.
func New(status int, msg string) *AggregateError {
	return &AggregateError{Validations: []Validation{{StatusCode: status, Message: msg}}}
}

func NotFound(msg string) *AggregateError     { return New(http.StatusNotFound, msg) }
func Conflict(msg string) *AggregateError     { return New(http.StatusConflict, msg) }
func Unauthorized(msg string) *AggregateError { return New(http.StatusUnauthorized, msg) }
func Forbidden(msg string) *AggregateError    { return New(http.StatusForbidden, msg) }

// As unwraps err into an *AggregateError.
func As(err error) (*AggregateError, bool) {
	var agg *AggregateError
	if errors.As(err, &agg) {
		return agg, true
	}
	return nil, false
}

// Collector accumulates validation entries and yields nil when nothing was added.
type Collector struct {
	validations []Validation
}

func (c *Collector) Add(status int, msg string) {
	c.validations = append(c.validations, Validation{StatusCode: status, Message: msg})
}

// Check adds the entry when cond is false.
func (c *Collector) Check(cond bool, status int, msg string) {
	if !cond {
		c.Add(status, msg)
	}
}

func (c *Collector) Len() int {
	return len(c.validations)
}

func (c *Collector) Err() error {
	if len(c.validations) == 0 {
		return nil
	}
	return &AggregateError{Validations: c.validations}
}
