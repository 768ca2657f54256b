package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/go-github/v62/github"
)

// ErrInvalidResponse reports a payload that could not be decoded or lacks required fields.
var ErrInvalidResponse = errors.New("invalid response from GitHub API")

// RateLimitedError is returned when GitHub refused a request because a quota ran out.
// Reset is the epoch second at which the quota is restored, or 0 when unknown.
type RateLimitedError struct {
	Reset int64
	Err   error
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited until %d: %v", e.Reset, e.Err)
}

func (e *RateLimitedError) Unwrap() error { return e.Err }

// APIError is any other non-success response. Message carries the upstream text.
type APIError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github api status %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// classifyError maps go-github errors onto the gateway error taxonomy.
func classifyError(err error) error {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return &RateLimitedError{Reset: rateErr.Rate.Reset.Unix(), Err: err}
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		reset := time.Now().Add(abuseErr.GetRetryAfter())
		return &RateLimitedError{Reset: reset.Unix(), Err: err}
	}

	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		status := respErr.Response.StatusCode
		if status == http.StatusForbidden || status == http.StatusTooManyRequests {
			return &RateLimitedError{Reset: parseReset(respErr.Response.Header), Err: err}
		}
		msg := respErr.Message
		if msg == "" {
			msg = http.StatusText(status)
		}
		return &APIError{StatusCode: status, Message: msg, Err: err}
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return err
}

// parseReset reads X-RateLimit-Reset; a missing or malformed header yields 0.
func parseReset(h http.Header) int64 {
	reset, err := strconv.ParseInt(h.Get("X-RateLimit-Reset"), 10, 64)
	if err != nil {
		return 0
	}
	return reset
}
