package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrNoToken is returned before any request is made when an
	// authenticated call has no bearer token.
	ErrNoToken = errors.New("no token found")

	// ErrMalformedResponse wraps every 2xx body that does not match the
	// expected entity.
	ErrMalformedResponse = errors.New("malformed response")
)

// Fallback messages used when the error body carries none.
const (
	MsgGeneric      = "Something went wrong"
	MsgRegister     = "Registration failed!"
	MsgLogin        = "Login failed! Check your email or password."
	MsgGoogleLogin  = "Google login failed. Please try again."
	MsgLoadComments = "Failed to load comments"
)

// APIError is a non-2xx backend response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedResponse, fmt.Sprintf(format, args...))
}

// errorBody covers the shapes the backend uses for failures: a plain
// {"message"} object, identity errors as [{"code","description"}] and
// validation problem details with an errors map.
type errorBody struct {
	Message string          `json:"message"`
	Title   string          `json:"title"`
	Errors  json.RawMessage `json:"errors"`
}

// errorMessage extracts a user-facing message from a failed response body,
// returning fallback when nothing usable is found.
func errorMessage(body []byte, fallback string) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return fallback
	}
	if m := strings.TrimSpace(eb.Message); m != "" {
		return m
	}

	var list []struct {
		Description string `json:"description"`
	}
	if json.Unmarshal(eb.Errors, &list) == nil && len(list) > 0 && list[0].Description != "" {
		return list[0].Description
	}

	var fields map[string][]string
	if json.Unmarshal(eb.Errors, &fields) == nil && len(fields) > 0 {
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			if len(fields[k]) > 0 && fields[k][0] != "" {
				return fields[k][0]
			}
		}
	}

	if t := strings.TrimSpace(eb.Title); t != "" {
		return t
	}
	return fallback
}
