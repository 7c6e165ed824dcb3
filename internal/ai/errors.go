// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"unicode/utf8"
)

// Transient failure kinds. Callers test with errors.Is.
var (
	ErrRateLimit = errors.New("ai: rate limit exceeded")
	ErrAPI       = errors.New("ai: transient api error")
)

// maxErrorBody bounds how much of a provider error body ends up in messages.
const maxErrorBody = 500

// APIError is a non-2xx response from a provider.
type APIError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	body := e.Body
	if utf8.RuneCountInString(body) > maxErrorBody {
		body = string([]rune(body)[:maxErrorBody]) + "..."
	}
	return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, body)
}

// Unwrap classifies the status code: 429 is a rate limit, 408/409/5xx are
// transient API errors, everything else (bad request, auth) has no kind.
func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimit
	case e.StatusCode == http.StatusRequestTimeout,
		e.StatusCode == http.StatusConflict,
		e.StatusCode >= 500:
		return ErrAPI
	}
	return nil
}

// IsTransient reports whether err is worth retrying: rate limits, transient
// API errors and network timeouts.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrRateLimit) || errors.Is(err, ErrAPI) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
