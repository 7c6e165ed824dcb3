// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"strings"
	"unicode/utf8"

	"topictree/internal/generator"
)

// Validation limits for API inputs.
const (
	maxTopicLen   = 300
	maxModelLen   = 100
	maxBodyBytes  = 64 << 10
	maxPageSize   = 100
	defaultPageSz = 20
)

// validateTreeRequest normalizes the request in place and returns the first
// problem found, or "". Deeper checks (counts, mode, taxonomy names) are
// left to generator.Request.Validate.
func validateTreeRequest(req *generator.Request) string {
	req.Topic = strings.TrimSpace(req.Topic)
	req.Model = strings.TrimSpace(req.Model)

	if req.Topic == "" {
		return "Topic is required."
	}
	if utf8.RuneCountInString(req.Topic) > maxTopicLen {
		return "Topic is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(req.Model) > maxModelLen {
		return "Model name is too long (max 100 characters)."
	}
	return ""
}
