// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug derives ASCII slugs and export file names from topic titles.
package slug

import (
	"regexp"
	"strings"
	"time"
)

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, whitespace or hyphen.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// whitespace runs become a single hyphen.
	whitespace = regexp.MustCompile(`\s+`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)

	// transliterate spells out the German special letters before stripping.
	transliterate = strings.NewReplacer(
		"ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss",
		"Ä", "ae", "Ö", "oe", "Ü", "ue", "ẞ", "ss",
	)
)

// ExportPrefix starts every exported tree file name.
const ExportPrefix = "themenbaum"

// timestampLayout is YYYYMMDD_HHMMSS.
const timestampLayout = "20060102_150405"

// Generate creates a URL-friendly slug from the given string.
// Example: "Größen & Einheiten 2026" → "groessen-einheiten-2026"
func Generate(s string) string {
	result := transliterate.Replace(strings.TrimSpace(s))
	result = strings.ToLower(result)
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = whitespace.ReplaceAllString(result, "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}

// Filename returns the export file name of a tree built for topic at the
// given time: themenbaum_<slug>_<YYYYMMDD_HHMMSS>.json. A topic without any
// usable characters drops the slug segment.
func Filename(topic string, at time.Time) string {
	parts := []string{ExportPrefix}
	if s := Generate(topic); s != "" {
		parts = append(parts, s)
	}
	parts = append(parts, at.Format(timestampLayout))
	return strings.Join(parts, "_") + ".json"
}
