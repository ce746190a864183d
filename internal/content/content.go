// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package content prepares rich post bodies for storage: markdown
// submitted by the admin editor is converted to HTML, and all HTML
// passes a user-generated-content sanitization policy before it is
// persisted or served.
package content

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// htmlSanitizer allows safe HTML tags for user-generated content while
// stripping potentially dangerous elements like <script> and event handlers.
var htmlSanitizer = bluemonday.UGCPolicy()

// RenderMarkdown converts markdown source to sanitized HTML.
func RenderMarkdown(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return SanitizeHTML(buf.String()), nil
}

// SanitizeHTML strips unsafe markup from rich HTML content.
func SanitizeHTML(html string) string {
	return htmlSanitizer.Sanitize(html)
}
