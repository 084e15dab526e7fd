// Package web holds the embedded page templates and static assets.
package web

import "embed"

// TemplatesFS holds the page templates. Every page defines "content" and is
// rendered inside templates/layout.html.
//
//go:embed templates/*.html
var TemplatesFS embed.FS

// StaticFS embeds the stylesheet served under /static/.
//
//go:embed static/*
var StaticFS embed.FS
