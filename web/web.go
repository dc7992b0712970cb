// Package web holds the HTML templates and static assets served by the
// map application. They are embedded so the binary is self-contained.
package web

import "embed"

//go:embed templates/* static/*
var FS embed.FS
