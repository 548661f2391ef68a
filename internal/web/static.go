package web

import "embed"

// staticFiles is the planning UI. app.js reloads /state whenever the
// status stream reports a change. NewServer serves it at / and /static/.
//
//go:embed static/*
var staticFiles embed.FS
