package static

import "embed"

// FS exposes the site's stylesheet and script for HTTP serving.
//
//go:embed *.css *.js
var FS embed.FS
