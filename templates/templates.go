// Package templates embeds the HTML pages and the printable invoice.
package templates

import "embed"

//go:embed *.html
var FS embed.FS
