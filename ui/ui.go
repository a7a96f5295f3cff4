// Package ui embeds the HTML templates and static assets of the web front end.
package ui

import "embed"

// Files holds templates/base.gohtml, templates/pages/<page>/*.gohtml and static/.
//
//go:embed templates static
var Files embed.FS
