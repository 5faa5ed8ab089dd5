// Package assets embeds the form schemas and the email templates.
package assets

import "embed"

//go:embed forms all:templates
var FS embed.FS
