// Package web embeds the browser contact form.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var content embed.FS

// Static returns the form assets rooted at the static directory
func Static() fs.FS {
	sub, err := fs.Sub(content, "static")
	if err != nil {
		// static is embedded at build time, Sub cannot fail
		panic(err)
	}
	return sub
}

// IndexHTML returns the contact page markup
func IndexHTML() []byte {
	data, _ := content.ReadFile("static/index.html")
	return data
}
