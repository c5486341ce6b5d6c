// Package resources embeds the HTML templates and public assets.
package resources

import (
	"embed"
	"io/fs"
)

//go:embed views public
var files embed.FS

// Views returns the template tree rooted at views/.
func Views() fs.FS {
	sub, err := fs.Sub(files, "views")
	if err != nil {
		panic(err)
	}
	return sub
}

// Public returns the static asset tree rooted at public/.
func Public() fs.FS {
	sub, err := fs.Sub(files, "public")
	if err != nil {
		panic(err)
	}
	return sub
}
