// Package static embeds the single-page client shell.
package static

import (
	"embed"
	"io/fs"
)

//go:embed index.html app.js style.css
var embedded embed.FS

func FS() fs.FS {
	return embedded
}
