package domain

import (
	"path"
	"slices"
	"strings"
)

// FileKind names the upload area of a project.
type FileKind string

const (
	FileKindReference  FileKind = "reference"
	FileKindDrawing    FileKind = "drawing"
	FileKindGallery    FileKind = "gallery"
	FileKindWhiteboard FileKind = "whiteboard"
)

// FileKinds lists every upload area in directory order.
var FileKinds = []FileKind{FileKindReference, FileKindDrawing, FileKindGallery, FileKindWhiteboard}

var (
	imageExtensions   = []string{"png", "jpg", "jpeg", "gif", "webp"}
	drawingExtensions = []string{"pdf", "dwg", "dxf", "png", "jpg", "jpeg"}
)

func (k FileKind) Valid() bool {
	return slices.Contains(FileKinds, k)
}

// Dir is the directory the kind is stored under inside a project.
func (k FileKind) Dir() string {
	if k == FileKindDrawing {
		return "drawings"
	}
	return string(k)
}

// Allows reports whether a file name carries one of the kind's extensions.
// The comparison ignores case.
func (k FileKind) Allows(name string) bool {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
	if ext == "" {
		return false
	}
	if k == FileKindDrawing {
		return slices.Contains(drawingExtensions, ext)
	}
	return slices.Contains(imageExtensions, ext)
}
