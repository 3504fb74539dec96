// Package storage persists uploaded ticket images under the static asset
// root. Files are grouped by ticket type and image category, and every
// stored name carries a nanosecond UTC timestamp prefix so that concurrent
// uploads of identically named files land on distinct paths.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"time"
)

// Categories maps an upload form field to the ticket path field its stored
// location belongs in. Only these three upload slots exist.
var Categories = map[string]string{
	"entry": "entry_image_path",
	"exit":  "exit_image_path",
	"crop":  "crop_image_path",
}

// unsafeChars matches every run of filename characters outside the
// conservative [A-Za-z0-9._-] set.
var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Saver writes uploaded files below a static root directory.
type Saver struct {
	Root string // static asset root, e.g. "static"
}

// NewSaver returns a Saver rooted at dir.
func NewSaver(dir string) *Saver {
	return &Saver{Root: dir}
}

// SanitizeFilename strips any directory components from an original upload
// name and replaces unsafe character runs with underscores. An empty or
// fully stripped name falls back to "upload".
func SanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = unsafeChars.ReplaceAllString(name, "_")
	if name == "" || name == "." || name == ".." {
		return "upload"
	}
	return name
}

// Save stores one uploaded file under <root>/uploads/<ticketType>/<category>/
// and returns its path relative to the static root (forward slashes, no
// leading separator). The stored filename is the upload's UTC arrival time
// at nanosecond precision, an underscore, then the sanitized original name;
// the sub-second precision keeps two uploads of the same file name within
// the same second from colliding.
func (s *Saver) Save(ticketType, category string, file *multipart.FileHeader) (string, error) {
	dir := filepath.Join(s.Root, "uploads", ticketType, category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := fmt.Sprintf("%s_%s",
		time.Now().UTC().Format("20060102T150405.000000000"),
		SanitizeFilename(file.Filename))

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return path.Join("uploads", ticketType, category, name), nil
}
