package document

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

var (
	// ErrNotFound is returned when the input path does not resolve to a file.
	ErrNotFound = errors.New("file not found")
	// ErrUnsupportedFormat is returned for files without a markdown extension.
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// SupportedExtensions lists the markdown extensions accepted as input.
var SupportedExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// Document is a markdown source held in memory as an ordered line array.
type Document struct {
	Name  string // File base name without extension
	Path  string // Source path, empty for in-memory documents
	Lines []string
}

// New splits text into lines. CRLF line endings and a leading BOM are normalized away.
func New(name, text string) *Document {
	text = strings.TrimPrefix(text, "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return &Document{
		Name:  name,
		Lines: strings.Split(text, "\n"),
	}
}

// Open loads a markdown file. Missing files are reported before the
// extension is checked, and the extension before any byte is read.
func Open(path string) (*Document, error) {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	case err != nil:
		return nil, fmt.Errorf("stat %s: %w", path, err)
	case info.IsDir():
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if !IsSupportedExtension(path) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := Read(f, filepath.Base(path))
	if err != nil {
		return nil, err
	}
	doc.Path = path
	return doc, nil
}

// Read loads a markdown document from r. filename only supplies the name.
func Read(r io.Reader, filename string) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("decode %s: input is not valid UTF-8", filename)
	}
	return New(BaseName(filename), string(data)), nil
}

// BaseName strips directory and extension from filename.
func BaseName(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Text joins the lines back into the source text.
func (d *Document) Text() string {
	return strings.Join(d.Lines, "\n")
}

// ContentHash computes SHA-256 of the document text and returns a hex string.
func (d *Document) ContentHash() string {
	h := sha256.Sum256([]byte(d.Text()))
	return fmt.Sprintf("%x", h[:])
}
