// Package source abstracts where validation input comes from. The engine
// does not know or care which provider produced its input: every payload
// feeds the same validate entry point.
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/epgtools/epgverify/pkg/assets"
)

// Payload is one unit of validation input: the raw XML text, its display
// name, and an optional replacement asset store. A nil Assets selects the
// built-in default table.
type Payload struct {
	XMLText  string
	FileName string
	FilePath string
	Assets   assets.Store
}

// Provider supplies validation input from some external origin.
type Provider interface {
	Fetch() (*Payload, error)
}

// FileSource reads an XML document from disk. When a sidecar asset
// database named <file>.assets.yaml sits next to the document (or an
// explicit AssetsPath is set), it is loaded as the replacement store.
type FileSource struct {
	Path       string
	AssetsPath string
}

// NewFileSource builds a FileSource for an XML file path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Fetch reads the document and any asset sidecar.
func (s *FileSource) Fetch() (*Payload, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.Path, err)
	}

	p := &Payload{
		XMLText:  string(data),
		FileName: filepath.Base(s.Path),
		FilePath: s.Path,
	}

	assetsPath := s.AssetsPath
	if assetsPath == "" {
		assetsPath = sidecarPath(s.Path)
		if _, err := os.Stat(assetsPath); err != nil {
			return p, nil
		}
	}

	store, err := assets.LoadFile(assetsPath)
	if err != nil {
		return nil, err
	}
	p.Assets = store
	return p, nil
}

// sidecarPath derives the conventional asset database name for a
// document: report.xml -> report.assets.yaml.
func sidecarPath(xmlPath string) string {
	return strings.TrimSuffix(xmlPath, filepath.Ext(xmlPath)) + ".assets.yaml"
}
