package importer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/farthing-dev/farthing/internal/model"
)

// ErrNoColumns reports that required columns could not be detected from a
// statement's header row.
var ErrNoColumns = errors.New("could not detect required columns")

// Registry holds named institution layouts.
type Registry struct {
	layouts map[string]Layout
}

// FileInfo describes a statement file in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// NewRegistry creates an empty layout registry.
func NewRegistry() *Registry {
	return &Registry{layouts: make(map[string]Layout)}
}

// Register adds a layout. Panics on duplicate bank identifier.
func (r *Registry) Register(l Layout) {
	key := strings.ToLower(l.Bank())
	if _, ok := r.layouts[key]; ok {
		panic("duplicate bank layout: " + key)
	}
	r.layouts[key] = l
}

// Get returns the layout for a bank identifier, or nil.
func (r *Registry) Get(bankID string) Layout {
	return r.layouts[strings.ToLower(bankID)]
}

// ResolveColumns picks the column mapping for an account's institution.
// Unknown identifiers (including "other") use generic keyword detection,
// which fails with ErrNoColumns when the required fields are not found.
func (r *Registry) ResolveColumns(bankID string, headers []string) (model.ColumnMapping, error) {
	if l := r.Get(bankID); l != nil {
		return l.Columns(headers)
	}

	m := DetectColumns(headers)
	if err := m.Validate(); err != nil {
		return model.ColumnMapping{}, fmt.Errorf("%w: %v", ErrNoColumns, err)
	}
	return m, nil
}

// DefaultRegistry returns a registry with all built-in layouts.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&CBALayout{})
	r.Register(&INGLayout{})
	return r
}

// importDir is the statement inbox subdirectory of the data directory.
const importDir = "import"

// processedDir is where imported statements are archived.
const processedDir = "import/processed"

// Scan returns statement files waiting in <dataDir>/import/.
func Scan(dataDir string) ([]FileInfo, error) {
	dir := filepath.Join(dataDir, importDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !IsSupportedFile(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves a statement from import/ to import/processed/.
func MarkProcessed(dataDir, fileName string) error {
	src := filepath.Join(dataDir, importDir, fileName)
	dstDir := filepath.Join(dataDir, processedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}
