package export

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/radio-control/cmexport/internal/extract"
)

// Default table file names.
const (
	DefaultCellsFile     = "5g_cells_extracted.csv"
	DefaultRelationsFile = "5g_neighbor_cells.csv"
)

// Options controls where and how tables are written.
type Options struct {
	Dir           string
	CellsFile     string
	RelationsFile string
	Delimiter     rune
}

// File describes one written table.
type File struct {
	Name   string `json:"name"`
	Path   string `json:"-"`
	Rows   int    `json:"rows"`
	SHA256 string `json:"sha256"`
}

// Sink writes the cell and relation tables of a result.
type Sink struct {
	opts Options
}

// NewSink creates a sink, filling in default file names.
func NewSink(opts Options) *Sink {
	if opts.CellsFile == "" {
		opts.CellsFile = DefaultCellsFile
	}
	if opts.RelationsFile == "" {
		opts.RelationsFile = DefaultRelationsFile
	}
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}
	return &Sink{opts: opts}
}

// Write writes both tables and returns them in cells, relations order.
func (s *Sink) Write(res *extract.Result) ([]File, error) {
	if err := os.MkdirAll(s.dir(), 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	cells, err := s.writeFile(s.opts.CellsFile, len(res.Cells), func(w io.Writer) error {
		return WriteCells(w, res.Cells, s.opts.Delimiter)
	})
	if err != nil {
		return nil, err
	}

	relations, err := s.writeFile(s.opts.RelationsFile, len(res.Relations), func(w io.Writer) error {
		return WriteRelations(w, res.Relations, s.opts.Delimiter)
	})
	if err != nil {
		return nil, err
	}

	return []File{cells, relations}, nil
}

func (s *Sink) dir() string {
	if s.opts.Dir == "" {
		return "."
	}
	return s.opts.Dir
}

func (s *Sink) writeFile(name string, rows int, fill func(io.Writer) error) (File, error) {
	target := filepath.Join(s.dir(), name)

	tmp, err := os.CreateTemp(s.dir(), name+".tmp-*")
	if err != nil {
		return File{}, fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	hash := sha256.New()
	if err := fill(io.MultiWriter(tmp, hash)); err != nil {
		_ = tmp.Close()
		return File{}, fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return File{}, fmt.Errorf("failed to close %s: %w", name, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return File{}, fmt.Errorf("failed to set mode on %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return File{}, fmt.Errorf("failed to move %s into place: %w", name, err)
	}

	return File{
		Name:   name,
		Path:   target,
		Rows:   rows,
		SHA256: hex.EncodeToString(hash.Sum(nil)),
	}, nil
}
