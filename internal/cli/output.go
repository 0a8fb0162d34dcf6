package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/johnqtcg/ghdump/internal/converter"
)

// OutputWriter stores a rendered document under dir and returns its path.
type OutputWriter interface {
	Write(dir string, doc converter.Document) (string, error)
}

type fileOutputWriter struct{}

// NewOutputWriter creates a writer that overwrites existing files.
func NewOutputWriter() OutputWriter {
	return &fileOutputWriter{}
}

func (w *fileOutputWriter) Write(dir string, doc converter.Document) (path string, err error) {
	_ = w

	if doc.FileName == "" || doc.FileName != filepath.Base(doc.FileName) {
		return "", fmt.Errorf("invalid output file name %q", doc.FileName)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory %q: %w", dir, err)
	}

	path = filepath.Join(dir, doc.FileName)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create output file %q: %w", path, err)
	}
	defer func() {
		closeErr := file.Close()
		if err == nil && closeErr != nil {
			err = fmt.Errorf("close output file %q: %w", path, closeErr)
		}
	}()

	if _, err := file.Write(doc.Content); err != nil {
		return "", fmt.Errorf("write output file %q: %w", path, err)
	}
	return path, nil
}
