package corpus

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// FileSource reads headline candidates from a newline-delimited text file.
// The file is re-read in full on every Load, so edits to the corpus take
// effect on the next pool reload without a restart.
type FileSource struct {
	path string
}

// NewFileSource returns a source backed by the file at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Load returns all non-blank lines, trimmed. An empty corpus is not an
// error here; the selector decides what an empty pool means.
func (s *FileSource) Load(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("opening headline corpus: %w", err)
	}
	defer f.Close()

	var headlines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			headlines = append(headlines, line)
		}
	}
	if err = scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading headline corpus: %w", err)
	}
	return headlines, nil
}
