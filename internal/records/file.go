package records

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
	"mandatpro/internal/logger"
	"mandatpro/pkg/models"
)

// FileSource reads a dataset exported by the data service as JSON or YAML.
// The document holds the keys income, expenses and mandateLevies.
type FileSource struct {
	path string
	log  zerolog.Logger
}

// NewFileSource creates a source for a .json, .yaml or .yml file.
func NewFileSource(path string) *FileSource {
	return &FileSource{
		path: path,
		log:  logger.WithComponent("records-file"),
	}
}

// Load reads and decodes the file.
func (s *FileSource) Load(ctx context.Context) (*models.Dataset, error) {
	const op = "Load"

	if err := ctx.Err(); err != nil {
		return nil, &SourceError{Op: op, Source: s.path, Err: err}
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, &SourceError{Op: op, Source: s.path, Err: err}
	}

	data, err := decodeDataset(filepath.Ext(s.path), raw)
	if err != nil {
		return nil, &SourceError{Op: op, Source: s.path, Err: err}
	}

	s.log.Info().
		Str("path", s.path).
		Int("income", len(data.Income)).
		Int("expenses", len(data.Expenses)).
		Int("mandate_levies", len(data.MandateLevies)).
		Msg("Records loaded from file")

	return data, nil
}

// Close is a no-op for files.
func (s *FileSource) Close() error {
	return nil
}

func decodeDataset(ext string, raw []byte) (*models.Dataset, error) {
	var data models.Dataset

	switch strings.ToLower(ext) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(raw))
		if err := dec.Decode(&data); err != nil {
			return nil, fmt.Errorf("failed to decode JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("failed to decode YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: file extension %q", ErrUnsupportedSource, ext)
	}

	return &data, nil
}
