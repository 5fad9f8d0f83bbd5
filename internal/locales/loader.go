package locales

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrLoaderPathRequired indicates a loader was built without a file path.
var ErrLoaderPathRequired = errors.New("locales: loader path cannot be empty")

type fileConfig struct {
	DefaultLocale string              `json:"default_locale"`
	Locales       []string            `json:"locales"`
	Fallbacks     map[string][]string `json:"fallbacks"`
}

// Loader reads a catalog configuration from a JSON file.
type Loader struct {
	path string
}

// NewLoader constructs a loader reading path.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load parses the configured file.
func (l *Loader) Load(ctx context.Context) (Config, error) {
	if l == nil || l.path == "" {
		return Config{}, ErrLoaderPathRequired
	}

	select {
	case <-ctx.Done():
		return Config{}, ctx.Err()
	default:
	}

	file, err := os.Open(l.path)
	if err != nil {
		return Config{}, fmt.Errorf("locales: open catalog %q: %w", l.path, err)
	}
	defer file.Close()

	return decodeConfig(file)
}

func decodeConfig(r io.Reader) (Config, error) {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()

	var fc fileConfig
	if err := decoder.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("locales: decode catalog: %w", err)
	}
	return Config{
		DefaultLocale: fc.DefaultLocale,
		Locales:       fc.Locales,
		Fallbacks:     fc.Fallbacks,
	}, nil
}
