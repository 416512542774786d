package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// New returns a timestamped file logger. The TUI owns the terminal, so
// logs never go to stdout; an empty path yields a disabled logger.
func New(path string) (zerolog.Logger, io.Closer, error) {
	if path == "" {
		return zerolog.Nop(), nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}
	return zerolog.New(f).With().Timestamp().Logger(), f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
