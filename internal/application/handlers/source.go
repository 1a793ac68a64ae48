package handlers

import (
	"errors"
	"fmt"

	"github.com/ersonp/legends-codex/internal/domain/legends"
	"github.com/ersonp/legends-codex/internal/infrastructure/source"
)

// ErrMissingSource is returned when the legends export does not exist.
// Nothing is written when a run fails with it.
var ErrMissingSource = errors.New("legends export not found")

// LoadDocument reads and decodes a legends export.
func LoadDocument(path, encoding string) (*legends.Document, error) {
	text, err := source.Read(path, encoding)
	if errors.Is(err, source.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrMissingSource, path)
	}
	if err != nil {
		return nil, fmt.Errorf("loading legends: %w", err)
	}
	return legends.NewDocument(text), nil
}
