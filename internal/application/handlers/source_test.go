package handlers

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/legends-codex/internal/infrastructure/source"
)

func TestLoadDocument(t *testing.T) {
	doc, err := LoadDocument(writeLegends(t), source.EncodingAuto)
	require.NoError(t, err)

	assert.Equal(t, 4, doc.Count("written_content"))
	assert.Equal(t, 2, doc.Count("poetic_form"))
}

func TestLoadDocument_Missing(t *testing.T) {
	_, err := LoadDocument(filepath.Join(t.TempDir(), "nope.xml"), source.EncodingAuto)

	require.ErrorIs(t, err, ErrMissingSource)
	assert.Contains(t, err.Error(), "nope.xml")
}

func TestLoadDocument_Directory(t *testing.T) {
	_, err := LoadDocument(t.TempDir(), source.EncodingAuto)

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMissingSource)
}
