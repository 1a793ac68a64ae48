// Package source reads legends exports from disk.
package source

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Encodings accepted by Read.
const (
	EncodingAuto  = "auto"
	EncodingUTF8  = "utf-8"
	EncodingCP437 = "cp437"
)

// ErrNotFound is returned when the source file does not exist.
var ErrNotFound = errors.New("source file not found")

// reDeclaredEncoding captures the encoding attribute of an XML prolog.
var reDeclaredEncoding = regexp.MustCompile(`^\s*<\?xml[^>]*encoding\s*=\s*["']([^"']+)["']`)

// Read loads the whole file as text. Decoding never fails: bytes that are
// not valid in the chosen encoding become U+FFFD.
func Read(path, encoding string) (string, error) {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return "", fmt.Errorf("accessing source: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("source is a directory, not a file: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading source: %w", err)
	}

	return Decode(data, encoding)
}

// Decode converts raw export bytes to text.
func Decode(data []byte, encoding string) (string, error) {
	switch enc := resolveEncoding(data, encoding); enc {
	case EncodingCP437:
		text, err := charmap.CodePage437.NewDecoder().Bytes(data)
		if err != nil {
			return "", fmt.Errorf("decoding cp437: %w", err)
		}
		return string(text), nil
	case EncodingUTF8:
		return strings.ToValidUTF8(string(data), "�"), nil
	default:
		return "", fmt.Errorf("unsupported encoding %q", enc)
	}
}

func resolveEncoding(data []byte, encoding string) string {
	encoding = normalizeEncoding(encoding)
	if encoding != EncodingAuto {
		return encoding
	}

	head := data
	if len(head) > 256 {
		head = head[:256]
	}
	if m := reDeclaredEncoding.FindSubmatch(head); m != nil {
		if declared := normalizeEncoding(string(m[1])); declared == EncodingCP437 {
			return declared
		}
	}
	return EncodingUTF8
}

func normalizeEncoding(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", EncodingAuto:
		return EncodingAuto
	case "utf-8", "utf8":
		return EncodingUTF8
	case "cp437", "ibm437", "437":
		return EncodingCP437
	default:
		return strings.ToLower(name)
	}
}
