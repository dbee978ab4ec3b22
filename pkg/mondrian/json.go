package mondrian

import (
	"encoding/json"
	"fmt"
	"os"

	apperrors "github.com/matzehuels/mondrian/pkg/errors"
)

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// The grid must be valid and every block must carry a known category.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "unmarshal layout")
	}
	if err := l.Grid.Validate(); err != nil {
		return Layout{}, err
	}
	for _, b := range l.Blocks {
		if _, err := ParseCategory(string(b.Category)); err != nil {
			return Layout{}, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "block %s", b.ID)
		}
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	if err := apperrors.ValidatePath(path); err != nil {
		return Layout{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Layout{}, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "layout not found: %s", path)
		}
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
