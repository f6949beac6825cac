package source

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/brokenalarms/astro-masonry/types"
)

// File reads the item list from a file on every ListItems call.
//
// Supported formats, chosen by extension:
//   - .json, .yaml, .yml: a top-level list of items, or a mapping with an "items" list
//   - .toml: an [[items]] array of tables
type File struct {
	path string
}

var _ types.ItemSource = (*File)(nil)

type itemsDocument struct {
	Items []types.Item `yaml:"items" toml:"items"`
}

// NewFile creates a file-backed item source.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the file path.
func (f *File) Path() string {
	return f.path
}

// ListItems reads and decodes the file.
func (f *File) ListItems(ctx context.Context) ([]types.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read items file: %w", err)
	}

	items, err := DecodeItems(data, filepath.Ext(f.path))
	if err != nil {
		return nil, fmt.Errorf("failed to decode items file %s: %w", f.path, err)
	}

	return items, nil
}

// DecodeItems decodes an item list. ext selects the format (".toml" for TOML,
// anything else for JSON/YAML).
func DecodeItems(data []byte, ext string) ([]types.Item, error) {
	if strings.EqualFold(ext, ".toml") {
		var doc itemsDocument
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
			return nil, err
		}

		return nonNil(doc.Items), nil
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return []types.Item{}, nil
	}

	root := node.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var items []types.Item
		if err := root.Decode(&items); err != nil {
			return nil, err
		}

		return nonNil(items), nil
	case yaml.MappingNode:
		var doc itemsDocument
		if err := root.Decode(&doc); err != nil {
			return nil, err
		}

		return nonNil(doc.Items), nil
	default:
		return nil, fmt.Errorf("expected a list of items or a mapping with \"items\", got scalar")
	}
}

func nonNil(items []types.Item) []types.Item {
	if items == nil {
		return []types.Item{}
	}

	return items
}
