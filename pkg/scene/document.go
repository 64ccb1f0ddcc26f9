package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/layoutkit/pkg/errors"
)

// Format is a scene document encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Formats lists the supported encodings.
var Formats = []Format{FormatTOML, FormatYAML, FormatJSON}

// ParseFormat parses a format name. "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported scene format %q (want toml, yaml or json)", s)
}

// FormatFromPath derives the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Size is one step of a resize sequence.
type Size struct {
	Width  float64 `toml:"width" yaml:"width" json:"width"`
	Height float64 `toml:"height" yaml:"height" json:"height"`
}

// Document is a declarative scene: a root item spec and an optional
// sequence of root sizes to replay after layout.
type Document struct {
	Name   string `toml:"name" yaml:"name" json:"name"`
	Root   Spec   `toml:"root" yaml:"root" json:"root"`
	Resize []Size `toml:"resize,omitempty" yaml:"resize,omitempty" json:"resize,omitempty"`
}

// Spec declares one item.
//
// Width and Height are written as declared, so 0 and values in (0, 1) keep
// their stretch and ratio meaning for a parent that auto-sizes. Padding sets
// all four sides; a side-specific padding overrides it.
type Spec struct {
	Type   string  `toml:"type" yaml:"type" json:"type"`
	Name   string  `toml:"name,omitempty" yaml:"name,omitempty" json:"name,omitempty"`
	Width  float64 `toml:"width,omitempty" yaml:"width,omitempty" json:"width,omitempty"`
	Height float64 `toml:"height,omitempty" yaml:"height,omitempty" json:"height,omitempty"`
	X      float64 `toml:"x,omitempty" yaml:"x,omitempty" json:"x,omitempty"`
	Y      float64 `toml:"y,omitempty" yaml:"y,omitempty" json:"y,omitempty"`

	Padding       float64  `toml:"padding,omitempty" yaml:"padding,omitempty" json:"padding,omitempty"`
	LeftPadding   *float64 `toml:"left_padding,omitempty" yaml:"left_padding,omitempty" json:"left_padding,omitempty"`
	RightPadding  *float64 `toml:"right_padding,omitempty" yaml:"right_padding,omitempty" json:"right_padding,omitempty"`
	TopPadding    *float64 `toml:"top_padding,omitempty" yaml:"top_padding,omitempty" json:"top_padding,omitempty"`
	BottomPadding *float64 `toml:"bottom_padding,omitempty" yaml:"bottom_padding,omitempty" json:"bottom_padding,omitempty"`
	Spacing       float64  `toml:"spacing,omitempty" yaml:"spacing,omitempty" json:"spacing,omitempty"`

	Text  string             `toml:"text,omitempty" yaml:"text,omitempty" json:"text,omitempty"`
	Props map[string]float64 `toml:"props,omitempty" yaml:"props,omitempty" json:"props,omitempty"`

	Align     string `toml:"align,omitempty" yaml:"align,omitempty" json:"align,omitempty"`
	AutoSize  string `toml:"auto_size,omitempty" yaml:"auto_size,omitempty" json:"auto_size,omitempty"`
	EqualSize string `toml:"equal_size,omitempty" yaml:"equal_size,omitempty" json:"equal_size,omitempty"`

	Model    *ModelSpec `toml:"model,omitempty" yaml:"model,omitempty" json:"model,omitempty"`
	Children []Spec     `toml:"children,omitempty" yaml:"children,omitempty" json:"children,omitempty"`
}

// ModelSpec seeds a list model for list widgets.
type ModelSpec struct {
	Roles    []string         `toml:"roles" yaml:"roles" json:"roles"`
	TextRole string           `toml:"text_role,omitempty" yaml:"text_role,omitempty" json:"text_role,omitempty"`
	Items    []map[string]any `toml:"items,omitempty" yaml:"items,omitempty" json:"items,omitempty"`
}

// Decode reads a document in the given format and validates it.
func Decode(r io.Reader, f Format) (*Document, error) {
	var doc Document
	var err error
	switch f {
	case FormatTOML:
		_, err = toml.NewDecoder(r).Decode(&doc)
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		err = dec.Decode(&doc)
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(&doc)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported scene format %q", f)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode %s scene", f)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// DecodeBytes is Decode over a byte slice.
func DecodeBytes(data []byte, f Format) (*Document, error) {
	return Decode(bytes.NewReader(data), f)
}

// ReadFile reads a document, choosing the format from the file extension.
func ReadFile(path string) (*Document, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "scene file %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	doc, err := Decode(file, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if doc.Name == "" {
		doc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return doc, nil
}

// Encode writes the document in the given format.
func Encode(w io.Writer, doc *Document, f Format) error {
	switch f {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unsupported scene format %q", f)
}

// Validate checks names, axis tokens, alignment directives and model roles
// throughout the document. Sizes are checked when layout runs.
func (d *Document) Validate() error {
	if err := errors.ValidateSceneName(d.Name); err != nil {
		return err
	}
	if d.Root.Type == "" {
		return errors.New(errors.ErrCodeInvalidScene, "root item has no type")
	}
	for i, s := range d.Resize {
		if s.Width < 0 || s.Height < 0 {
			return errors.New(errors.ErrCodeInvalidScene, "resize step %d has a negative size", i)
		}
	}
	return d.Root.validate("root")
}

func (s *Spec) validate(path string) error {
	if err := errors.ValidateSceneName(s.Name); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	for _, token := range []string{s.AutoSize, s.EqualSize} {
		if token == "" {
			continue
		}
		if err := errors.ValidateAxisToken(token); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := errors.ValidateDirectives(s.Align); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if s.Model != nil {
		if err := errors.ValidateRoleNames(s.Model.Roles); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	for i := range s.Children {
		if err := s.Children[i].validate(fmt.Sprintf("%s/%d", path, i)); err != nil {
			return err
		}
	}
	return nil
}
