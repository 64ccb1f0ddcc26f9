// Package pipeline turns scene documents into laid-out geometry.
//
// This package implements the build → layout → snapshot pipeline shared by
// the CLI and the HTTP API, so both entry points apply directives in the
// same order and share cached results.
//
// # Architecture
//
// A run consists of four stages:
//
//  1. Build: construct the item tree from the document through a widget
//     registry
//  2. Layout: apply each item's auto-size, equal-size and align directives,
//     children before parents
//  3. Snapshot: apply the root size overrides, position the children of
//     rows and columns and capture the geometry
//  4. Replay: apply each resize step of the document and capture a frame
//
// Results are keyed by a hash of the document plus the options that change
// geometry, and stored as JSON in the configured cache.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	doc, err := scene.ReadFile("toolbar.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := runner.Execute(ctx, doc, pipeline.Options{Width: 640})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Root.Width)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/layoutkit/pkg/cache"
	"github.com/matzehuels/layoutkit/pkg/errors"
	"github.com/matzehuels/layoutkit/pkg/fonts"
	"github.com/matzehuels/layoutkit/pkg/scene"
	"github.com/matzehuels/layoutkit/pkg/widgets"
)

// =============================================================================
// Default Values
// =============================================================================

// DefaultConcurrency is the number of documents ExecuteAll lays out at once.
const DefaultConcurrency = 4

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Width and Height override the root size after directives are applied.
	// Zero keeps the size declared in the document.
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// Font is the path of a TrueType or OpenType file for measuring text
	// items; empty uses the built-in 7x13 face. FontSize is in points.
	Font     string  `json:"font,omitempty"`
	FontSize float64 `json:"font_size,omitempty"`

	// Refresh bypasses the cache lookup; the fresh result is still stored.
	Refresh bool `json:"refresh,omitempty"`

	// Concurrency bounds ExecuteAll. Zero means DefaultConcurrency.
	Concurrency int `json:"-"`

	// Runtime options (not serialized)
	Logger   *log.Logger     `json:"-"`
	Registry *scene.Registry `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Name is the document name.
	Name string `json:"name" yaml:"name"`

	// SceneHash is the content hash of the document.
	SceneHash string `json:"scene_hash" yaml:"scene_hash"`

	// Root is the geometry after directives and size overrides.
	Root scene.Node `json:"root" yaml:"root"`

	// Frames holds one snapshot per resize step of the document.
	Frames []Frame `json:"frames,omitempty" yaml:"frames,omitempty"`

	// Stats contains timing and size information.
	Stats Stats `json:"stats" yaml:"stats"`

	// CacheInfo reports whether the result came from the cache.
	CacheInfo CacheInfo `json:"-" yaml:"-"`
}

// Frame is the geometry after one resize step.
type Frame struct {
	Width  float64    `json:"width" yaml:"width"`
	Height float64    `json:"height" yaml:"height"`
	Root   scene.Node `json:"root" yaml:"root"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Items         int           `json:"items" yaml:"items"`
	Directives    int           `json:"directives" yaml:"directives"`
	Subscriptions int           `json:"subscriptions" yaml:"subscriptions"`
	BuildTime     time.Duration `json:"build_time" yaml:"build_time"`
	LayoutTime    time.Duration `json:"layout_time" yaml:"layout_time"`
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	LayoutHit bool // Whether the result came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidSize, "root size cannot be negative (%vx%v)", o.Width, o.Height)
	}
	if o.FontSize < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "font size cannot be negative")
	}
	if o.Concurrency < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "concurrency cannot be negative")
	}
	if o.Font != "" {
		if err := errors.ValidatePath(o.Font); err != nil {
			return err
		}
		if o.FontSize == 0 {
			o.FontSize = fonts.DefaultSize
		}
	}
	if o.Concurrency == 0 {
		o.Concurrency = DefaultConcurrency
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Registry == nil {
		o.Registry = widgets.NewRegistry()
	}
	o.validated = true
	return nil
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:    o.Width,
		Height:   o.Height,
		Font:     o.Font,
		FontSize: o.FontSize,
	}
}
