package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/layoutkit/pkg/cache"
	"github.com/matzehuels/layoutkit/pkg/errors"
	"github.com/matzehuels/layoutkit/pkg/fonts"
	"github.com/matzehuels/layoutkit/pkg/layout"
	"github.com/matzehuels/layoutkit/pkg/observability"
	"github.com/matzehuels/layoutkit/pkg/scene"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so that layout and caching behave the same.
//
// The Runner is stateless except for the cache, engine and logger - it
// doesn't store pipeline results. Multiple goroutines can safely use the
// same Runner with different documents.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	Engine *layout.Engine

	// TTL is the lifetime of cached layouts. Zero means cache.TTLLayout.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		Engine: layout.New(layout.WithLogger(logger)),
	}
}

// Execute lays out doc with caching.
func (r *Runner) Execute(ctx context.Context, doc *scene.Document, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	sceneHash, err := cache.HashJSON(doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "hash scene")
	}
	cacheKey := r.Keyer.LayoutKey(sceneHash, opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached Result
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				cached.CacheInfo.LayoutHit = true
				opts.Logger.Debug("layout cache hit", "scene", doc.Name, "key", cacheKey)
				return &cached, nil
			}
			// If deserialization fails, fall through to recompute
		} else if err != nil {
			opts.Logger.Warn("cache lookup failed", "scene", doc.Name, "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	result, err := r.Layout(ctx, doc, opts)
	if err != nil {
		return nil, err
	}
	result.SceneHash = sceneHash

	if data, err := json.Marshal(result); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, r.ttl()); err == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		} else {
			opts.Logger.Warn("cache store failed", "scene", doc.Name, "err", err)
		}
	}

	opts.Logger.Info("laid out scene",
		"scene", doc.Name,
		"items", result.Stats.Items,
		"frames", len(result.Frames),
		"duration", result.Stats.BuildTime+result.Stats.LayoutTime)
	return result, nil
}

// Layout runs the pipeline without the cache.
func (r *Runner) Layout(ctx context.Context, doc *scene.Document, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	buildStart := time.Now()
	root, err := r.Build(doc, opts)
	if err != nil {
		return nil, err
	}
	result := &Result{Name: doc.Name}
	result.Stats.BuildTime = time.Since(buildStart)

	layoutStart := time.Now()
	applied, subs, err := r.ApplyDirectives(root)
	if err != nil {
		return nil, err
	}
	result.Stats.Directives = applied
	result.Stats.Subscriptions = subs

	if opts.Width > 0 {
		root.SetProperty(layout.PropWidth, opts.Width)
	}
	if opts.Height > 0 {
		root.SetProperty(layout.PropHeight, opts.Height)
	}
	scene.Arrange(root)
	result.Root = scene.Snapshot(root)
	result.Stats.Items = result.Root.Count()

	for i, step := range doc.Resize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		w, h := ResizeStep(root, step)
		root.Resize(w, h)
		scene.Arrange(root)
		result.Frames = append(result.Frames, Frame{Width: w, Height: h, Root: scene.Snapshot(root)})
		opts.Logger.Debug("replayed resize step", "scene", doc.Name, "step", i, "width", w, "height", h)
	}
	result.Stats.LayoutTime = time.Since(layoutStart)

	return result, nil
}

// Build constructs the item tree of doc with the options' registry and font.
// Directives are recorded but not applied.
func (r *Runner) Build(doc *scene.Document, opts Options) (*scene.Item, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	face, err := fonts.Load(opts.Font, opts.FontSize)
	if err != nil {
		code := errors.ErrCodeInvalidInput
		if os.IsNotExist(err) {
			code = errors.ErrCodeFileNotFound
		}
		return nil, errors.Wrap(code, err, "load font")
	}
	return scene.Build(doc, opts.Registry, scene.WithFace(face))
}

// ApplyDirectives applies the recorded directives of every item, children
// before their parents, so that a child's own subscriptions exist before its
// parent first sizes it. Each item applies auto-size, then equal-size, then
// align. It returns the number of directives applied and the number of
// auto-size subscriptions installed.
func (r *Runner) ApplyDirectives(root *scene.Item) (applied, subscriptions int, err error) {
	err = root.PostOrder(func(it *scene.Item) error {
		d := it.Directives()
		if d.IsZero() {
			return nil
		}
		if d.AutoSize != "" {
			installed, err := r.Engine.AutoSizeChildren(it, d.AutoSize)
			if err != nil {
				return fmt.Errorf("%s: auto_size: %w", it, err)
			}
			if installed {
				subscriptions++
			}
			applied++
		}
		if d.EqualSize != "" {
			if err := r.Engine.EqualSizeChildren(it, d.EqualSize); err != nil {
				return fmt.Errorf("%s: equal_size: %w", it, err)
			}
			applied++
		}
		if d.Align != "" {
			if err := r.Engine.AutoAlign(it, d.Align); err != nil {
				return fmt.Errorf("%s: align: %w", it, err)
			}
			applied++
		}
		return nil
	})
	return applied, subscriptions, err
}

// ResizeStep resolves a resize step against the root's current size: a zero
// dimension keeps the current value.
func ResizeStep(root layout.Object, step scene.Size) (width, height float64) {
	width, height = step.Width, step.Height
	if width == 0 {
		width = root.Property(layout.PropWidth)
	}
	if height == 0 {
		height = root.Property(layout.PropHeight)
	}
	return width, height
}

// ExecuteAll lays out several documents concurrently. Results are returned
// in input order; the first failure cancels the remaining runs.
func (r *Runner) ExecuteAll(ctx context.Context, docs []*scene.Document, opts Options) ([]*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	results := make([]*Result, len(docs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i, doc := range docs {
		g.Go(func() error {
			res, err := r.Execute(ctx, doc, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", doc.Name, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) ttl() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return cache.TTLLayout
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
