package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/matzehuels/layoutkit/pkg/buildinfo"
	"github.com/matzehuels/layoutkit/pkg/cache"
	"github.com/matzehuels/layoutkit/pkg/errors"
	"github.com/matzehuels/layoutkit/pkg/layout"
	"github.com/matzehuels/layoutkit/pkg/observability"
	"github.com/matzehuels/layoutkit/pkg/pipeline"
	"github.com/matzehuels/layoutkit/pkg/render"
	"github.com/matzehuels/layoutkit/pkg/render/tree"
	"github.com/matzehuels/layoutkit/pkg/scene"
)

// =============================================================================
// Request and Response Types
// =============================================================================

// SceneRequest carries a scene document and run options.
type SceneRequest struct {
	// Document is the scene as a JSON object.
	Document *scene.Document `json:"document,omitempty"`

	// Source is the scene as text in Format, used when Document is absent.
	Source string `json:"source,omitempty"`
	Format string `json:"format,omitempty"`

	Width   float64 `json:"width,omitempty"`
	Height  float64 `json:"height,omitempty"`
	Refresh bool    `json:"refresh,omitempty"`
}

// LayoutResponse is the body of a successful /v1/layout call.
type LayoutResponse struct {
	*pipeline.Result
	CacheHit bool `json:"cache_hit"`
}

// DiagramRequest is the body of /v1/diagram.
type DiagramRequest struct {
	SceneRequest

	// Output is "svg" (default) or "dot".
	Output   string `json:"output,omitempty"`
	Detailed bool   `json:"detailed,omitempty"`
}

// TextBlockRequest is the body of /v1/text-block. Text is split on
// newlines when Lines is empty.
type TextBlockRequest struct {
	Lines      []string `json:"lines,omitempty"`
	Text       string   `json:"text,omitempty"`
	CharWidth  float64  `json:"char_width,omitempty"`
	LineHeight float64  `json:"line_height,omitempty"`
	Cells      bool     `json:"cells,omitempty"` // measure in display cells
}

// TextBlockResponse is the body of a successful /v1/text-block call.
type TextBlockResponse struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Lines  int     `json:"lines"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleWidgets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"types": s.cfg.Registry.Kinds()})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req SceneRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	result, err := s.execute(r, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, LayoutResponse{Result: result, CacheHit: result.CacheInfo.LayoutHit})
}

func (s *Server) handleDiagram(w http.ResponseWriter, r *http.Request) {
	var req DiagramRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	output := strings.ToLower(req.Output)
	if output == "" {
		output = render.FormatSVG
	}
	if output != render.FormatSVG && output != render.FormatDOT {
		writeError(w, r, errors.New(errors.ErrCodeInvalidFormat, "unsupported diagram output %q (want svg or dot)", req.Output))
		return
	}

	result, err := s.execute(r, req.SceneRequest)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ctx := r.Context()
	layoutHash, err := cache.HashJSON(result.Root)
	if err != nil {
		writeError(w, r, err)
		return
	}
	key := s.runner.Keyer.DiagramKey(layoutHash, cache.DiagramKeyOpts{Format: output, Detailed: req.Detailed})

	data, hit, err := s.runner.Cache.Get(ctx, key)
	if err != nil || !hit || req.Refresh {
		observability.Cache().OnCacheMiss(ctx, "diagram")
		data, err = tree.Render(ctx, result.Root, output, tree.Options{Detailed: req.Detailed})
		if err != nil {
			writeError(w, r, err)
			return
		}
		if err := s.runner.Cache.Set(ctx, key, data, cache.TTLDiagram); err == nil {
			observability.Cache().OnCacheSet(ctx, "diagram", len(data))
		}
	} else {
		observability.Cache().OnCacheHit(ctx, "diagram")
	}

	contentType := "image/svg+xml"
	if output == render.FormatDOT {
		contentType = "text/vnd.graphviz; charset=utf-8"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleTextBlock(w http.ResponseWriter, r *http.Request) {
	var req TextBlockRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.CharWidth < 0 || req.LineHeight < 0 {
		writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "text metrics cannot be negative"))
		return
	}

	lines := req.Lines
	if len(lines) == 0 && req.Text != "" {
		lines = layout.SplitLines(req.Text)
	}
	m := s.cfg.Metrics
	if req.CharWidth > 0 {
		m.CharWidth = req.CharWidth
	}
	if req.LineHeight > 0 {
		m.LineHeight = req.LineHeight
	}
	m.Cells = m.Cells || req.Cells
	width, height := layout.TextBlockSize(lines, m)
	writeJSON(w, http.StatusOK, TextBlockResponse{Width: width, Height: height, Lines: len(lines)})
}

// =============================================================================
// Helpers
// =============================================================================

// execute resolves the request's document and runs the pipeline.
func (s *Server) execute(r *http.Request, req SceneRequest) (*pipeline.Result, error) {
	doc, err := req.document()
	if err != nil {
		return nil, err
	}
	return s.runner.Execute(r.Context(), doc, pipeline.Options{
		Width:    req.Width,
		Height:   req.Height,
		Refresh:  req.Refresh,
		Font:     s.cfg.Font,
		FontSize: s.cfg.FontSize,
		Registry: s.cfg.Registry,
	})
}

func (req SceneRequest) document() (*scene.Document, error) {
	switch {
	case req.Document != nil && req.Source != "":
		return nil, errors.New(errors.ErrCodeInvalidInput, "send either document or source, not both")
	case req.Document != nil:
		return req.Document, nil
	case req.Source != "":
		format := scene.FormatTOML
		if req.Format != "" {
			f, err := scene.ParseFormat(req.Format)
			if err != nil {
				return nil, err
			}
			format = f
		}
		return scene.DecodeBytes([]byte(req.Source), format)
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "request has no document or source")
	}
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return err
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}
