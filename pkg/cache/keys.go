package cache

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey is the key for a layout result of the scene with the given
	// content hash.
	LayoutKey(sceneHash string, opts LayoutKeyOpts) string

	// DiagramKey is the key for a rendered diagram of the layout result with
	// the given content hash.
	DiagramKey(layoutHash string, opts DiagramKeyOpts) string
}

// LayoutKeyOpts are the run options that change a layout result.
type LayoutKeyOpts struct {
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
	Font     string  `json:"font,omitempty"`
	FontSize float64 `json:"font_size,omitempty"`
}

// DiagramKeyOpts are the options that change a rendered diagram.
type DiagramKeyOpts struct {
	Format   string `json:"format"`
	Detailed bool   `json:"detailed,omitempty"`
}

// DefaultKeyer hashes the inputs of each entry type under a type prefix.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns "layout:" followed by a hash of the inputs.
func (DefaultKeyer) LayoutKey(sceneHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", sceneHash, opts)
}

// DiagramKey returns "diagram:" followed by a hash of the inputs.
func (DefaultKeyer) DiagramKey(layoutHash string, opts DiagramKeyOpts) string {
	return hashKey("diagram", layoutHash, opts)
}
