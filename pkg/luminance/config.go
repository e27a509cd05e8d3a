package luminance

// DefaultThreshold is the brightness cutoff applied when a configuration
// does not provide one.
const DefaultThreshold = 128

const (
	defaultRows    = 8
	defaultColumns = 8
)

// Config describes a single analysis: which sub-region of the buffer to
// sample and at what grid resolution. A nil Threshold means
// DefaultThreshold; nil is distinct from an explicit zero, which is a
// valid (everything-is-bright) cutoff.
type Config struct {
	OffsetX, OffsetY          int
	WindowWidth, WindowHeight float64
	Rows, Columns             int
	Threshold                 *float64
}

func (c Config) threshold() float64 {
	if c.Threshold != nil {
		return *c.Threshold
	}
	return DefaultThreshold
}

// Default produces a configuration covering the full frame of the given
// dimensions at the preset grid resolution and threshold. The returned
// configuration always passes validation against a buffer of the same
// dimensions.
func Default(width, height int) Config {
	return Config{
		WindowWidth:  float64(width),
		WindowHeight: float64(height),
		Rows:         defaultRows,
		Columns:      defaultColumns,
	}
}
