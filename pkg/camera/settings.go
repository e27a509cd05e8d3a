package camera

import "github.com/tauraamui/gridwatch/pkg/luminance"

// Settings carries the per-camera analysis tuning. A zero-size grid window
// means the full frame is analysed.
type Settings struct {
	FPS  int
	Grid luminance.Config
}
