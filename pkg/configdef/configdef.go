package configdef

import (
	"errors"
	"fmt"

	"github.com/tauraamui/gridwatch/pkg/luminance"
	"gopkg.in/dealancer/validate.v2"
)

type Camera struct {
	Title        string `json:"title" validate:"empty=false"`
	Address      string `json:"address"`
	FPS          int    `json:"fps" validate:"gte=1 & lte=30"`
	Disabled     bool   `json:"disabled"`
	MockCapturer bool   `json:"mock_capturer"`
	Grid         Grid   `json:"grid"`
}

// Grid mirrors the analyser configuration surface. A zero window means the
// full frame is analysed; zero rows/columns are replaced with preset
// defaults at load time, ahead of validation.
type Grid struct {
	OffsetX      int      `json:"offset_x" validate:"gte=0"`
	OffsetY      int      `json:"offset_y" validate:"gte=0"`
	WindowWidth  float64  `json:"window_width" validate:"gte=0"`
	WindowHeight float64  `json:"window_height" validate:"gte=0"`
	Rows         int      `json:"rows" validate:"gte=1 & lte=256"`
	Columns      int      `json:"columns" validate:"gte=1 & lte=256"`
	Threshold    *float64 `json:"threshold"`
}

// Luminance converts the schema grid settings into an analyser config.
func (g Grid) Luminance() luminance.Config {
	return luminance.Config{
		OffsetX:      g.OffsetX,
		OffsetY:      g.OffsetY,
		WindowWidth:  g.WindowWidth,
		WindowHeight: g.WindowHeight,
		Rows:         g.Rows,
		Columns:      g.Columns,
		Threshold:    g.Threshold,
	}
}

type Values struct {
	Debug                   bool     `json:"debug"`
	Secret                  string   `json:"secret"`
	RPCListenPort           string   `json:"rpc_listen_port"`
	MaxSnapshotAgeInDays    int      `json:"max_snapshot_age_in_days" validate:"gte=1 & lte=365"`
	SnapshotIntervalSeconds int      `json:"snapshot_interval_seconds" validate:"gte=1 & lte=3600"`
	Cameras                 []Camera `json:"cameras"`
}

func (v Values) RunValidate() error {
	if err := validate.Validate(v); err != nil {
		return err
	}
	return v.Validate()
}

func (v Values) Validate() error {
	const validationErrorHeader = "validation failed: %w"
	if hasDupCameraTitles(v.Cameras) {
		return fmt.Errorf(validationErrorHeader, errors.New("camera titles must be unique"))
	}
	for _, cam := range v.Cameras {
		if t := cam.Grid.Threshold; t != nil && (*t < 0 || *t > 255) {
			return fmt.Errorf(validationErrorHeader, errors.New("grid threshold must be within 0-255 range"))
		}
	}
	return nil
}

func hasDupCameraTitles(cameras []Camera) (hasDup bool) {
	hasDup = false
	if len(cameras) == 0 {
		return
	}

	for ci, cam := range cameras {
		for i := ci; i < len(cameras); i++ {
			if i == ci {
				continue
			}
			if cam.Title == cameras[i].Title {
				hasDup = true
				return
			}
		}
	}
	return
}
