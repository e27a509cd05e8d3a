package config

import (
	"github.com/tauraamui/gridwatch/internal/config"
	"github.com/tauraamui/gridwatch/pkg/configdef"
)

type Destroyer interface {
	configdef.Destroyer
}

func DefaultDestroyer() Destroyer {
	return config.DefaultDestroyer()
}
