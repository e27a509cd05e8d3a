package config

import (
	"github.com/tauraamui/gridwatch/internal/config"
	"github.com/tauraamui/gridwatch/pkg/configdef"
)

type Creator interface {
	configdef.Creator
}

func DefaultCreator() Creator {
	return config.DefaultCreator()
}
