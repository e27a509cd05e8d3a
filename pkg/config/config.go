package config

import (
	"github.com/tauraamui/gridwatch/internal/config"
	"github.com/tauraamui/gridwatch/pkg/configdef"
)

type Resolver interface {
	configdef.Resolver
}

func DefaultResolver() Resolver {
	return config.DefaultResolver()
}
