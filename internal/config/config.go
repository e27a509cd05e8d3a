package config

import "github.com/spf13/afero"

const (
	vendorName     = "tacusci"
	appName        = "gridwatch"
	configFileName = "config.json"
)

var fs afero.Fs = afero.NewOsFs()
