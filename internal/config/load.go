package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/tauraamui/gridwatch/pkg/configdef"
	"github.com/tauraamui/gridwatch/pkg/log"
	"github.com/tauraamui/xerror"
)

func load() (configdef.Values, error) {
	var values configdef.Values

	configPath, err := resolveConfigPath()
	if err != nil {
		return configdef.Values{}, err
	}

	log.Info("Resolved config file location: %s", configPath)
	file, err := readConfigFile(configPath)
	if err != nil {
		return configdef.Values{}, err
	}

	if err := unmarshal(file, &values); err != nil {
		return configdef.Values{}, err
	}

	applyDefaults(&values)

	if err = values.RunValidate(); err != nil {
		return configdef.Values{}, err
	}

	return values, nil
}

// applyDefaults fills absent settings ahead of validation, so a sparse
// config file stays loadable while an explicitly wrong one still fails.
func applyDefaults(values *configdef.Values) {
	if values.MaxSnapshotAgeInDays == 0 {
		values.MaxSnapshotAgeInDays = defaultSettings[MAXSNAPSHOTAGEINDAYS].(int)
	}
	if values.SnapshotIntervalSeconds == 0 {
		values.SnapshotIntervalSeconds = defaultSettings[SNAPSHOTINTERVALSECONDS].(int)
	}
	if len(values.RPCListenPort) == 0 {
		values.RPCListenPort = defaultSettings[RPCLISTENPORT].(string)
	}

	for i := range values.Cameras {
		grid := &values.Cameras[i].Grid
		if grid.Rows == 0 {
			grid.Rows = defaultSettings[GRIDROWS].(int)
		}
		if grid.Columns == 0 {
			grid.Columns = defaultSettings[GRIDCOLUMNS].(int)
		}
	}
}

var readConfigFile = func(path string) ([]byte, error) {
	return afero.ReadFile(fs, path)
}

func unmarshal(content []byte, values *configdef.Values) error {
	err := json.Unmarshal(content, values)
	if err != nil {
		return errors.Errorf("parsing configuration error: %v", err)
	}
	return nil
}

func resolveConfigPath() (string, error) {
	configPath := os.Getenv("GRIDWATCH_CONFIG")
	if len(configPath) > 0 {
		return configPath, nil
	}

	configParentDir, err := userConfigDir()
	if err != nil {
		return "", xerror.Errorf("unable to resolve %s location: %w", configFileName, err)
	}

	return filepath.Join(
		configParentDir,
		vendorName,
		appName,
		configFileName), nil
}

var userConfigDir = func() (string, error) {
	return os.UserConfigDir()
}
