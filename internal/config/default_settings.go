package config

import "github.com/tauraamui/gridwatch/pkg/configdef"

type defaultSettingKey uint

const (
	MAXSNAPSHOTAGEINDAYS    defaultSettingKey = 0x0
	SNAPSHOTINTERVALSECONDS defaultSettingKey = 0x1
	CAMERAS                 defaultSettingKey = 0x2
	GRIDROWS                defaultSettingKey = 0x3
	GRIDCOLUMNS             defaultSettingKey = 0x4
	RPCLISTENPORT           defaultSettingKey = 0x5
)

var defaultSettings = map[defaultSettingKey]interface{}{
	MAXSNAPSHOTAGEINDAYS:    30,
	SNAPSHOTINTERVALSECONDS: 60,
	CAMERAS:                 []configdef.Camera{},
	GRIDROWS:                8,
	GRIDCOLUMNS:             8,
	RPCLISTENPORT:           ":3121",
}
