package gridwatch_test

import "github.com/tauraamui/gridwatch/pkg/log"

func overloadDebugLog(overload func(string, ...interface{})) func() {
	logDebugRef := log.Debug
	log.Debug = overload
	return func() { log.Debug = logDebugRef }
}

func overloadWarnLog(overload func(string, ...interface{})) func() {
	logWarnRef := log.Warn
	log.Warn = overload
	return func() { log.Warn = logWarnRef }
}

func overloadInfoLog(overload func(string, ...interface{})) func() {
	logInfoRef := log.Info
	log.Info = overload
	return func() { log.Info = logInfoRef }
}
