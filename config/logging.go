package config

import "github.com/teranos/auragraph/logger"

// Options converts the logging section into logger options.
func (l LoggingConfig) Options() logger.Options {
	return logger.Options{
		JSON:       l.JSON,
		Level:      l.Level,
		File:       l.File,
		MaxSizeMB:  l.MaxSizeMB,
		MaxBackups: l.MaxBackups,
		MaxAgeDays: l.MaxAgeDays,
		Compress:   l.Compress,
	}
}
