package fluri

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// config is the set of `Registry` options that can be loaded from a config
// file. Keys absent from the file leave the options untouched.
type config struct {
	AppName           *string      `mapstructure:"app_name"`
	DebugMode         *bool        `mapstructure:"debug_mode"`
	LoggerLowestLevel *LoggerLevel `mapstructure:"logger_lowest_level"`
	TemplateFile      *string      `mapstructure:"template_file"`
	TemplateWatch     *bool        `mapstructure:"template_watch"`
	CacheMaxBytes     *int         `mapstructure:"cache_max_bytes"`
	NormalizeUnicode  *bool        `mapstructure:"normalize_unicode"`
	IDNAHosts         *bool        `mapstructure:"idna_hosts"`
}

// loadConfig loads the config file of the r into the r. A relative template
// file is resolved against the directory of the config file.
func (r *Registry) loadConfig() error {
	if r.ConfigFile == "" {
		return nil
	}

	b, err := os.ReadFile(r.ConfigFile)
	if err != nil {
		return err
	}

	m, err := decodeMap(formatOfFile(r.ConfigFile), b)
	if errors.Is(err, ErrUnsupportedFormat) {
		return fmt.Errorf(
			"%w: unsupported configuration file extension: %s",
			ErrUnsupportedFormat,
			filepath.Ext(r.ConfigFile),
		)
	} else if err != nil {
		return err
	}

	c := config{}
	if err := decode(m, &c); err != nil {
		return err
	}

	if c.AppName != nil {
		r.AppName = *c.AppName
	}

	if c.DebugMode != nil {
		r.DebugMode = *c.DebugMode
	}

	if c.LoggerLowestLevel != nil {
		r.LoggerLowestLevel = *c.LoggerLowestLevel
	}

	if c.TemplateFile != nil {
		r.TemplateFile = *c.TemplateFile
		if r.TemplateFile != "" && !filepath.IsAbs(r.TemplateFile) {
			r.TemplateFile = filepath.Join(
				filepath.Dir(r.ConfigFile),
				r.TemplateFile,
			)
		}
	}

	if c.TemplateWatch != nil {
		r.TemplateWatch = *c.TemplateWatch
	}

	if c.CacheMaxBytes != nil {
		r.CacheMaxBytes = *c.CacheMaxBytes
	}

	if c.NormalizeUnicode != nil {
		r.NormalizeUnicode = *c.NormalizeUnicode
	}

	if c.IDNAHosts != nil {
		r.IDNAHosts = *c.IDNAHosts
	}

	r.logger.log(LoggerLevelDebug, "fluri: config file loaded", map[string]interface{}{
		"config_file": r.ConfigFile,
	})

	return nil
}

// loggerLevelType is the reflected type of the `LoggerLevel`.
var loggerLevelType = reflect.TypeOf(LoggerLevel(0))

// stringToLoggerLevelHookFunc returns a decode hook that decodes strings such
// as "debug" into the `LoggerLevel`.
func stringToLoggerLevelHookFunc() mapstructure.DecodeHookFuncType {
	return func(
		from reflect.Type,
		to reflect.Type,
		data interface{},
	) (interface{}, error) {
		if from.Kind() != reflect.String || to != loggerLevelType {
			return data, nil
		}

		return ParseLoggerLevel(data.(string)), nil
	}
}
