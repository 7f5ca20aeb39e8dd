package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// Settings are the tool's runtime settings.
//
// Priority (highest to lowest):
// 1. Environment variables with ENTITYGEN_ prefix (e.g., ENTITYGEN_LOG_LEVEL)
// 2. entitygen.yaml in the working directory or ~/.entitygen
// 3. Built-in defaults
type Settings struct {
	Log      LogSettings
	History  HistorySettings
	Generate GenerateSettings
	Server   ServerSettings
}

// LogSettings configures the structured logger.
type LogSettings struct {
	Level  string `validate:"oneof=debug info warn error"`
	Format string `validate:"oneof=json console"`
	Output string `validate:"required"`
}

// HistorySettings locates the generation history database.
type HistorySettings struct {
	Enabled bool
	Path    string
}

// GenerateSettings holds generation defaults.
type GenerateSettings struct {
	OverwritePolicy string `validate:"oneof=silent confirm"`
	Structure       string
}

// ServerSettings configures the HTTP API.
type ServerSettings struct {
	Addr string `validate:"required"`
}

// LoadSettings reads settings from fs. An empty configFile searches the
// default locations; a missing file is not an error.
func LoadSettings(fs afero.Fs, configFile string) (*Settings, error) {
	v := viper.New()
	v.SetFs(fs)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("entitygen")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".entitygen"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("ENTITYGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("history.enabled", true)

	s := &Settings{
		Log: LogSettings{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		History: HistorySettings{
			Enabled: v.GetBool("history.enabled"),
			Path:    v.GetString("history.path"),
		},
		Generate: GenerateSettings{
			OverwritePolicy: v.GetString("generate.overwrite_policy"),
			Structure:       v.GetString("generate.structure"),
		},
		Server: ServerSettings{
			Addr: v.GetString("server.addr"),
		},
	}

	applySettingDefaults(s)

	if err := validator.New().Struct(s); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return s, nil
}

func applySettingDefaults(s *Settings) {
	if s.Log.Level == "" {
		s.Log.Level = "info"
	}
	if s.Log.Format == "" {
		s.Log.Format = "console"
	}
	if s.Log.Output == "" {
		s.Log.Output = "stderr"
	}
	if s.History.Path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			s.History.Path = filepath.Join(home, ".entitygen", "history.db")
		} else {
			s.History.Path = filepath.Join(".entitygen", "history.db")
		}
	}
	if s.Generate.OverwritePolicy == "" {
		s.Generate.OverwritePolicy = "silent"
	}
	if s.Server.Addr == "" {
		s.Server.Addr = ":8080"
	}
}
