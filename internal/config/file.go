package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// File config keys (config.yaml or VOCAL_REMOVER_* env)
const (
	FileKeyServerURL     = "server_url"
	FileKeyUploadTimeout = "upload_timeout"

	EnvPrefix      = "VOCAL_REMOVER"
	ConfigFileName = "config"
	ConfigFileType = "yaml"
)

// DefaultUploadTimeout bounds a single upload including server-side separation
const DefaultUploadTimeout = 30 * time.Minute

// FileConfig holds deployment-level overrides that are not user preferences:
// where the separation server lives and how long one upload may take.
type FileConfig struct {
	ServerURL     string
	UploadTimeout time.Duration
}

// LoadFileConfig reads the optional config file from the given directories
// and the VOCAL_REMOVER_* environment. A missing file is not an error; the
// returned config always carries usable values.
func LoadFileConfig(configDirs ...string) (*FileConfig, error) {
	v := viper.New()
	v.SetConfigName(ConfigFileName)
	v.SetConfigType(ConfigFileType)
	for _, dir := range configDirs {
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault(FileKeyServerURL, DefaultServerURL)
	v.SetDefault(FileKeyUploadTimeout, DefaultUploadTimeout)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &FileConfig{
		ServerURL:     v.GetString(FileKeyServerURL),
		UploadTimeout: v.GetDuration(FileKeyUploadTimeout),
	}
	if cfg.UploadTimeout <= 0 {
		cfg.UploadTimeout = DefaultUploadTimeout
	}
	return cfg, nil
}
