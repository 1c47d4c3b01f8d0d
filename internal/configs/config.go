package configs

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	// EnvPrefix is prepended to setting names to form environment variables.
	EnvPrefix = "CI"

	// SettingKeysPath redirects the global key store file (CI_KEYS_PATH).
	SettingKeysPath = "keys_path"

	// SettingAudit toggles the audit trail (CI_AUDIT).
	SettingAudit = "audit"

	configFileName = "config"
	configFileType = "toml"
)

// LoadCLIConfig builds a viper instance reading <configDir>/config.toml and
// CI_-prefixed environment variables. A missing config file is not an error.
// configDir may be empty when the platform has no user configuration directory.
func LoadCLIConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetDefault(SettingAudit, true)

	if configDir == "" {
		return v, nil
	}

	v.SetConfigFile(filepath.Join(configDir, configFileName+"."+configFileType))
	v.SetConfigType(configFileType)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || isNotExist(err) {
			return v, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", v.ConfigFileUsed(), err)
	}

	return v, nil
}
