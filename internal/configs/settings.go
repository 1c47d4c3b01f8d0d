package configs

import (
	"fmt"
	"os"
	"path/filepath"

	cierrors "github.com/collab-intel/ci/internal/errors"
	"github.com/collab-intel/ci/internal/utils"
)

const (
	appDirName    = "ci"
	auditFileName = "audit.jsonl"
)

type UserSettings struct {
	ConfigDir    string
	KeysPath     string
	AuditPath    string
	AuditEnabled bool
	Username     string
}

var UserCISettings *UserSettings

// InitUserSettings resolves the user configuration directory, the global key
// store path and the audit settings.
//
// When the platform cannot supply a configuration directory, an explicit
// CI_KEYS_PATH still works (audit is then disabled); otherwise the error
// wraps ErrConfigDirUnavailable.
func InitUserSettings() error {
	configDir := ""
	if base, err := os.UserConfigDir(); err == nil {
		configDir = filepath.Join(base, appDirName)
	}

	cliConfig, err := LoadCLIConfig(configDir)
	if err != nil {
		return err
	}

	keysPath := cliConfig.GetString(SettingKeysPath)
	if keysPath == "" {
		if configDir == "" {
			return fmt.Errorf("%w: set CI_KEYS_PATH to choose a key store location", cierrors.ErrConfigDirUnavailable)
		}
		keysPath = filepath.Join(configDir, utils.KeysFileName)
	}

	username, err := utils.GetUsername()
	if err != nil {
		username = "unknown"
	}

	settings := &UserSettings{
		ConfigDir:    configDir,
		KeysPath:     keysPath,
		AuditEnabled: configDir != "" && cliConfig.GetBool(SettingAudit),
		Username:     username,
	}
	if configDir != "" {
		settings.AuditPath = filepath.Join(configDir, auditFileName)
	}

	UserCISettings = settings
	return nil
}
