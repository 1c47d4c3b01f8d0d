package workflows

import (
	"github.com/collab-intel/ci/internal/configs"
	"github.com/collab-intel/ci/internal/keys"
	"github.com/collab-intel/ci/internal/utils"
)

// ensureUserSettings initialises user settings on first use.
func ensureUserSettings() (*configs.UserSettings, error) {
	if configs.UserCISettings == nil {
		if err := configs.InitUserSettings(); err != nil {
			return nil, err
		}
	}
	return configs.UserCISettings, nil
}

// newResolver builds a resolver over the user store and the project store
// discovered from the working directory. A failed discovery means there is
// no project layer.
func newResolver() (*keys.Resolver, error) {
	settings, err := ensureUserSettings()
	if err != nil {
		return nil, err
	}

	projectPath, err := utils.FindProjectKeysFileFromWd()
	if err != nil {
		projectPath = ""
	}

	return keys.NewResolver(settings.KeysPath, projectPath), nil
}
