package keys

import (
	"fmt"
	"sort"
	"strings"
)

var shellEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"$", `\$`,
	"`", "\\`",
)

// ShellQuote wraps value in double quotes, escaping the characters a POSIX
// shell would otherwise interpret inside them.
func ShellQuote(value string) string {
	return `"` + shellEscaper.Replace(value) + `"`
}

// ExportLines returns one `export NAME="value"` line per plain key in the
// global store, sorted by variable name. Environment-qualified keys are
// skipped. A set environment variable wins over the stored value, as it
// would for Get.
func (r *Resolver) ExportLines() ([]string, error) {
	global, err := r.loadGlobal()
	if err != nil {
		return nil, err
	}

	lines := make(map[string]string)
	for service, keys := range global.Services {
		for keyName, value := range keys {
			name := EnvVarName(service, keyName)
			if override, ok := r.env(name); ok {
				value = override
			}
			lines[name] = fmt.Sprintf("export %s=%s", name, ShellQuote(value))
		}
	}

	names := make([]string, 0, len(lines))
	for name := range lines {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]string, 0, len(names))
	for _, name := range names {
		result = append(result, lines[name])
	}
	return result, nil
}
