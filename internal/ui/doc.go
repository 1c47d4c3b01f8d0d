// Package ui provides semantic text formatting for CLI output.
//
// Formatters exist per content type (commands, paths, service names, masked
// secrets...). When colors are available, content is colorized. When
// NO_COLOR is set or the terminal doesn't support colors, text-based
// decorations are used instead.
//
//	ui.Code.Sprint("ci keys set openai api_key")  // `ci keys set openai api_key`
//	ui.Path.Sprint("~/.config/ci/keys.toml")
//	ui.Service.Sprint("OPENAI")
//	ui.Secret.Sprint("sk-a****nopq")
//	ui.Success.Sprint("✓")
//	ui.Warning.Sprint("!")
//
// Colors are disabled when the NO_COLOR environment variable is set (any
// value) or when fatih/color detects a terminal without color support.
package ui
