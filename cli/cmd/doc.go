// Package cmd implements the chatgram subcommands.
//
// Every command loads its grammar with [LoadGrammar], which reads the
// [Settings] stored in the command's context by the cli package: either a
// YAML declaration found on the grammar search path, or the built-in "!f"
// command grammar.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file.
	ConfigIdentifier = "config"

	// FormatsIdentifier is the kong variable identifier containing the
	// comma-separated result output formats.
	FormatsIdentifier = "resultFormats"
)
