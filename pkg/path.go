package pkg

import (
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/ardnew/mung"
)

// Prefix returns the base name of the running executable, used to name the
// configuration and cache directories.
//
// A dlv debug binary ("__debug_bin1234") is reported as [Name], and leading
// dots are removed.
//
//nolint:gochecknoglobals
var Prefix = sync.OnceValue(func() string {
	id := os.Args[0]
	if exe, err := os.Executable(); err == nil {
		id = exe
	}

	return normalizePrefix(id)
})

var (
	debugBin   = regexp.MustCompile(`^__debug_bin\d*$`)
	leadingDot = regexp.MustCompile(`^\.+`)
)

func normalizePrefix(path string) string {
	base := leadingDot.ReplaceAllString(filepath.Base(path), "")
	base = strings.TrimSuffix(base, filepath.Ext(base))

	if debugBin.MatchString(base) {
		return Name
	}

	return base
}

// ConfigDir returns the directory holding the configuration file and user
// grammars.
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(func() string {
	return userDir(os.UserConfigDir, ".config")
})

// CacheDir returns the directory holding transient files such as REPL
// history.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(func() string {
	return userDir(os.UserCacheDir, ".cache")
})

func userDir(lookup func() (string, error), fallback string) string {
	dir, err := lookup()
	if err != nil {
		if home, herr := os.UserHomeDir(); herr == nil {
			dir = filepath.Join(home, fallback)
		} else if wd, werr := os.Getwd(); werr == nil {
			dir = wd
		} else {
			dir = "."
		}
	}

	return filepath.Join(dir, Prefix())
}

// PathEnv is the environment variable listing extra grammar directories.
const PathEnv = "CHATGRAM_PATH"

// SearchPath returns the directories searched for grammar declarations:
// the working directory, the grammars directory under [ConfigDir], then
// each directory in env, a list separated by [os.PathListSeparator].
// Empty and repeated entries are removed.
func SearchPath(env string) []string {
	sep := string(os.PathListSeparator)

	joined := mung.Make(
		mung.WithSubjectItems(filepath.SplitList(env)...),
		mung.WithDelim(sep),
		// Prefix items are emitted last to first.
		mung.WithPrefixItems(filepath.Join(ConfigDir(), "grammars"), "."),
		mung.WithFilter(func(dir string) bool {
			return strings.TrimSpace(dir) != ""
		}),
	).String()

	var dirs []string

	for _, dir := range filepath.SplitList(joined) {
		if dir != "" && !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}

	return dirs
}

// FindGrammar resolves name against the directories in path. An absolute
// name, or one that exists relative to the working directory, is returned
// unchanged. The bool reports whether a file was found.
func FindGrammar(name string, path []string) (string, bool) {
	if filepath.IsAbs(name) {
		return name, isFile(name)
	}

	for _, dir := range path {
		candidate := filepath.Join(dir, name)
		if isFile(candidate) {
			return candidate, true
		}
	}

	return name, false
}

func isFile(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.Mode().IsRegular()
}
