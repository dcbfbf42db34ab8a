package cli

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/ardnew/reap/pkg"
)

// baseConfig is the base name of the configuration file and the namespace its
// settings are resolved from.
const baseConfig = "config"

// defaultDirMode is the permission mode of created state directories.
const defaultDirMode os.FileMode = 0o700

// debugBinary matches executables built by the delve debugger.
var debugBinary = regexp.MustCompile(`^__debug_bin\d*$`)

// appName names the per-user state directories. It follows the executable
// name so that renamed binaries keep separate configuration and history.
// Debugger builds and unnamed executables share the state of [pkg.Name].
var appName = sync.OnceValue(func() string {
	exe, err := os.Executable()
	if err != nil {
		exe = os.Args[0]
	}

	name := filepath.Base(exe)
	name = strings.TrimLeft(strings.TrimSuffix(name, filepath.Ext(name)), ".")

	if name == "" || debugBinary.MatchString(name) {
		return pkg.Name
	}

	return name
})

// userDir returns the application subdirectory of the directory reported by
// base. If base fails, hidden is tried under the home directory, and then the
// working directory is used.
func userDir(base func() (string, error), hidden string) string {
	dir, err := base()
	if err != nil {
		dir = "."

		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, hidden)
		}
	}

	return filepath.Join(dir, appName())
}

// configDir holds the configuration file written by the init command.
var configDir = sync.OnceValue(func() string {
	return userDir(os.UserConfigDir, ".config")
})

// cacheDir holds REPL history and profiling output.
var cacheDir = sync.OnceValue(func() string {
	return userDir(os.UserCacheDir, ".cache")
})

// configPath joins elem onto [configDir].
func configPath(elem ...string) string {
	return filepath.Join(append([]string{configDir()}, elem...)...)
}

// mkdirAllRequired creates the configuration and cache directories.
func mkdirAllRequired() error {
	for _, dir := range []string{configDir(), cacheDir()} {
		if err := os.MkdirAll(dir, defaultDirMode); err != nil {
			return err
		}
	}

	return nil
}
