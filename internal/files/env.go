package files

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultDirName is the data folder under the user's home directory.
	DefaultDirName = ".sugarlog"

	// HomeEnv overrides the data directory when set.
	HomeEnv = "SUGARLOG_HOME"

	// XDGDataEnv is consulted when HomeEnv is unset.
	XDGDataEnv = "XDG_DATA_HOME"

	xdgDirName = "sugarlog"
)

// ResolveBasePath picks the data directory. SUGARLOG_HOME wins, then
// $XDG_DATA_HOME/sugarlog, then ~/.sugarlog. Blank variables count as unset.
func ResolveBasePath() (string, error) {
	if override := lookup(HomeEnv); override != "" {
		return ExpandHome(override)
	}
	if xdg := lookup(XDGDataEnv); xdg != "" {
		base, err := ExpandHome(xdg)
		if err != nil {
			return "", err
		}
		return filepath.Join(base, xdgDirName), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DefaultDirName), nil
}

// ExpandHome replaces a leading "~" or "~/" with the user's home directory.
// Other paths, including "~name", are returned unchanged.
func ExpandHome(input string) (string, error) {
	if input != "~" && !strings.HasPrefix(input, "~/") {
		return input, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(input, "~")), nil
}

func lookup(key string) string {
	value, _ := os.LookupEnv(key)
	return strings.TrimSpace(value)
}
