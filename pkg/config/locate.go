// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"os"
	"path/filepath"
)

// EnvOverride is the environment variable that, if set, names the
// configuration file path directly.
const EnvOverride = "TT_RIINGD_CONFIG"

const (
	configDirName  = "tt_riingd"
	configFileName = "config.yml"
)

// Locate applies the locate rule: TT_RIINGD_CONFIG, then
// $XDG_CONFIG_HOME/tt_riingd/config.yml, else $HOME/.config/tt_riingd/config.yml,
// then /etc/tt_riingd/config.yml. It returns the first candidate that
// exists, or ErrConfigNotFound if none do.
func Locate() (string, error) {
	if p := os.Getenv(EnvOverride); p != "" {
		return p, nil
	}

	for _, candidate := range candidates() {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", ErrConfigNotFound
}

func candidates() []string {
	var out []string

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		out = append(out, filepath.Join(xdg, configDirName, configFileName))
	} else if home := os.Getenv("HOME"); home != "" {
		out = append(out, filepath.Join(home, ".config", configDirName, configFileName))
	}

	out = append(out, filepath.Join("/etc", configDirName, configFileName))
	return out
}
