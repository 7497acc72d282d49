/*
File   : rei/replcfg/replcfg.go
Package replcfg loads the REPL's optional configuration file,
~/.reirc.yaml: the prompt string, whether output is colorized, and
whether variables declared on one REPL line remain visible on the next
(spec.md §9 Open Question (e), resolved in DESIGN.md as persist-by-
default with this file as the opt-out).

Grounded on krotik-ecal's config/config.go (a package-level default
config overlaid by whatever the environment supplies), adapted here to
a typed struct loaded from YAML rather than a map[string]interface{},
since rei has exactly three known settings rather than an open-ended
key space.
*/
package replcfg

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds every REPL-tunable setting.
type Config struct {
	Prompt         string `yaml:"prompt"`
	Color          bool   `yaml:"color"`
	PersistGlobals bool   `yaml:"persist_globals"`
}

// Default returns the configuration the REPL uses when no config file
// is present or readable: rei's own prompt, color on, globals persisted
// across lines.
func Default() Config {
	return Config{
		Prompt:         "rei> ",
		Color:          true,
		PersistGlobals: true,
	}
}

// Path returns the default config file location, ~/.reirc.yaml. It
// returns an error only if the home directory can't be determined.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".reirc.yaml"), nil
}

// Load reads and parses path, overlaying whatever fields it sets onto
// Default(). A missing file is not an error - the REPL is expected to
// work with zero configuration - and returns Default() unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadDefaultPath is a convenience wrapper that resolves Path() and
// then Load()s it, falling back to Default() if the home directory
// can't be resolved at all.
func LoadDefaultPath() Config {
	path, err := Path()
	if err != nil {
		return Default()
	}
	cfg, err := Load(path)
	if err != nil {
		return Default()
	}
	return cfg
}
