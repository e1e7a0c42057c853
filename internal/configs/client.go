/*
Package configs is responsible for loading and parsing the application's configuration settings.

This file configures the terminal client with Viper: settings come from a TOML config file
in the user's config directory, overridable by PLUMCHAT_-prefixed environment variables and
command-line flags. A default config file is written on first run.
*/
package configs

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "embed" // used to embed the default client config file.

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

//go:embed plumchat.toml
var defaultClientConfig []byte

// InitClientConfig initializes the client configuration with Viper from the environment,
// the given config file, or the embedded default. If the file does not exist it is
// created with the default contents.
func InitClientConfig(file string) error {
	if file == "" {
		return fmt.Errorf("config file path must not be empty")
	}

	viper.SetConfigName("plumchat")
	viper.SetConfigType("toml")

	// allow env vars to override config file
	viper.SetEnvPrefix("plumchat")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	viper.SetConfigFile(file)

	if _, err := os.Stat(file); err != nil {
		if err := viper.ReadConfig(bytes.NewBuffer(defaultClientConfig)); err != nil {
			return fmt.Errorf("error reading embedded default config: %w", err)
		}

		if err := os.WriteFile(file, defaultClientConfig, 0o600); err != nil {
			return fmt.Errorf("error writing default config file %s: %w", file, err)
		}

		return nil
	}

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// ClientConfigDir returns the plumchat directory under the XDG config home,
// creating it if necessary.
func ClientConfigDir() (string, error) {
	dir := filepath.Join(xdg.ConfigHome, "plumchat")

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("error creating config directory %s: %w", dir, err)
	}

	return dir, nil
}
