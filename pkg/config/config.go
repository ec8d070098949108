/*
 * Copyright (c) 2023 shenjunzheng@gmail.com
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package config

import (
	"errors"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	DefaultConfigType = "json"
)

var (
	// ERROR
	ErrInvalidDirectory  = errors.New("invalid directory path")
	ErrMissingConfigName = errors.New("config name not specified")
	ErrMissingConfigFile = errors.New("config file not specified")
)

// Manager wraps a viper instance bound to a single settings file.
type Manager struct {
	App       string
	EnvPrefix string
	File      string

	Viper *viper.Viper
}

// New initializes a manager for the settings file at file.
// When envPrefix is set, every key can be overridden from the environment,
// e.g. settings.tor.installation-path -> <PREFIX>_SETTINGS_TOR_INSTALLATION_PATH.
func New(app, file, envPrefix string) (*Manager, error) {
	if len(app) == 0 {
		return nil, ErrMissingConfigName
	}
	if len(file) == 0 {
		return nil, ErrMissingConfigFile
	}

	v := viper.New()
	v.SetConfigType(DefaultConfigType)
	v.SetConfigFile(file)

	// Env
	if len(envPrefix) != 0 {
		v.SetEnvPrefix(strings.ToUpper(envPrefix))
		v.AutomaticEnv()
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	}

	return &Manager{
		App:       app,
		EnvPrefix: envPrefix,
		File:      file,
		Viper:     v,
	}, nil
}

// Read reads the settings file. It must be called before Load or Require.
func (c *Manager) Read() error {
	if err := c.Viper.ReadInConfig(); err != nil {
		log.Debug().Err(err).Str("file", c.File).Msg("read config failed")
		return err
	}
	return nil
}

// Load unmarshals the subtree under key into conf. An empty key
// unmarshals the whole document.
func (c *Manager) Load(key string, conf interface{}) error {
	if len(key) == 0 {
		return c.Viper.Unmarshal(conf, decoderConfig())
	}
	return c.Viper.UnmarshalKey(key, conf, decoderConfig())
}

// Require returns the first key in keys that is not set, or "" when all are.
func (c *Manager) Require(keys ...string) string {
	for _, key := range keys {
		if !c.Viper.IsSet(key) {
			return key
		}
	}
	return ""
}

// GetConfig retrieves all configuration settings as a map.
func (c *Manager) GetConfig() map[string]interface{} {
	return c.Viper.AllSettings()
}

// PrepareDir ensures that the specified directory path exists.
// If the directory does not exist, it attempts to create it.
func PrepareDir(path string) error {
	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := os.MkdirAll(path, 0755); err != nil {
				return err
			}
		} else {
			return err
		}
	} else if !stat.IsDir() {
		log.Debug().Msgf("%s is not a directory", path)
		return ErrInvalidDirectory
	}
	return nil
}
