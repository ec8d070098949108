package conf

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/sjzar/freedom/internal/errors"
	"github.com/sjzar/freedom/pkg/config"
)

const (
	AppName           = "freedom"
	EnvPrefix         = "FREEDOM"
	EnvConfigFile     = "FREEDOM_CONFIG"
	DefaultConfigFile = "settings.json"
	DefaultDataDir    = "data"
)

var ObserverRequiredKeys = []string{
	"observers",
	"settings.check_for_observers.write_to_output",
	"settings.check_for_observers.output_file",
}

var ToolRequiredKeys = []string{
	"settings.tor.installation-path",
	"settings.tor.installer-urls",
	"settings.tor.run_instlr_silent",
}

var ToolDefaults = map[string]any{
	"settings.tor.data-dir":        DefaultDataDir,
	"settings.tor.install-timeout": "0s",
}

// LoadObserverSettings loads the settings file and returns the observer view.
func LoadObserverSettings(configFile string) (*ObserverSettings, error) {
	c, err := load(configFile, nil, ObserverRequiredKeys)
	if err != nil {
		return nil, err
	}
	return c.ObserverSettings(), nil
}

// LoadToolSettings loads the settings file and returns the tool bootstrap view.
func LoadToolSettings(configFile string) (*ToolSettings, error) {
	c, err := load(configFile, ToolDefaults, ToolRequiredKeys)
	if err != nil {
		return nil, err
	}
	return c.ToolSettings(), nil
}

func load(configFile string, defaults map[string]any, required []string) (*Config, error) {
	if configFile == "" {
		configFile = os.Getenv(EnvConfigFile)
	}
	if configFile == "" {
		configFile = DefaultConfigFile
	}

	cm, err := config.New(AppName, configFile, EnvPrefix)
	if err != nil {
		return nil, errors.Config("init config failed", err)
	}
	for key, value := range defaults {
		cm.Viper.SetDefault(key, value)
	}

	if err := cm.Read(); err != nil {
		return nil, errors.ConfigReadFailed(configFile, err)
	}

	if missing := cm.Require(required...); missing != "" {
		return nil, errors.ConfigMissing(missing)
	}

	conf := &Config{}
	if err := cm.Load("", conf); err != nil {
		return nil, errors.ConfigInvalid(configFile, err)
	}

	log.Debug().Str("file", configFile).Interface("config", conf).Msg("settings loaded")

	return conf, nil
}
