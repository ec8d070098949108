package conf

import (
	"strings"
	"time"
)

// Config mirrors the settings document.
type Config struct {
	Observers []string `mapstructure:"observers" json:"observers"`
	Settings  Settings `mapstructure:"settings" json:"settings"`
}

type Settings struct {
	CheckForObservers ObserverOutput `mapstructure:"check_for_observers" json:"check_for_observers"`
	Tor               ToolSettings   `mapstructure:"tor" json:"tor"`
}

type ObserverOutput struct {
	WriteToOutput bool   `mapstructure:"write_to_output" json:"write_to_output"`
	OutputFile    string `mapstructure:"output_file" json:"output_file"`
}

// ObserverSettings is what the observer scan needs from the settings.
type ObserverSettings struct {
	Watchlist []string
	ObserverOutput
}

// ToolSettings configures the tool bootstrap.
//
// Map keys are platform names (Windows, Darwin, Linux). The settings loader
// lowercases them, so lookups go through the accessor methods.
type ToolSettings struct {
	InstallationPath   string            `mapstructure:"installation-path" json:"installation-path"`
	InstallerURLs      map[string]string `mapstructure:"installer-urls" json:"installer-urls"`
	RunInstallerSilent bool              `mapstructure:"run_instlr_silent" json:"run_instlr_silent"`
	DataDir            string            `mapstructure:"data-dir" json:"data-dir"`
	InstallerChecksums map[string]string `mapstructure:"installer-checksums" json:"installer-checksums,omitempty"`
	LaunchPaths        map[string]string `mapstructure:"launch-paths" json:"launch-paths,omitempty"`

	// InstallTimeout bounds each installer step. Zero waits forever.
	InstallTimeout time.Duration `mapstructure:"install-timeout" json:"install-timeout"`
}

func (c *Config) ObserverSettings() *ObserverSettings {
	return &ObserverSettings{
		Watchlist:      c.Observers,
		ObserverOutput: c.Settings.CheckForObservers,
	}
}

func (c *Config) ToolSettings() *ToolSettings {
	s := c.Settings.Tor
	if s.DataDir == "" {
		s.DataDir = DefaultDataDir
	}
	return &s
}

func (s *ToolSettings) InstallerURL(platform string) (string, bool) {
	return lookup(s.InstallerURLs, platform)
}

func (s *ToolSettings) InstallerChecksum(platform string) string {
	v, _ := lookup(s.InstallerChecksums, platform)
	return v
}

func (s *ToolSettings) LaunchPath(platform string) string {
	v, _ := lookup(s.LaunchPaths, platform)
	return v
}

func lookup(m map[string]string, platform string) (string, bool) {
	if v, ok := m[platform]; ok && v != "" {
		return v, true
	}
	for k, v := range m {
		if strings.EqualFold(k, platform) && v != "" {
			return v, true
		}
	}
	return "", false
}
