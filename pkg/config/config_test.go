package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testSettings struct {
	Names   []string          `mapstructure:"names"`
	URLs    map[string]string `mapstructure:"urls"`
	Timeout time.Duration     `mapstructure:"timeout"`
	Enabled bool              `mapstructure:"enabled"`
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestManager_LoadWithEnvOverrides(t *testing.T) {
	file := writeFile(t, `{"names":["a"],"urls":{"x":"1"},"timeout":"1s","enabled":false}`)
	t.Setenv("CFGTEST_NAMES", `["b","c"]`)
	t.Setenv("CFGTEST_TIMEOUT", "2m")
	t.Setenv("CFGTEST_ENABLED", "true")

	cm, err := New("cfgtest", file, "cfgtest")
	require.NoError(t, err)
	require.NoError(t, cm.Read())

	var s testSettings
	require.NoError(t, cm.Load("", &s))
	assert.Equal(t, []string{"b", "c"}, s.Names)
	assert.Equal(t, map[string]string{"x": "1"}, s.URLs)
	assert.Equal(t, 2*time.Minute, s.Timeout)
	assert.True(t, s.Enabled)
}

func TestManager_Require(t *testing.T) {
	file := writeFile(t, `{"names":[],"nested":{"key":1}}`)
	cm, err := New("cfgtest", file, "")
	require.NoError(t, err)
	require.NoError(t, cm.Read())

	assert.Equal(t, "", cm.Require("names", "nested.key"))
	assert.Equal(t, "nested.other", cm.Require("names", "nested.other"))
}

func TestManager_ReadMissingFile(t *testing.T) {
	cm, err := New("cfgtest", filepath.Join(t.TempDir(), "missing.json"), "")
	require.NoError(t, err)
	assert.Error(t, cm.Read())
}

func TestNew_Validation(t *testing.T) {
	_, err := New("", "x.json", "")
	assert.ErrorIs(t, err, ErrMissingConfigName)
	_, err = New("app", "", "")
	assert.ErrorIs(t, err, ErrMissingConfigFile)
}

func TestStringToMapHookFunc(t *testing.T) {
	var out struct {
		M map[string]string `mapstructure:"m"`
		S []string          `mapstructure:"s"`
	}
	dec, err := newTestDecoder(&out)
	require.NoError(t, err)
	require.NoError(t, dec.Decode(map[string]interface{}{"m": "Linux=a, Darwin = b", "s": "x,y"}))
	assert.Equal(t, map[string]string{"Linux": "a", "Darwin": "b"}, out.M)
	assert.Equal(t, []string{"x", "y"}, out.S)

	dec, err = newTestDecoder(&out)
	require.NoError(t, err)
	assert.Error(t, dec.Decode(map[string]interface{}{"m": "broken"}))
}

func newTestDecoder(out interface{}) (*mapstructure.Decoder, error) {
	return mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: CompositeDecodeHook(),
		Result:     out,
	})
}
