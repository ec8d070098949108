package platform

import (
	stderrors "errors"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjzar/freedom/internal/errors"
)

func TestResolve_KnownPlatforms(t *testing.T) {
	seen := map[string]bool{}
	for _, name := range []string{Windows, Darwin, Linux} {
		p, err := Resolve(name)
		require.NoError(t, err, name)

		assert.Equal(t, name, p.Name)
		assert.NotEmpty(t, p.InstallerExt)
		assert.NotEmpty(t, p.DefaultLaunchPath)
		assert.NotEmpty(t, p.InstallSteps("installer", "dest", true))
		assert.NotEmpty(t, p.LaunchCommand("dest", ""))

		assert.False(t, seen[p.InstallerExt], "extension %s reused", p.InstallerExt)
		seen[p.InstallerExt] = true
	}
}

func TestResolve_Extensions(t *testing.T) {
	for name, ext := range map[string]string{Windows: "exe", Darwin: "dmg", Linux: "tar.xz"} {
		p, err := Resolve(name)
		require.NoError(t, err)
		assert.Equal(t, ext, p.InstallerExt)
	}
}

func TestResolve_GOOSSpelling(t *testing.T) {
	p, err := Resolve("darwin")
	require.NoError(t, err)
	assert.Equal(t, Darwin, p.Name)
}

func TestResolve_Unsupported(t *testing.T) {
	for _, name := range []string{"Plan9", "freebsd", ""} {
		p, err := Resolve(name)
		assert.Nil(t, p)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrTypePlatform))
		assert.True(t, stderrors.Is(err, errors.ErrUnsupportedPlatform))
	}
}

func TestResolve_ReturnsCopies(t *testing.T) {
	a, _ := Resolve(Linux)
	a.DefaultLaunchPath = "changed"
	b, _ := Resolve(Linux)
	assert.Equal(t, "tor-browser/Browser/start-tor-browser", b.DefaultLaunchPath)
}

func TestCurrent(t *testing.T) {
	p, err := Current()
	switch runtime.GOOS {
	case "windows", "darwin", "linux":
		require.NoError(t, err)
		assert.NotNil(t, p)
	default:
		assert.Error(t, err)
	}
}

func TestPaths(t *testing.T) {
	p, _ := Resolve(Linux)
	assert.Equal(t, filepath.Join("root", "Linux"), p.InstallDir("root"))
	assert.Equal(t, filepath.Join("data", "tor", "installers", "tor-Linux.tar.xz"), p.InstallerPath("data"))
}

func TestWindowsInstallSteps(t *testing.T) {
	p, _ := Resolve(Windows)

	assert.Equal(t, [][]string{{"setup.exe", "/S", "/D=C:\\tor"}}, p.InstallSteps("setup.exe", "C:\\tor", true))
	assert.Equal(t, [][]string{{"setup.exe", "/D=C:\\tor"}}, p.InstallSteps("setup.exe", "C:\\tor", false))
	assert.Equal(t, []string{filepath.Join("C:\\tor", "Browser", "firefox.exe")}, p.LaunchCommand("C:\\tor", ""))
}

func TestDarwinInstallSteps(t *testing.T) {
	p, _ := Resolve(Darwin)

	steps := p.InstallSteps("/data/tor-Darwin.dmg", "/opt/tor/Darwin", true)
	require.Len(t, steps, 4)
	assert.Equal(t, []string{"hdiutil", "attach", "-nobrowse", "-readonly", "-quiet", "-mountpoint", "/data/tor-Darwin.volume", "/data/tor-Darwin.dmg"}, steps[0])
	assert.Equal(t, []string{"cp", "-R", filepath.Join("/data/tor-Darwin.volume", "Tor Browser.app"), "/opt/tor/Darwin"}, steps[2])
	assert.Equal(t, []string{"hdiutil", "detach", "-quiet", "/data/tor-Darwin.volume"}, steps[3])

	loud := p.InstallSteps("/data/tor-Darwin.dmg", "/opt/tor/Darwin", false)
	assert.NotContains(t, loud[0], "-quiet")

	assert.Equal(t, []string{"open", "-W", "-a", filepath.Join("/opt/tor/Darwin", "Tor Browser.app")}, p.LaunchCommand("/opt/tor/Darwin", ""))
}

func TestLinuxInstallSteps(t *testing.T) {
	p, _ := Resolve(Linux)

	assert.Equal(t, [][]string{
		{"mkdir", "-p", "/opt/tor/Linux"},
		{"tar", "-xJf", "/data/tor-Linux.tar.xz", "-C", "/opt/tor/Linux"},
	}, p.InstallSteps("/data/tor-Linux.tar.xz", "/opt/tor/Linux", true))
	assert.Equal(t, "-xvJf", p.InstallSteps("/data/tor-Linux.tar.xz", "/opt/tor/Linux", false)[1][1])

	assert.Equal(t, []string{filepath.Join("/opt/tor/Linux", "custom", "start")}, p.LaunchCommand("/opt/tor/Linux", "custom/start"))
}
