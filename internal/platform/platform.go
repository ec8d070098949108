package platform

import (
	"path/filepath"
	"runtime"
	"strings"

	"github.com/sjzar/freedom/internal/errors"
)

// Platform names, as used for settings keys and install directories.
const (
	Windows = "Windows"
	Darwin  = "Darwin"
	Linux   = "Linux"
)

const (
	InstallersDir   = "tor/installers"
	InstallerPrefix = "tor-"
)

// Profile holds everything that differs between operating systems.
// Profiles are values; Resolve hands out copies.
type Profile struct {
	Name              string
	InstallerExt      string
	SilentSwitch      string
	DefaultLaunchPath string

	install func(p Profile, installer, dest string, silent bool) [][]string
	launch  func(p Profile, target string) []string
}

// Resolve maps an OS identifier to its profile. Both the settings spelling
// (Windows) and the runtime.GOOS spelling (windows) are accepted.
func Resolve(os string) (*Profile, error) {
	var p Profile
	switch strings.ToLower(os) {
	case "windows":
		p = windowsProfile
	case "darwin":
		p = darwinProfile
	case "linux":
		p = linuxProfile
	default:
		return nil, errors.PlatformUnsupported(os)
	}
	return &p, nil
}

// Current resolves the profile of the running OS.
func Current() (*Profile, error) {
	return Resolve(runtime.GOOS)
}

// InstallDir is where the tool lives once installed.
func (p *Profile) InstallDir(root string) string {
	return filepath.Join(root, p.Name)
}

// InstallerPath is the cache location of the downloaded installer.
func (p *Profile) InstallerPath(dataDir string) string {
	return filepath.Join(dataDir, filepath.FromSlash(InstallersDir), InstallerPrefix+p.Name+"."+p.InstallerExt)
}

// InstallSteps returns the external commands that install the tool from
// installer into dest, in order.
func (p *Profile) InstallSteps(installer, dest string, silent bool) [][]string {
	return p.install(*p, installer, dest, silent)
}

// LaunchCommand returns the command starting the tool installed in dest.
// A non-empty launchPath replaces DefaultLaunchPath.
func (p *Profile) LaunchCommand(dest, launchPath string) []string {
	if launchPath == "" {
		launchPath = p.DefaultLaunchPath
	}
	return p.launch(*p, filepath.Join(dest, filepath.FromSlash(launchPath)))
}

var windowsProfile = Profile{
	Name:              Windows,
	InstallerExt:      "exe",
	SilentSwitch:      "/S",
	DefaultLaunchPath: "Browser/firefox.exe",
	install: func(p Profile, installer, dest string, silent bool) [][]string {
		cmd := []string{installer}
		if silent {
			cmd = append(cmd, p.SilentSwitch)
		}
		// NSIS requires /D to be the last argument
		cmd = append(cmd, "/D="+dest)
		return [][]string{cmd}
	},
	launch: func(p Profile, target string) []string {
		return []string{target}
	},
}

var darwinProfile = Profile{
	Name:              Darwin,
	InstallerExt:      "dmg",
	SilentSwitch:      "-quiet",
	DefaultLaunchPath: "Tor Browser.app",
	install: func(p Profile, installer, dest string, silent bool) [][]string {
		mountPoint := strings.TrimSuffix(installer, "."+p.InstallerExt) + ".volume"
		attach := []string{"hdiutil", "attach", "-nobrowse", "-readonly"}
		detach := []string{"hdiutil", "detach"}
		if silent {
			attach = append(attach, p.SilentSwitch)
			detach = append(detach, p.SilentSwitch)
		}
		attach = append(attach, "-mountpoint", mountPoint, installer)
		detach = append(detach, mountPoint)
		return [][]string{
			attach,
			{"mkdir", "-p", dest},
			{"cp", "-R", filepath.Join(mountPoint, p.DefaultLaunchPath), dest},
			detach,
		}
	},
	launch: func(p Profile, target string) []string {
		// -W blocks until the application quits
		return []string{"open", "-W", "-a", target}
	},
}

var linuxProfile = Profile{
	Name:              Linux,
	InstallerExt:      "tar.xz",
	DefaultLaunchPath: "tor-browser/Browser/start-tor-browser",
	install: func(p Profile, installer, dest string, silent bool) [][]string {
		flags := "-xvJf"
		if silent {
			flags = "-xJf"
		}
		return [][]string{
			{"mkdir", "-p", dest},
			{"tar", flags, installer, "-C", dest},
		}
	},
	launch: func(p Profile, target string) []string {
		return []string{target}
	},
}
