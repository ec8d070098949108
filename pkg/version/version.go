package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Set at build time with -ldflags "-X github.com/sjzar/freedom/pkg/version.Version=..."
var (
	Version = "(dev)"
	Commit  = ""
)

var buildInfo *debug.BuildInfo

func init() {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	buildInfo = bi
	if Version == "(dev)" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		Version = bi.Main.Version
	}
	if Commit == "" {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 7 {
				Commit = s.Value[:7]
			}
		}
	}
}

// Short is the one-line version string.
func Short() string {
	v := Version
	if Commit != "" {
		v += "-" + Commit
	}
	return fmt.Sprintf("%s %s %s/%s", v, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Modules renders the embedded build info, one tab-indented line per entry.
func Modules() string {
	if buildInfo == nil {
		return ""
	}
	s := strings.TrimSuffix(buildInfo.String(), "\n")
	return "\t" + strings.ReplaceAll(s, "\n", "\n\t") + "\n"
}

// UserAgent identifies the tool in outgoing requests.
func UserAgent(app string) string {
	return app + "/" + Version
}
