//go:build !darwin && !windows

package appver

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// VersionFile is shipped next to the browser executable in the Linux bundle.
const VersionFile = "tbb_version.json"

var ErrNoVersion = errors.New("no version information")

type bundleVersion struct {
	Version      string `json:"version"`
	Architecture string `json:"architecture"`
}

func (i *Info) initialize() error {
	b, err := os.ReadFile(filepath.Join(filepath.Dir(i.FilePath), VersionFile))
	if err != nil {
		return err
	}

	var v bundleVersion
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if v.Version == "" {
		return ErrNoVersion
	}

	i.setFullVersion(v.Version)
	i.ProductName = "Tor Browser"

	return nil
}
