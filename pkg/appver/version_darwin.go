package appver

import (
	"os"
	"path/filepath"

	"howett.net/plist"
)

const (
	InfoFile = "Info.plist"
)

type Plist struct {
	CFBundleName               string `plist:"CFBundleName"`
	CFBundleShortVersionString string `plist:"CFBundleShortVersionString"`
	NSHumanReadableCopyright   string `plist:"NSHumanReadableCopyright"`
}

func (i *Info) initialize() error {
	b, err := os.ReadFile(filepath.Join(i.FilePath, "Contents", InfoFile))
	if err != nil {
		return err
	}

	p := Plist{}
	_, err = plist.Unmarshal(b, &p)
	if err != nil {
		return err
	}

	i.setFullVersion(p.CFBundleShortVersionString)
	i.ProductName = p.CFBundleName
	i.LegalCopyright = p.NSHumanReadableCopyright

	return nil
}
