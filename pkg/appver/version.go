package appver

import (
	"strconv"
	"strings"
)

// Info describes the version of an installed application.
type Info struct {
	FilePath       string `json:"file_path"`
	CompanyName    string `json:"company_name"`
	ProductName    string `json:"product_name"`
	Version        int    `json:"version"`
	FullVersion    string `json:"full_version"`
	LegalCopyright string `json:"legal_copyright"`
}

// New reads version information for the application at filePath, which is
// an executable or, on macOS, an .app bundle.
func New(filePath string) (*Info, error) {
	i := &Info{
		FilePath: filePath,
	}

	err := i.initialize()
	if err != nil {
		return nil, err
	}

	return i, nil
}

// setFullVersion stores v and derives the major version from it.
func (i *Info) setFullVersion(v string) {
	i.FullVersion = v
	i.Version, _ = strconv.Atoi(strings.Split(v, ".")[0])
}
