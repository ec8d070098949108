package appver

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

func (i *Info) initialize() error {
	var zero windows.Handle
	size, err := windows.GetFileVersionInfoSize(i.FilePath, &zero)
	if err != nil {
		return fmt.Errorf("GetFileVersionInfoSize failed: %w", err)
	}

	verInfo := make([]byte, size)
	if err := windows.GetFileVersionInfo(i.FilePath, 0, size, unsafe.Pointer(&verInfo[0])); err != nil {
		return fmt.Errorf("GetFileVersionInfo failed: %w", err)
	}

	var fixed *windows.VS_FIXEDFILEINFO
	var fixedLen uint32
	if err := windows.VerQueryValue(unsafe.Pointer(&verInfo[0]), `\`, unsafe.Pointer(&fixed), &fixedLen); err != nil {
		return fmt.Errorf("VerQueryValue failed: %w", err)
	}

	i.setFullVersion(fmt.Sprintf("%d.%d.%d.%d",
		(fixed.FileVersionMS>>16)&0xffff,
		(fixed.FileVersionMS>>0)&0xffff,
		(fixed.FileVersionLS>>16)&0xffff,
		(fixed.FileVersionLS>>0)&0xffff,
	))

	type langAndCodePage struct {
		language uint16
		codePage uint16
	}

	var translate *langAndCodePage
	var translateLen uint32
	if err := windows.VerQueryValue(unsafe.Pointer(&verInfo[0]), `\VarFileInfo\Translation`, unsafe.Pointer(&translate), &translateLen); err != nil || translateLen == 0 {
		return nil
	}

	strings := map[string]*string{
		"CompanyName":    &i.CompanyName,
		"ProductName":    &i.ProductName,
		"LegalCopyright": &i.LegalCopyright,
	}
	for name, ptr := range strings {
		subBlock := fmt.Sprintf(`\StringFileInfo\%04x%04x\%s`, translate.language, translate.codePage, name)

		var buffer *uint16
		var bufLen uint32
		if err := windows.VerQueryValue(unsafe.Pointer(&verInfo[0]), subBlock, unsafe.Pointer(&buffer), &bufLen); err == nil && bufLen > 0 {
			*ptr = windows.UTF16PtrToString(buffer)
		}
	}

	return nil
}
