package errors

import (
	stderrors "errors"
	"fmt"
)

// Config

func ConfigMissing(field string) *AppError {
	return New(ErrTypeConfig, fmt.Sprintf("missing configuration: %s", field), nil, ExitFatal).WithStack()
}

func ConfigInvalid(field string, cause error) *AppError {
	return New(ErrTypeConfig, fmt.Sprintf("invalid configuration: %s", field), cause, ExitFatal).WithStack()
}

func ConfigReadFailed(path string, cause error) *AppError {
	return New(ErrTypeConfig, fmt.Sprintf("failed to read settings: %s", path), cause, ExitFatal).WithStack()
}

// Platform

func PlatformUnsupported(platform string) *AppError {
	return New(ErrTypePlatform, fmt.Sprintf("unsupported platform: %s", platform), ErrUnsupportedPlatform, ExitFatal).WithStack()
}

// Fetch

func InstallerURLMissing(platform string) *AppError {
	return New(ErrTypeFetch, fmt.Sprintf("no installer url configured for platform: %s", platform), nil, ExitFatal).WithStack()
}

func DownloadFailed(url string, cause error) *AppError {
	return New(ErrTypeFetch, fmt.Sprintf("failed to download: %s", url), cause, ExitFatal).WithStack()
}

func DownloadBadStatus(url string, status int) *AppError {
	return New(ErrTypeFetch, fmt.Sprintf("unexpected status %d downloading: %s", status, url), nil, ExitFatal).WithStack()
}

func ChecksumMismatch(path, want, got string) *AppError {
	return New(ErrTypeFetch, fmt.Sprintf("checksum mismatch for %s: want %s, got %s", path, want, got), nil, ExitFatal).WithStack()
}

// Install / launch

func InstallerExited(step string, code int) *AppError {
	return New(ErrTypeInstall, fmt.Sprintf("installer step %q exited with code %d", step, code), ErrInstallCanceled, ExitFatal).WithStack()
}

func RunCmdFailed(cause error) *AppError {
	return New(ErrTypeInternal, "failed to run command", cause, ExitFatal).WithStack()
}

func LaunchFailed(path string, cause error) *AppError {
	return New(ErrTypeLaunch, fmt.Sprintf("failed to launch: %s", path), cause, ExitFatal).WithStack()
}

// Scan

func ListProcessesFailed(cause error) *AppError {
	return New(ErrTypeScan, "failed to list processes", cause, ExitFatal).WithStack()
}

// File system

func FileWriteFailed(path string, cause error) *AppError {
	return New(ErrTypeIO, fmt.Sprintf("failed to write file: %s", path), cause, ExitFatal).WithStack()
}

func FileReadFailed(path string, cause error) *AppError {
	return New(ErrTypeIO, fmt.Sprintf("failed to read file: %s", path), cause, ExitFatal).WithStack()
}

var (
	ErrUnsupportedPlatform = stderrors.New("unsupported platform")
	ErrInstallCanceled     = stderrors.New("installation canceled")
)
