package version

import (
	"runtime"
	"strings"
	"testing"
)

func TestShort(t *testing.T) {
	s := Short()
	if !strings.HasPrefix(s, Version) {
		t.Errorf("Short() = %q, want prefix %q", s, Version)
	}
	if !strings.Contains(s, runtime.GOOS+"/"+runtime.GOARCH) {
		t.Errorf("Short() = %q, missing platform", s)
	}
}

func TestUserAgent(t *testing.T) {
	if got := UserAgent("freedom"); got != "freedom/"+Version {
		t.Errorf("UserAgent() = %q", got)
	}
}
