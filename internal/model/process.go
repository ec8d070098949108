package model

import (
	"fmt"
	"time"
)

// ProcessInfo is one record of a process snapshot.
type ProcessInfo struct {
	Name string `json:"name"`
	PID  int32  `json:"pid"`
}

// ObserverEntry is a watchlisted process found during a scan.
type ObserverEntry struct {
	Name       string    `json:"name"`
	PID        int32     `json:"pid"`
	DetectedAt time.Time `json:"detected_at"`
}

const (
	EntrySeparator  = " ::: "
	EntryTimeLayout = time.RFC3339Nano
)

// Line renders the entry as written to the observer log.
func (e *ObserverEntry) Line() string {
	return fmt.Sprintf("%s%s%s%s%d", e.DetectedAt.Format(EntryTimeLayout), EntrySeparator, e.Name, EntrySeparator, e.PID)
}

func (e *ObserverEntry) String() string {
	return fmt.Sprintf("%s%s%d%s%s", e.Name, EntrySeparator, e.PID, EntrySeparator, e.DetectedAt.Format(time.DateTime))
}
