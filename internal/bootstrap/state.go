package bootstrap

import "fmt"

// State is the lifecycle of the tool within one bootstrap run.
type State int

const (
	NotInstalled State = iota
	Installing
	Installed
	Launching
	Exited
	Failed
	LaunchFailed
)

var stateNames = map[State]string{
	NotInstalled: "not_installed",
	Installing:   "installing",
	Installed:    "installed",
	Launching:    "launching",
	Exited:       "exited",
	Failed:       "failed",
	LaunchFailed: "launch_failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// transitions lists the allowed moves. Everything is forward only; a failed
// install is retried by running the command again.
var transitions = map[State][]State{
	NotInstalled: {Installed, Installing},
	Installing:   {Installed, Failed},
	Installed:    {Launching},
	Launching:    {Exited, LaunchFailed},
}

// CanTransition reports whether from -> to is allowed.
func CanTransition(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no transition leaves s.
func (s State) Terminal() bool {
	return len(transitions[s]) == 0
}
