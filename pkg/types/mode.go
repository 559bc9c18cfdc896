package types

import "fmt"

// Mode represents the current input mode of the TUI
type Mode int

const (
	// Normal treats keystrokes as navigation commands
	Normal Mode = iota
	// Editing treats keystrokes as text input
	Editing
)

func (m Mode) String() string {
	switch m {
	case Normal:
		return "Normal"
	case Editing:
		return "Editing"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Widget identifies which screen receives input and render calls.
type Widget int

const (
	// Config is the session token entry screen
	Config Widget = iota
	// Events is the events table screen
	Events
)

func (w Widget) String() string {
	switch w {
	case Config:
		return "Config"
	case Events:
		return "Events"
	default:
		return fmt.Sprintf("Widget(%d)", int(w))
	}
}

// LoadingState is the lifecycle stage of the events fetch.
type LoadingState int

const (
	Idle LoadingState = iota
	Loading
	Loaded
	Failed
)

// LoadingStatus pairs a LoadingState with the message carried by Failed.
// The zero value is Idle.
type LoadingStatus struct {
	State   LoadingState
	Message string
}

// StatusIdle, StatusLoading and StatusLoaded are the message-less statuses.
var (
	StatusIdle    = LoadingStatus{State: Idle}
	StatusLoading = LoadingStatus{State: Loading}
	StatusLoaded  = LoadingStatus{State: Loaded}
)

// StatusError returns the Failed status with msg attached.
func StatusError(msg string) LoadingStatus {
	return LoadingStatus{State: Failed, Message: msg}
}

// String renders the status the way the events table title shows it.
func (s LoadingStatus) String() string {
	switch s.State {
	case Idle:
		return "Idle"
	case Loading:
		return "Loading"
	case Loaded:
		return "Loaded"
	case Failed:
		return fmt.Sprintf("Error(%q)", s.Message)
	default:
		return fmt.Sprintf("LoadingState(%d)", int(s.State))
	}
}
