package flick

// Control identifies one of the discrete input controls.
type Control uint8

const (
	// ControlA carries the playback gestures: long press toggles pause,
	// short press toggles palette inversion.
	ControlA Control = iota

	// ControlB randomizes the palette.
	ControlB
)

// EventKind is the edge reported for a control. Debounce and long-press
// timing belong to the input source; the player only consumes edges.
type EventKind uint8

const (
	Press EventKind = iota
	Release
	LongPress
)

// Event is one pre-resolved input edge.
type Event struct {
	Control Control
	Kind    EventKind
}
