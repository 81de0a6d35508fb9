// Package platform defines what the overlay needs from its host: somewhere
// to present frames, a source of input events and a way to query raw keys.
package platform

import (
	"github.com/bodgit/inputdisplay/raster"
)

// EventType identifies a kind of host event.
type EventType int

// Host events.
const (
	KeyDown EventType = iota + 1
	KeyUp
	ContextMenu
	BindKeys
	Quit
)

func (t EventType) String() string {
	switch t {
	case KeyDown:
		return "key down"
	case KeyUp:
		return "key up"
	case ContextMenu:
		return "context menu"
	case BindKeys:
		return "bind keys"
	case Quit:
		return "quit"
	default:
		return "unknown"
	}
}

// Event is delivered to handlers. Code is only set for key events.
type Event struct {
	Type EventType
	Code uint32
}

// Handler reacts to an event. Handlers always run on the host's event loop.
type Handler func(Event)

// Platform is the host the overlay runs on.
type Platform interface {
	// Present shows the surface. The surface may be modified again as soon
	// as Present returns.
	Present(s *raster.Surface) error
	// OnEvent registers h for events of type t, replacing any earlier one.
	OnEvent(t EventType, h Handler)
	// KeyDown reports whether the key with the given code is held.
	KeyDown(code uint32) bool
}

// Binding is a pair of key codes bound to one controller key.
type Binding struct {
	Primary   uint32
	Secondary uint32
}

// Keymap holds the host's default bindings by key name plus the chord that
// lights the power key: any of Modifiers held together with Chord.
type Keymap struct {
	Bindings  map[string]Binding
	Modifiers []uint32
	Chord     uint32
}

// IsChord reports whether pressing code while the modifiers are tested with
// down completes the power chord, from either end.
func (k Keymap) IsChord(code uint32, down func(uint32) bool) bool {
	if k.Chord == 0 {
		return false
	}
	modifier := false
	for _, m := range k.Modifiers {
		if code == m {
			modifier = true
		}
	}
	switch {
	case code == k.Chord:
		for _, m := range k.Modifiers {
			if down(m) {
				return true
			}
		}
	case modifier:
		return down(k.Chord)
	}
	return false
}
