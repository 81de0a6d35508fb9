package platform

import (
	"sync"

	"github.com/bodgit/inputdisplay/raster"
)

// Headless is a Platform with no window. Input is injected with Press and
// Release and every presented frame is kept as a copy.
type Headless struct {
	mu       sync.Mutex
	handlers map[EventType]Handler
	down     map[uint32]bool
	frames   [][]byte
}

// NewHeadless returns an idle Headless platform.
func NewHeadless() *Headless {
	return &Headless{
		handlers: make(map[EventType]Handler),
		down:     make(map[uint32]bool),
	}
}

// Present implements Platform.
func (h *Headless) Present(s *raster.Surface) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.frames = append(h.frames, append([]byte(nil), s.Pix...))
	return nil
}

// OnEvent implements Platform.
func (h *Headless) OnEvent(t EventType, handler Handler) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.handlers[t] = handler
}

// KeyDown implements Platform.
func (h *Headless) KeyDown(code uint32) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.down[code]
}

// Send delivers e to its handler, if any, on the calling goroutine.
func (h *Headless) Send(e Event) {
	h.mu.Lock()
	handler := h.handlers[e.Type]
	h.mu.Unlock()

	if handler != nil {
		handler(e)
	}
}

// Press marks code as held and sends a KeyDown event.
func (h *Headless) Press(code uint32) {
	h.mu.Lock()
	h.down[code] = true
	h.mu.Unlock()

	h.Send(Event{Type: KeyDown, Code: code})
}

// Release marks code as released and sends a KeyUp event.
func (h *Headless) Release(code uint32) {
	h.mu.Lock()
	delete(h.down, code)
	h.mu.Unlock()

	h.Send(Event{Type: KeyUp, Code: code})
}

// Frames returns how many frames have been presented.
func (h *Headless) Frames() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.frames)
}

// LastFrame returns a copy of the most recently presented surface bytes.
func (h *Headless) LastFrame() []byte {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.frames) == 0 {
		return nil
	}
	return h.frames[len(h.frames)-1]
}
