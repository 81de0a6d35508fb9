// Package window implements platform.Platform with an ebiten desktop window.
// Keys are only seen while the window has focus, there is no global hook.
package window

import (
	"github.com/bodgit/inputdisplay/event"
	"github.com/bodgit/inputdisplay/platform"
	"github.com/bodgit/inputdisplay/raster"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// BindKey starts the key binding sequence instead of being reported as a
// key press.
const BindKey = ebiten.KeyF2

// Code returns the platform key code for k. Codes are offset by one so that
// zero can mean "unbound".
func Code(k ebiten.Key) uint32 {
	return uint32(k) + 1
}

func key(code uint32) ebiten.Key {
	return ebiten.Key(code - 1)
}

// DefaultKeymap returns the bindings used until the user sets their own.
func DefaultKeymap() platform.Keymap {
	b := func(p, s ebiten.Key) platform.Binding {
		return platform.Binding{Primary: Code(p), Secondary: Code(s)}
	}
	return platform.Keymap{
		Bindings: map[string]platform.Binding{
			"UP":     b(ebiten.KeyArrowUp, ebiten.KeyW),
			"DOWN":   b(ebiten.KeyArrowDown, ebiten.KeyS),
			"LEFT":   b(ebiten.KeyArrowLeft, ebiten.KeyA),
			"RIGHT":  b(ebiten.KeyArrowRight, ebiten.KeyD),
			"SELECT": b(ebiten.KeyShiftLeft, ebiten.KeyShiftRight),
			"START":  b(ebiten.KeyEnter, ebiten.KeyNumpadEnter),
			"B":      {Primary: Code(ebiten.KeyX)},
			"A":      {Primary: Code(ebiten.KeyZ)},
		},
		Modifiers: []uint32{Code(ebiten.KeyControlLeft), Code(ebiten.KeyControlRight)},
		Chord:     Code(ebiten.KeyR),
	}
}

// Window shows the overlay surface and turns ebiten input into platform
// events. Events and any tasks waiting in the queue are handled during
// ebiten's Update, so everything runs on the game loop goroutine.
type Window struct {
	queue    *event.Queue
	handlers map[platform.EventType]platform.Handler

	width, height int
	scale         int
	title         string

	rgba  []byte
	dirty bool
	frame *ebiten.Image
	keys  []ebiten.Key
}

// New returns a window showing a width by height surface magnified by
// scale.
func New(q *event.Queue, width, height, scale int, title string) *Window {
	if scale < 1 {
		scale = 1
	}
	return &Window{
		queue:    q,
		handlers: make(map[platform.EventType]platform.Handler),
		width:    width,
		height:   height,
		scale:    scale,
		title:    title,
		rgba:     make([]byte, width*height*raster.BytesPerPixel),
	}
}

// Present implements platform.Platform.
func (w *Window) Present(s *raster.Surface) error {
	s.RGBA(w.rgba)
	w.dirty = true
	return nil
}

// OnEvent implements platform.Platform.
func (w *Window) OnEvent(t platform.EventType, h platform.Handler) {
	w.handlers[t] = h
}

// KeyDown implements platform.Platform.
func (w *Window) KeyDown(code uint32) bool {
	if code == 0 {
		return false
	}
	return ebiten.IsKeyPressed(key(code))
}

// Run opens the window and blocks until it is closed.
func (w *Window) Run() error {
	ebiten.SetWindowTitle(w.title)
	ebiten.SetWindowSize(w.width*w.scale, w.height*w.scale)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(60)

	err := ebiten.RunGame(w)
	w.queue.Close()
	return err
}

func (w *Window) dispatch(e platform.Event) {
	_ = w.queue.Post(func() {
		if h, ok := w.handlers[e.Type]; ok {
			h(e)
		}
	})
}

// Update implements ebiten.Game.
func (w *Window) Update() error {
	w.keys = inpututil.AppendJustPressedKeys(w.keys[:0])
	for _, k := range w.keys {
		if k == BindKey {
			w.dispatch(platform.Event{Type: platform.BindKeys})
			continue
		}
		w.dispatch(platform.Event{Type: platform.KeyDown, Code: Code(k)})
	}

	w.keys = inpututil.AppendJustReleasedKeys(w.keys[:0])
	for _, k := range w.keys {
		if k != BindKey {
			w.dispatch(platform.Event{Type: platform.KeyUp, Code: Code(k)})
		}
	}

	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonRight) {
		w.dispatch(platform.Event{Type: platform.ContextMenu})
	}

	closing := ebiten.IsWindowBeingClosed()
	if closing {
		w.dispatch(platform.Event{Type: platform.Quit})
	}

	w.queue.Drain()

	if closing {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (w *Window) Draw(screen *ebiten.Image) {
	if w.frame == nil {
		w.frame = ebiten.NewImage(w.width, w.height)
		w.dirty = true
	}
	if w.dirty {
		w.frame.WritePixels(w.rgba)
		w.dirty = false
	}
	screen.DrawImage(w.frame, nil)
}

// Layout implements ebiten.Game.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return w.width, w.height
}
