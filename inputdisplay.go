/*
Package inputdisplay draws a game controller overlay that mirrors the keys
being pressed on the keyboard.

A Display owns all of the overlay state. It registers handlers with its
platform.Platform and every handler, as well as any delayed work posted to
its event.Queue, is expected to run on the same goroutine, so none of the
state is locked.
*/
package inputdisplay

import (
	"io/ioutil"
	"log"
	"time"

	"github.com/bodgit/inputdisplay/assets"
	"github.com/bodgit/inputdisplay/bmp"
	"github.com/bodgit/inputdisplay/config"
	"github.com/bodgit/inputdisplay/event"
	"github.com/bodgit/inputdisplay/pad"
	"github.com/bodgit/inputdisplay/palette"
	"github.com/bodgit/inputdisplay/platform"
	"github.com/bodgit/inputdisplay/raster"
	"github.com/pkg/errors"
)

// FlashDuration is how long Flash shows a message for by default.
const FlashDuration = 3 * time.Second

// Display is the overlay.
type Display struct {
	platform platform.Platform
	store    config.Store
	logger   *log.Logger
	queue    *event.Queue
	keymap   platform.Keymap
	catalog  palette.Catalog

	keys []pad.Key
	dpad pad.Dpad

	keySheet   *raster.Sheet
	arrowSheet *raster.Sheet
	font       *raster.Sheet
	surface    *raster.Surface

	paletteIndex int
	palette      palette.Palette

	text  string
	flash *event.Timer

	// Index of the key being bound, -1 when not binding
	binding int
}

// Option configures a Display.
type Option func(*Display)

// WithQueue sets the queue used for delayed work. It should be the queue the
// platform drains.
func WithQueue(q *event.Queue) Option {
	return func(d *Display) {
		d.queue = q
	}
}

// WithKeymap sets the bindings used when none are stored and the power key
// chord.
func WithKeymap(k platform.Keymap) Option {
	return func(d *Display) {
		d.keymap = k
	}
}

// WithCatalog replaces palette.Default.
func WithCatalog(c palette.Catalog) Option {
	return func(d *Display) {
		d.catalog = c
	}
}

func loadSheet(b []byte, size int, what string) (*raster.Sheet, error) {
	bitmap, err := bmp.DecodeBytes(b)
	if err != nil {
		return nil, errors.Wrapf(err, "inputdisplay: %s sheet", what)
	}
	sheet, err := raster.NewSheet(bitmap, size, size)
	if err != nil {
		return nil, errors.Wrapf(err, "inputdisplay: %s sheet", what)
	}
	return sheet, nil
}

// New returns a Display drawing onto p with its settings kept in store. The
// stored settings are loaded, falling back to defaults for anything that
// cannot be read, and the first frame is presented.
func New(p platform.Platform, store config.Store, logger *log.Logger, options ...Option) (*Display, error) {
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}
	if store == nil {
		store = config.NewMemory()
	}

	d := &Display{
		platform: p,
		store:    store,
		logger:   logger,
		catalog:  palette.Default,
		keys:     newKeys(),
		dpad:     newDpad(),
		surface:  raster.NewSurface(Width, Height),
		binding:  -1,
	}

	for _, option := range options {
		option(d)
	}

	if d.queue == nil {
		d.queue = event.New()
	}
	if len(d.catalog) == 0 {
		return nil, errors.New("inputdisplay: empty palette catalog")
	}

	if err := d.dpad.Validate(len(d.keys)); err != nil {
		return nil, err
	}

	var err error
	if d.keySheet, err = loadSheet(assets.Keys, assets.KeySize, "key"); err != nil {
		return nil, err
	}
	if d.arrowSheet, err = loadSheet(assets.Arrows, assets.ArrowSize, "arrow"); err != nil {
		return nil, err
	}
	if d.font, err = loadSheet(assets.Font, assets.CharSize, "font"); err != nil {
		return nil, err
	}

	d.LoadConfig()

	p.OnEvent(platform.KeyDown, func(e platform.Event) { d.HandleKey(e.Code, true) })
	p.OnEvent(platform.KeyUp, func(e platform.Event) { d.HandleKey(e.Code, false) })
	p.OnEvent(platform.ContextMenu, func(platform.Event) { d.NextPalette() })
	p.OnEvent(platform.BindKeys, func(platform.Event) { d.StartBindings() })
	p.OnEvent(platform.Quit, func(platform.Event) { d.Close() })

	d.Redraw()

	return d, nil
}

// Keys returns a copy of the current key states.
func (d *Display) Keys() []pad.Key {
	return append([]pad.Key(nil), d.keys...)
}

// Text returns the status text.
func (d *Display) Text() string {
	return d.text
}

// Palette returns the index of the current palette.
func (d *Display) Palette() int {
	return d.paletteIndex
}

// Binding reports whether the key binding sequence is running.
func (d *Display) Binding() bool {
	return d.binding >= 0
}

// Flash shows text for duration before clearing it. A later Flash replaces
// an earlier one that is still showing.
func (d *Display) Flash(text string, duration time.Duration) {
	d.stopFlash()

	d.text = text
	d.Redraw()

	d.flash = d.queue.PostAfter(duration, func() {
		d.flash = nil
		d.text = ""
		d.Redraw()
	})
}

func (d *Display) stopFlash() {
	if d.flash != nil {
		d.flash.Stop()
		d.flash = nil
	}
}

// Close cancels any pending work.
func (d *Display) Close() {
	d.stopFlash()
	d.logger.Println("closing")
}
