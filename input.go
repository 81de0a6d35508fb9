package inputdisplay

import (
	"github.com/bodgit/inputdisplay/pad"
)

// HandleKey updates the overlay for a key code going down or up. While the
// binding sequence runs, presses are consumed by it instead.
func (d *Display) HandleKey(code uint32, down bool) {
	if d.binding >= 0 {
		if down {
			d.bind(code)
		}
		return
	}

	var key *pad.Key
	for i := range d.keys {
		if d.keys[i].Matches(code) {
			key = &d.keys[i]
			break
		}
	}
	if key == nil && d.keymap.IsChord(code, d.platform.KeyDown) {
		key = &d.keys[KeyPower]
	}
	if key == nil {
		return
	}

	key.SetPressed(down)
	d.Redraw()
}

// StartBindings begins binding each key in turn. The key being bound is
// shown pressed and the next key press becomes its primary code. Starting
// again while already binding restarts from the first key.
func (d *Display) StartBindings() {
	d.stopFlash()
	if d.binding >= 0 {
		d.keys[d.binding].SetPressed(false)
	}
	d.binding = -1
	d.nextBinding()
}

func (d *Display) bind(code uint32) {
	k := &d.keys[d.binding]
	k.Primary = code
	d.logger.Printf("bound %s to %d", k.Name, code)
	d.nextBinding()
}

func (d *Display) nextBinding() {
	if d.binding >= 0 {
		d.keys[d.binding].SetPressed(false)
	}

	d.binding++

	if d.binding >= len(d.keys) {
		d.binding = -1
		d.text = ""
		if err := d.SaveConfig(); err != nil {
			d.Flash("FAILURE", FlashDuration)
			return
		}
		d.Flash("SUCCESS", FlashDuration)
		return
	}

	k := &d.keys[d.binding]
	k.SetPressed(true)
	d.text = "PRESS " + k.Name
	d.Redraw()
}
