package inputdisplay

import (
	"github.com/bodgit/inputdisplay/config"
	"github.com/bodgit/inputdisplay/palette"
	"github.com/pkg/errors"
)

// PaletteSetting is the name of the stored palette index.
const PaletteSetting = "Palette"

// PrimarySetting returns the name of the stored primary code of the key
// with the given config name.
func PrimarySetting(configName string) string {
	return configName + "1"
}

// SecondarySetting returns the name of the stored secondary code.
func SecondarySetting(configName string) string {
	return configName + "2"
}

func (d *Display) readSetting(name string, fallback uint32) uint32 {
	v, err := d.store.Uint32(name)
	switch {
	case err == nil:
		return v
	case errors.Is(err, config.ErrNotFound):
		d.logger.Printf("%s not set, using %d", name, fallback)
	default:
		d.logger.Printf("unable to read %s, using %d: %v", name, fallback, err)
	}
	return fallback
}

// LoadConfig reads the key bindings and palette from the store. Anything
// that cannot be read takes its default so the overlay always starts.
func (d *Display) LoadConfig() {
	for i := range d.keys {
		k := &d.keys[i]
		b := d.keymap.Bindings[k.Name]
		k.Primary = d.readSetting(PrimarySetting(k.ConfigName), b.Primary)
		k.Secondary = d.readSetting(SecondarySetting(k.ConfigName), b.Secondary)
	}

	fallback := palette.DefaultIndex
	if fallback >= len(d.catalog) {
		fallback = 0
	}
	i := int(d.readSetting(PaletteSetting, uint32(fallback)))
	if err := d.selectPalette(i); err != nil {
		d.logger.Printf("%v, using %d", err, fallback)
		_ = d.selectPalette(fallback)
	}
}

// SaveConfig writes the key bindings and palette to the store, stopping at
// the first failure.
func (d *Display) SaveConfig() error {
	for _, k := range d.keys {
		if err := d.store.SetUint32(PrimarySetting(k.ConfigName), k.Primary); err != nil {
			d.logger.Printf("save: %v", err)
			return err
		}
		if err := d.store.SetUint32(SecondarySetting(k.ConfigName), k.Secondary); err != nil {
			d.logger.Printf("save: %v", err)
			return err
		}
	}
	if err := d.store.SetUint32(PaletteSetting, uint32(d.paletteIndex)); err != nil {
		d.logger.Printf("save: %v", err)
		return err
	}
	return nil
}

func (d *Display) selectPalette(i int) error {
	p, err := d.catalog.Select(i)
	if err != nil {
		return err
	}
	d.palette = p
	d.paletteIndex = i
	return nil
}

// SelectPalette switches to palette i of the catalog, redraws and stores
// the choice.
func (d *Display) SelectPalette(i int) error {
	if err := d.selectPalette(i); err != nil {
		return err
	}
	d.logger.Printf("palette %q", d.catalog[i].Name)
	d.Redraw()

	if err := d.store.SetUint32(PaletteSetting, uint32(i)); err != nil {
		d.logger.Printf("save palette: %v", err)
	}
	return nil
}

// NextPalette cycles to the next palette in the catalog.
func (d *Display) NextPalette() {
	_ = d.SelectPalette((d.paletteIndex + 1) % len(d.catalog))
}

// Catalog returns the palettes that can be selected.
func (d *Display) Catalog() palette.Catalog {
	return d.catalog
}
