package browser

import (
	"github.com/skiff-browser/skiff/internal/event"
	"github.com/skiff-browser/skiff/internal/neighborlist"
)

// DefaultZoomPercent is the zoom applied to fresh tabs.
const DefaultZoomPercent = 100

// DefaultZoomLevels returns the built-in zoom percentage ladder.
func DefaultZoomLevels() []int {
	return []int{25, 33, 50, 67, 75, 90, 100, 110, 125, 150, 175, 200, 250, 300, 400, 500}
}

// Zoom steps the tab's zoom factor through a configured list of
// percentages. Stepping snaps onto the nearest level first, so zooming
// in from an off-list factor like 103% lands on 110%, not past it.
type Zoom struct {
	tab    *Tab
	levels *neighborlist.List[int]

	defaultPercent int
	defaultChanged bool
	factor         float64

	// FactorChanged fires after the factor was handed to the engine.
	FactorChanged *event.Hook[float64]
}

func newZoom(tab *Tab, cfg ZoomConfig) *Zoom {
	z := &Zoom{
		tab:           tab,
		FactorChanged: event.NewHook[float64]("zoom-factor-changed"),
	}
	z.configure(cfg)
	z.factor = float64(z.defaultPercent) / 100
	return z
}

func (z *Zoom) configure(cfg ZoomConfig) {
	levels := cfg.Levels
	if len(levels) == 0 {
		levels = DefaultZoomLevels()
	}
	z.defaultPercent = cfg.Default
	if z.defaultPercent == 0 {
		z.defaultPercent = DefaultZoomPercent
	}
	z.levels = neighborlist.New(levels, neighborlist.ModeEdge)
	z.levels.SetFuzzy(z.defaultPercent)
}

// Factor returns the last factor set through this selector.
func (z *Zoom) Factor() float64 { return z.factor }

// Percent returns the factor as a rounded percentage.
func (z *Zoom) Percent() int { return int(z.factor*100 + 0.5) }

// ApplyOffset steps the given number of levels through the ladder and
// applies the resulting percentage. It returns the new percentage. At
// the edge of the ladder the edge level is applied without error; an
// empty ladder is reported as ErrAtBoundary.
func (z *Zoom) ApplyOffset(offset int) (int, error) {
	level, err := z.levels.Item(offset)
	if err != nil {
		return 0, err
	}
	if err := z.setFactor(float64(level)/100, false); err != nil {
		return 0, err
	}
	return level, nil
}

// SetFactor applies an arbitrary factor and re-anchors the ladder on
// the closest level, so a later ApplyOffset steps relative to it.
func (z *Zoom) SetFactor(factor float64) error {
	return z.setFactor(factor, true)
}

func (z *Zoom) setFactor(factor float64, fuzzy bool) error {
	if factor < 0 {
		return invalidArgument("Can't zoom to factor %v!", factor)
	}

	if fuzzy {
		z.levels.SetFuzzy(int(factor * 100))
	}
	z.defaultChanged = int(factor*100) != z.defaultPercent
	z.factor = factor

	if err := z.tab.view.SetZoomFactor(factor); err != nil {
		return err
	}
	z.tab.log.Debug().Float64("factor", factor).Msg("Zoom set")
	z.FactorChanged.Emit(factor)
	return nil
}

// ApplyDefault pushes the default factor to the engine without touching
// the selector state. Used right after tab creation.
func (z *Zoom) ApplyDefault() error {
	return z.tab.view.SetZoomFactor(float64(z.defaultPercent) / 100)
}

// Reapply pushes the current factor to the engine again. Some engines
// drop the factor on navigation.
func (z *Zoom) Reapply() error {
	return z.tab.view.SetZoomFactor(z.factor)
}

// Reconfigure swaps the level ladder and default. A tab still at the
// old default follows the new one; a tab the user zoomed keeps its
// factor, and the rebuilt ladder is anchored on it.
func (z *Zoom) Reconfigure(cfg ZoomConfig) error {
	changed := z.defaultChanged
	current := z.Percent()
	z.configure(cfg)

	if !changed {
		return z.setFactor(float64(z.defaultPercent)/100, true)
	}
	z.levels.SetFuzzy(current)
	z.defaultChanged = current != z.defaultPercent
	return nil
}
