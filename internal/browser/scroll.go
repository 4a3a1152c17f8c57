package browser

import (
	"github.com/skiff-browser/skiff/internal/engine"
	"github.com/skiff-browser/skiff/internal/event"
)

// scrollStepPx is the pixel distance of one up/down/left/right step.
const scrollStepPx = 40

// Scroll moves the viewport of one tab. Counted movements multiply the
// base step; jumps emit BeforeJump first so position marks can be saved.
type Scroll struct {
	tab *Tab

	// PercChanged fires with the new x/y percentages after the engine
	// reported a position change.
	PercChanged *event.Hook[[2]int]
	// BeforeJump fires before a to-percentage or to-anchor jump.
	BeforeJump *event.Hook[struct{}]
}

func newScroll(tab *Tab) *Scroll {
	return &Scroll{
		tab:         tab,
		PercChanged: event.NewHook[[2]int]("scroll-perc-changed"),
		BeforeJump:  event.NewHook[struct{}]("scroll-before-jump"),
	}
}

// PosPx returns the scroll offset in pixels.
func (s *Scroll) PosPx() (engine.Point, error) {
	return s.tab.view.ScrollPosition()
}

// PosPerc returns the offset as percentages per axis, 0 to 100.
func (s *Scroll) PosPerc() (x, y int) {
	return s.tab.view.ScrollPercentage()
}

// ToPerc jumps to a percentage of the scrollable range. Pass
// engine.PercKeep to leave an axis unchanged.
func (s *Scroll) ToPerc(x, y float64) error {
	s.BeforeJump.Emit(struct{}{})
	return s.moved(s.tab.view.ScrollToPerc(x, y))
}

// ToPoint jumps to an absolute pixel position.
func (s *Scroll) ToPoint(p engine.Point) error {
	s.BeforeJump.Emit(struct{}{})
	return s.moved(s.tab.view.ScrollToPoint(p))
}

// ToAnchor jumps to the named anchor or element id.
func (s *Scroll) ToAnchor(name string) error {
	s.BeforeJump.Emit(struct{}{})
	return s.moved(s.tab.view.ScrollToAnchor(name))
}

// Delta scrolls by a raw pixel delta.
func (s *Scroll) Delta(dx, dy int) error {
	return s.moved(s.tab.view.ScrollDelta(dx, dy))
}

// DeltaPage scrolls by viewport multiples.
func (s *Scroll) DeltaPage(px, py float64) error {
	return s.moved(s.tab.view.ScrollDeltaPage(px, py))
}

func (s *Scroll) Up(count int) error    { return s.Delta(0, -count*scrollStepPx) }
func (s *Scroll) Down(count int) error  { return s.Delta(0, count*scrollStepPx) }
func (s *Scroll) Left(count int) error  { return s.Delta(-count*scrollStepPx, 0) }
func (s *Scroll) Right(count int) error { return s.Delta(count*scrollStepPx, 0) }

func (s *Scroll) Top() error    { return s.ToPerc(engine.PercKeep, 0) }
func (s *Scroll) Bottom() error { return s.ToPerc(engine.PercKeep, 100) }

func (s *Scroll) PageUp(count int) error {
	return s.DeltaPage(0, -float64(count))
}

func (s *Scroll) PageDown(count int) error {
	return s.DeltaPage(0, float64(count))
}

func (s *Scroll) AtTop() bool {
	_, y := s.PosPerc()
	return y == 0
}

func (s *Scroll) AtBottom() bool {
	_, y := s.PosPerc()
	return y == 100
}

// moved refreshes the reported percentages after a successful scroll.
// The position an async engine reports here may trail by one event
// round, which the status line tolerates.
func (s *Scroll) moved(err error) error {
	if err != nil {
		return err
	}
	x, y := s.PosPerc()
	s.PercChanged.Emit([2]int{x, y})
	return nil
}
