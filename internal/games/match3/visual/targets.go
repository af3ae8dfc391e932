package visual

import "github.com/vovakirdan/tui-match3/internal/games/match3/anim"

// Targets look their tile up on every frame. A tile removed while its
// animation is still running is simply skipped.

type moveTarget struct {
	vb             *Board
	id             TileID
	x0, y0, x1, y1 float64
}

func (m moveTarget) Apply(p float64) {
	t, ok := m.vb.tiles.Get(m.id)
	if !ok {
		return
	}
	t.X = anim.Lerp(m.x0, m.x1, p)
	t.Y = anim.Lerp(m.y0, m.y1, p)
}

type fadeTarget struct {
	vb     *Board
	id     TileID
	a0, a1 float64
}

func (f fadeTarget) Apply(p float64) {
	t, ok := f.vb.tiles.Get(f.id)
	if !ok {
		return
	}
	t.Alpha = anim.Lerp(f.a0, f.a1, p)
}

// scaleTarget sets a uniform scale from an envelope over progress.
type scaleTarget struct {
	vb       *Board
	id       TileID
	envelope func(p float64) float64
}

func (s scaleTarget) Apply(p float64) {
	t, ok := s.vb.tiles.Get(s.id)
	if !ok {
		return
	}
	v := s.envelope(p)
	t.ScaleX = v
	t.ScaleY = v
}

// Complete restores the resting scale.
func (s scaleTarget) Complete() {
	if t, ok := s.vb.tiles.Get(s.id); ok {
		t.ScaleX = 1
		t.ScaleY = 1
	}
}

// pulseEnvelope grows linearly to peak at the midpoint and shrinks back.
func pulseEnvelope(peak float64) func(float64) float64 {
	return func(p float64) float64 {
		if p < 0.5 {
			return anim.Lerp(1, peak, p*2)
		}
		return anim.Lerp(peak, 1, (p-0.5)*2)
	}
}

// bumpEnvelope overshoots to peak during the first share of the time and
// settles with a slower ease-out.
func bumpEnvelope(peak, share float64) func(float64) float64 {
	if share <= 0 || share >= 1 {
		share = DefaultTimings().BumpShare
	}
	return func(p float64) float64 {
		if p < share {
			return anim.Lerp(1, peak, p/share)
		}
		return anim.Lerp(peak, 1, anim.EaseOutCubic((p-share)/(1-share)))
	}
}
