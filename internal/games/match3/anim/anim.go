// Package anim is a frame-stepped tween scheduler with group tracking.
//
// Animations never reference the objects they move. A Target receives the
// eased progress each frame and is responsible for finding its object and
// ignoring the call when the object is gone.
package anim

// GroupID tags a batch of animations started together.
type GroupID uint64

// NoGroup marks an ungrouped animation. It is never reported active.
const NoGroup GroupID = 0

// Target receives eased progress in [0, 1] (may overshoot with some easings).
type Target interface {
	Apply(progress float64)
}

// Completer is an optional Target extension called once on completion,
// after the final Apply.
type Completer interface {
	Complete()
}

// Func adapts plain functions to Target and Completer.
// Either field may be nil.
type Func struct {
	OnApply    func(progress float64)
	OnComplete func()
}

// Apply implements Target.
func (f Func) Apply(p float64) {
	if f.OnApply != nil {
		f.OnApply(p)
	}
}

// Complete implements Completer.
func (f Func) Complete() {
	if f.OnComplete != nil {
		f.OnComplete()
	}
}

// Animation is a timed interpolation task.
type Animation struct {
	Duration float64 // Seconds; <= 0 completes on the first Update
	Ease     Easing  // nil means Linear
	Target   Target  // May be nil
	Group    GroupID // NoGroup inherits the engine's current group on Add

	elapsed  float64
	finished bool
}

// Elapsed returns the accumulated time in seconds.
func (a *Animation) Elapsed() float64 { return a.elapsed }

// Finished reports whether the animation has completed.
func (a *Animation) Finished() bool { return a.finished }

// Progress returns normalized linear progress, min(1, elapsed/duration).
func (a *Animation) Progress() float64 {
	if a.Duration <= 0 {
		return 1
	}
	p := a.elapsed / a.Duration
	if p > 1 {
		return 1
	}
	return p
}

// Engine owns live animations. It is single-threaded: Add and Update must
// be called from the same goroutine, usually the frame loop.
type Engine struct {
	anims     []*Animation
	nextGroup GroupID
	current   GroupID
}

// NewEngine creates an empty engine.
func NewEngine() *Engine {
	return &Engine{nextGroup: 1}
}

func (e *Engine) allocGroup() GroupID {
	if e.nextGroup == NoGroup {
		e.nextGroup = 1
	}
	id := e.nextGroup
	e.nextGroup++
	return id
}

// BeginGroup allocates a group and makes it current until EndGroup.
// Groups do not nest; a second BeginGroup replaces the first.
func (e *Engine) BeginGroup() GroupID {
	e.current = e.allocGroup()
	return e.current
}

// EndGroup resets the current group to NoGroup.
func (e *Engine) EndGroup() {
	e.current = NoGroup
}

// CurrentGroup returns the ambient group, NoGroup outside BeginGroup/EndGroup.
func (e *Engine) CurrentGroup() GroupID {
	return e.current
}

// Add schedules a. An ungrouped animation joins the current group.
// Animations added during Update are first advanced on the next Update.
func (e *Engine) Add(a *Animation) {
	if a == nil {
		return
	}
	if a.Group == NoGroup {
		a.Group = e.current
	}
	e.anims = append(e.anims, a)
}

// Update advances every live animation by dt seconds in insertion order,
// applies eased progress to its target and completes those that reach 1.
// Finished animations are removed afterwards.
func (e *Engine) Update(dt float64) {
	n := len(e.anims)
	for i := 0; i < n; i++ {
		a := e.anims[i]
		if a.finished {
			continue
		}
		a.elapsed += dt
		p := a.Progress()

		ease := a.Ease
		if ease == nil {
			ease = Linear
		}
		if a.Target != nil {
			a.Target.Apply(ease(p))
		}
		if p >= 1 {
			a.finished = true
			if c, ok := a.Target.(Completer); ok {
				c.Complete()
			}
		}
	}

	live := e.anims[:0]
	for _, a := range e.anims {
		if !a.finished {
			live = append(live, a)
		}
	}
	for i := len(live); i < len(e.anims); i++ {
		e.anims[i] = nil
	}
	e.anims = live
}

// IsGroupActive reports whether any unfinished animation carries id.
func (e *Engine) IsGroupActive(id GroupID) bool {
	if id == NoGroup {
		return false
	}
	for _, a := range e.anims {
		if !a.finished && a.Group == id {
			return true
		}
	}
	return false
}

// HasActive reports whether any animation is unfinished.
func (e *Engine) HasActive() bool {
	for _, a := range e.anims {
		if !a.finished {
			return true
		}
	}
	return false
}

// Len returns the number of scheduled animations.
func (e *Engine) Len() int {
	return len(e.anims)
}

// Clear drops every animation without completing it.
func (e *Engine) Clear() {
	e.anims = nil
	e.current = NoGroup
}
