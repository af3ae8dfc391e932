package anim

// Batch adds animations to one group without touching the engine's
// ambient group.
type Batch struct {
	e  *Engine
	id GroupID
}

// Group starts a fresh batch.
func (e *Engine) Group() Batch {
	return Batch{e: e, id: e.allocGroup()}
}

// Join returns a batch adding to an existing group.
// Joining NoGroup starts a fresh batch instead.
func (e *Engine) Join(id GroupID) Batch {
	if id == NoGroup {
		return e.Group()
	}
	return Batch{e: e, id: id}
}

// ID returns the batch's group.
func (b Batch) ID() GroupID {
	return b.id
}

// Add schedules an animation in the batch and returns it.
func (b Batch) Add(duration float64, ease Easing, target Target) *Animation {
	a := &Animation{
		Duration: duration,
		Ease:     ease,
		Target:   target,
		Group:    b.id,
	}
	b.e.Add(a)
	return a
}
