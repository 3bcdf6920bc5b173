package arbuild

// InjectPress queues a finger landing at p on slot. The platform reports a
// position alongside every press, so two events are queued. Injected events
// are consumed one per Update, ahead of the real input source.
func (b *Builder) InjectPress(slot Slot, p Vec2) {
	b.injectQueue = append(b.injectQueue,
		TouchEvent{Kind: TouchPressStarted, Slot: slot, Point: p},
		TouchEvent{Kind: TouchPosition, Slot: slot, Point: p},
	)
}

// InjectMove queues a position change for a finger already down.
func (b *Builder) InjectMove(slot Slot, p Vec2) {
	b.injectQueue = append(b.injectQueue, TouchEvent{Kind: TouchPosition, Slot: slot, Point: p})
}

// InjectRelease queues a finger lifting from p.
func (b *Builder) InjectRelease(slot Slot, p Vec2) {
	b.injectQueue = append(b.injectQueue, TouchEvent{Kind: TouchPressEnded, Slot: slot, Point: p})
}

// InjectTap is a convenience that queues a press followed by a release at p.
func (b *Builder) InjectTap(p Vec2) {
	b.InjectPress(SlotPrimary, p)
	b.InjectRelease(SlotPrimary, p)
}

// InjectDrag queues a full primary drag: press at from, steps linearly
// interpolated moves ending at to, and a release at to. steps is at least 1.
func (b *Builder) InjectDrag(from, to Vec2, steps int) {
	if steps < 1 {
		steps = 1
	}
	b.InjectPress(SlotPrimary, from)
	for i := 1; i <= steps; i++ {
		b.InjectMove(SlotPrimary, lerp2(from, to, float64(i)/float64(steps)))
	}
	b.InjectRelease(SlotPrimary, to)
}

// InjectPinch queues a two-finger gesture: both fingers land, the secondary
// finger moves in steps from secondaryFrom to secondaryTo, then both lift.
func (b *Builder) InjectPinch(primary, secondaryFrom, secondaryTo Vec2, steps int) {
	if steps < 1 {
		steps = 1
	}
	b.InjectPress(SlotPrimary, primary)
	b.InjectPress(SlotSecondary, secondaryFrom)
	for i := 1; i <= steps; i++ {
		b.InjectMove(SlotSecondary, lerp2(secondaryFrom, secondaryTo, float64(i)/float64(steps)))
	}
	b.InjectRelease(SlotSecondary, secondaryTo)
	b.InjectRelease(SlotPrimary, primary)
}

// PendingInjected returns the number of injected events not yet consumed.
func (b *Builder) PendingInjected() int {
	return len(b.injectQueue)
}

// processInjectedInput pops one injected event into the demuxer. Returns
// true if an event was consumed (the real input source is skipped).
func (b *Builder) processInjectedInput() bool {
	if len(b.injectQueue) == 0 {
		return false
	}
	ev := b.injectQueue[0]
	copy(b.injectQueue, b.injectQueue[1:])
	b.injectQueue = b.injectQueue[:len(b.injectQueue)-1]
	b.input.Push(ev)
	return true
}

func lerp2(a, b Vec2, t float64) Vec2 {
	return Vec2{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}
