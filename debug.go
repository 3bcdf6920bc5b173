package arbuild

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// frameStats holds per-Update counters. Only populated when Config.Debug is
// true.
type frameStats struct {
	events           int
	anchorsCreated   int
	anchorsDestroyed int
	elapsed          time.Duration
}

// debugLog writes frame stats at debug level. Idle frames are skipped.
func (b *Builder) debugLog(stats frameStats) {
	if stats.events == 0 && stats.anchorsCreated == 0 && stats.anchorsDestroyed == 0 {
		return
	}
	b.log.Debug("frame",
		zap.Int("events", stats.events),
		zap.Int("anchors_created", stats.anchorsCreated),
		zap.Int("anchors_destroyed", stats.anchorsDestroyed),
		zap.Int("anchors_live", b.anchors.Live()),
		zap.Stringer("mode", b.mode),
		zap.Stringer("gesture", b.session.Kind()),
		zap.Duration("elapsed", stats.elapsed),
	)
}

// debugCheckAnchors panics with a descriptive message when any placed object
// is not owned by exactly one live anchor, or the selection is inconsistent
// with the mode.
func (b *Builder) debugCheckAnchors() {
	owners := make(map[*Anchor]*PlacedObject, len(b.objects))
	for _, obj := range b.objects {
		a := obj.anchor
		switch {
		case a == nil:
			panic(fmt.Sprintf("arbuild debug: object %s has no anchor", obj.ID))
		case a.destroyed:
			panic(fmt.Sprintf("arbuild debug: object %s parented to destroyed anchor %s", obj.ID, a.ID))
		case a.child != obj:
			panic(fmt.Sprintf("arbuild debug: anchor %s does not own object %s", a.ID, obj.ID))
		}
		if other, dup := owners[a]; dup {
			panic(fmt.Sprintf("arbuild debug: anchor %s shared by %s and %s", a.ID, other.ID, obj.ID))
		}
		owners[a] = obj
	}
	if (b.selected != nil) != (b.mode == ModeManipulate) {
		panic(fmt.Sprintf("arbuild debug: mode %v with selection %v", b.mode, b.selected != nil))
	}
}
