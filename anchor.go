package arbuild

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNoSurface is returned when an anchor is requested before a surface has
// been bound.
var ErrNoSurface = errors.New("arbuild: no surface bound")

// AnchorService is the AR runtime's anchor subsystem. Calls are synchronous.
type AnchorService interface {
	// CreateAnchor pins pose to the given tracked surface and returns the
	// runtime's handle for it.
	CreateAnchor(surface uuid.UUID, pose Pose) (uuid.UUID, error)
	// DestroyAnchor releases a handle. It is fire-and-forget.
	DestroyAnchor(id uuid.UUID)
}

// Anchor is a pose fixed to a tracked surface. It owns at most one placed
// object.
type Anchor struct {
	ID      uuid.UUID
	Surface uuid.UUID
	Pose    Pose

	child     *PlacedObject
	destroyed bool
}

// Child returns the object parented to this anchor, or nil.
func (a *Anchor) Child() *PlacedObject {
	return a.child
}

// Destroyed reports whether the anchor has been released.
func (a *Anchor) Destroyed() bool {
	return a.destroyed
}

// AnchorAdapter wraps an AnchorService, binding new anchors to the surface
// the raycaster currently targets and tracking which handles are alive.
type AnchorAdapter struct {
	svc     AnchorService
	surface func() (uuid.UUID, bool)
	live    map[uuid.UUID]*Anchor
	log     *zap.Logger

	created   int
	destroyed int
}

// NewAnchorAdapter creates an adapter. surface reports the currently bound
// surface; SurfaceRaycaster.Bound satisfies it.
func NewAnchorAdapter(svc AnchorService, surface func() (uuid.UUID, bool), log *zap.Logger) *AnchorAdapter {
	if log == nil {
		log = zap.NewNop()
	}
	return &AnchorAdapter{
		svc:     svc,
		surface: surface,
		live:    make(map[uuid.UUID]*Anchor),
		log:     log,
	}
}

// Create pins a fresh anchor at pose on the bound surface.
func (a *AnchorAdapter) Create(pose Pose) (*Anchor, error) {
	surface, ok := a.surface()
	if !ok {
		return nil, ErrNoSurface
	}
	id, err := a.svc.CreateAnchor(surface, pose)
	if err != nil {
		return nil, fmt.Errorf("arbuild: create anchor: %w", err)
	}
	anchor := &Anchor{ID: id, Surface: surface, Pose: pose}
	a.live[id] = anchor
	a.created++
	a.log.Debug("anchor created", zap.Stringer("anchor", id), zap.Stringer("surface", surface))
	return anchor, nil
}

// Destroy releases an anchor. The anchor's object must already have been
// reparented away; destroying an anchor that still owns an object panics.
func (a *AnchorAdapter) Destroy(anchor *Anchor) {
	if anchor == nil || anchor.destroyed {
		return
	}
	if anchor.child != nil {
		panic(fmt.Sprintf("arbuild: destroy anchor %s while it still owns object %s", anchor.ID, anchor.child.ID))
	}
	anchor.destroyed = true
	delete(a.live, anchor.ID)
	a.destroyed++
	a.svc.DestroyAnchor(anchor.ID)
	a.log.Debug("anchor destroyed", zap.Stringer("anchor", anchor.ID))
}

// Lookup returns a live anchor by ID.
func (a *AnchorAdapter) Lookup(id uuid.UUID) (*Anchor, bool) {
	anchor, ok := a.live[id]
	return anchor, ok
}

// Live returns the number of anchors created and not yet destroyed.
func (a *AnchorAdapter) Live() int {
	return len(a.live)
}

// LocalAnchorService is an in-process AnchorService that issues random
// handles. It stands in for the AR runtime in tests and the desktop example.
type LocalAnchorService struct {
	// Fail, when set, is returned by every CreateAnchor call.
	Fail error

	anchors map[uuid.UUID]Pose
}

// NewLocalAnchorService creates an empty service.
func NewLocalAnchorService() *LocalAnchorService {
	return &LocalAnchorService{anchors: make(map[uuid.UUID]Pose)}
}

// CreateAnchor implements AnchorService.
func (s *LocalAnchorService) CreateAnchor(_ uuid.UUID, pose Pose) (uuid.UUID, error) {
	if s.Fail != nil {
		return uuid.Nil, s.Fail
	}
	id := uuid.New()
	s.anchors[id] = pose
	return id, nil
}

// DestroyAnchor implements AnchorService.
func (s *LocalAnchorService) DestroyAnchor(id uuid.UUID) {
	delete(s.anchors, id)
}

// Exists reports whether the service still holds id.
func (s *LocalAnchorService) Exists(id uuid.UUID) bool {
	_, ok := s.anchors[id]
	return ok
}

// Count returns the number of anchors the service holds.
func (s *LocalAnchorService) Count() int {
	return len(s.anchors)
}
