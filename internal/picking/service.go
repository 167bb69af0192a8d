package picking

import (
	"github.com/go-gl/mathgl/mgl32"

	"pick3d/internal/geom"
	"pick3d/internal/scene"
)

// Service runs one pick per frame and remembers results. Repeating
// Update with the same frame state returns the same hit and settles
// the stored state to the same values, so extra calls are harmless.
type Service struct {
	// MaxDistance caps hit distance when positive. Zero means
	// unlimited.
	MaxDistance float32

	current Hit
	hasHit  bool
	last    Hit
	hasLast bool

	issuedGen  uint64
	appliedGen uint64
	hoverEnt   scene.EntityID
	hasHover   bool
}

func NewService() *Service {
	return &Service{}
}

// Update casts the cursor ray against the snapshot and stores the
// result. An invalid viewport yields no hit and ErrInvalidViewport;
// the retained last hit survives both misses and errors.
func (s *Service) Update(cursorX, cursorY float32, vp Viewport, view, proj mgl32.Mat4, snap *scene.Snapshot) (Hit, bool, error) {
	rc := RayCaster{View: view, Proj: proj, Viewport: vp}
	ray, err := rc.Cast(cursorX, cursorY)
	if err != nil {
		s.current = Hit{}
		s.hasHit = false
		return Hit{}, false, err
	}

	hit, ok := s.pick(ray, snap)
	s.current = hit
	s.hasHit = ok
	if ok {
		s.last = hit
		s.hasLast = true
	}
	return hit, ok, nil
}

func (s *Service) pick(ray geom.Ray, snap *scene.Snapshot) (Hit, bool) {
	if snap == nil {
		return Hit{}, false
	}
	if s.MaxDistance > 0 {
		return IntersectWithin(ray, snap.Entities, s.MaxDistance)
	}
	return Intersect(ray, snap.Entities)
}

// CurrentHit returns this frame's pick result.
func (s *Service) CurrentHit() (Hit, bool) {
	return s.current, s.hasHit
}

// LastHit returns the most recent frame that hit anything. It keeps
// reporting that hit while the cursor is over empty space.
func (s *Service) LastHit() (Hit, bool) {
	return s.last, s.hasLast
}

// HoverRequest is a generation-stamped ray for the asynchronous
// entity-id pick path. The stamp orders results, not rays.
type HoverRequest struct {
	Gen uint64
	Ray geom.Ray
}

// HoverResult carries an asynchronous pick answer back. Ok false
// means the ray hit nothing.
type HoverResult struct {
	Gen    uint64
	Entity scene.EntityID
	Ok     bool
}

// NextHoverRequest stamps a ray for asynchronous resolution. Each
// call issues a newer generation; a backend that keeps only the
// newest request drops the rest.
func (s *Service) NextHoverRequest(r geom.Ray) HoverRequest {
	s.issuedGen++
	return HoverRequest{Gen: s.issuedGen, Ray: r}
}

// ApplyHover folds an asynchronous result in. Results at or below an
// already applied generation are dropped, so a late arrival never
// rolls the hover state backwards. Reports whether the result took
// effect.
func (s *Service) ApplyHover(res HoverResult) bool {
	if res.Gen <= s.appliedGen {
		return false
	}
	s.appliedGen = res.Gen
	s.hoverEnt = res.Entity
	s.hasHover = res.Ok
	return true
}

// Hover returns the entity id from the newest applied asynchronous
// result. It may lag the synchronous pick by a few frames and
// carries no triangle or distance detail.
func (s *Service) Hover() (scene.EntityID, bool) {
	return s.hoverEnt, s.hasHover
}
