package arbuild

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoxColliderIntersectRay(t *testing.T) {
	box := BoxCollider{Center: mgl64.Vec3{0, 1, 0}, HalfExtents: mgl64.Vec3{1, 1, 1}}

	tests := []struct {
		name   string
		ray    Ray
		wantOK bool
		wantT  float64
	}{
		{"from above", Ray{mgl64.Vec3{0, 5, 0}, mgl64.Vec3{0, -1, 0}}, true, 3},
		{"from side", Ray{mgl64.Vec3{-4, 1, 0}, mgl64.Vec3{1, 0, 0}}, true, 3},
		{"grazing edge", Ray{mgl64.Vec3{1, 5, 0}, mgl64.Vec3{0, -1, 0}}, true, 3},
		{"parallel miss", Ray{mgl64.Vec3{2, 5, 0}, mgl64.Vec3{0, -1, 0}}, false, 0},
		{"pointing away", Ray{mgl64.Vec3{0, 5, 0}, mgl64.Vec3{0, 1, 0}}, false, 0},
		{"diagonal miss", Ray{mgl64.Vec3{-4, 5, 0}, mgl64.Vec3{1, 0, 1}.Normalize()}, false, 0},
		{"origin inside", Ray{mgl64.Vec3{0, 1, 0}, mgl64.Vec3{1, 0, 0}}, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := box.IntersectRay(tt.ray)
			require.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.wantT, got, epsilon)
		})
	}
}

func TestSphereColliderIntersectRay(t *testing.T) {
	s := SphereCollider{Center: mgl64.Vec3{3, 0, 0}, Radius: 1}

	tests := []struct {
		name   string
		ray    Ray
		wantOK bool
		wantT  float64
	}{
		{"head on", Ray{mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}}, true, 2},
		{"unnormalized direction", Ray{mgl64.Vec3{}, mgl64.Vec3{2, 0, 0}}, true, 1},
		{"tangent", Ray{mgl64.Vec3{0, 1, 0}, mgl64.Vec3{1, 0, 0}}, true, 3},
		{"miss", Ray{mgl64.Vec3{0, 1.5, 0}, mgl64.Vec3{1, 0, 0}}, false, 0},
		{"behind", Ray{mgl64.Vec3{}, mgl64.Vec3{-1, 0, 0}}, false, 0},
		{"origin inside", Ray{mgl64.Vec3{3, 0, 0}, mgl64.Vec3{0, 1, 0}}, true, 0},
		{"zero direction", Ray{mgl64.Vec3{}, mgl64.Vec3{}}, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := s.IntersectRay(tt.ray)
			require.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.wantT, got, epsilon)
		})
	}
}

func TestHitTestRegions(t *testing.T) {
	f := newFixture(t, testConfig())
	obj := f.place(t, mgl64.Vec3{})
	picker := NewObjectHitTester(f.cam, f.b.Objects)

	hit, ok := picker.HitTest(f.bodyPoint(t, obj))
	require.True(t, ok)
	assert.Same(t, obj, hit.Object)
	assert.Equal(t, RegionBody, hit.Region)
	// Camera at 5m, cube top at 0.2m.
	assert.InDelta(t, 4.8-f.cam.Near, hit.Distance, 1e-6)

	hit, ok = picker.HitTest(f.gizmoPoint(t, obj))
	require.True(t, ok)
	assert.Equal(t, RegionGizmo, hit.Region)

	_, ok = picker.HitTest(f.screen(t, mgl64.Vec3{2, 0, 2}))
	assert.False(t, ok)
}

func TestHitTestGizmoHiddenWhenUnselected(t *testing.T) {
	f := newFixture(t, testConfig())
	obj := f.place(t, mgl64.Vec3{})
	gizmo := f.gizmoPoint(t, obj)
	require.NoError(t, f.b.SetMode(ModeSelect))

	picker := NewObjectHitTester(f.cam, f.b.Objects)
	_, ok := picker.HitTest(gizmo)
	assert.False(t, ok)
}

func TestHitTestNearestWins(t *testing.T) {
	f := newFixture(t, testConfig())
	low := f.place(t, mgl64.Vec3{})
	high := f.place(t, mgl64.Vec3{1, 0, 0})
	// Stack the second cube above the first.
	high.anchor.Pose.Position = mgl64.Vec3{0, 0.5, 0}

	picker := NewObjectHitTester(f.cam, f.b.Objects)
	hit, ok := picker.HitTest(Vec2{400, 300})
	require.True(t, ok)
	assert.Same(t, high, hit.Object)

	high.anchor.Pose.Position = mgl64.Vec3{3, 0, 0}
	hit, ok = picker.HitTest(Vec2{400, 300})
	require.True(t, ok)
	assert.Same(t, low, hit.Object)
}

func TestHitTestFollowsTransform(t *testing.T) {
	f := newFixture(t, testConfig())
	obj := f.place(t, mgl64.Vec3{})
	picker := NewObjectHitTester(f.cam, f.b.Objects)

	// Scaled up, the body covers a point the unit cube does not.
	edge := f.screen(t, mgl64.Vec3{0.15, 0.2, 0})
	_, ok := picker.HitTest(edge)
	require.False(t, ok)

	obj.Transform.Scale = 2
	hit, ok := picker.HitTest(edge)
	require.True(t, ok)
	assert.Equal(t, RegionBody, hit.Region)
}
