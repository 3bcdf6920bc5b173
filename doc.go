// Package arbuild is the gesture-driven manipulation engine for placing
// virtual objects on surfaces tracked by an augmented-reality session.
//
// A [Builder] turns multi-touch input into create, select, move, rotate and
// scale operations. It raycasts against the bound tracked surface and against
// placed objects, and keeps every [PlacedObject] pinned to exactly one
// [Anchor] while the user drags it around. Rendering is left to the caller:
// the engine only computes poses and transforms.
//
// # Quick start
//
//	cam := arbuild.NewCamera(arbuild.Rect{Width: 1170, Height: 2532})
//	tracker := arbuild.NewPlaneTracker(cam) // or the AR runtime's tracker
//	b, err := arbuild.NewBuilder(arbuild.DefaultConfig(), arbuild.Collaborators{
//		Tracker: tracker,
//		Anchors: arbuild.NewLocalAnchorService(),
//		Camera:  cam,
//		Source:  arbuild.NewEbitenTouchSource(),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	b.Surfaces().Bind(floorID)
//
//	// each frame
//	b.Update(1.0 / 60)
//
// # Modes
//
// The Builder starts in [ModeCreate] (configurable). A single-finger touch on
// the bound surface places an object there, selects it and switches to
// [ModeManipulate]. In [ModeSelect] a touch on an object's body selects it.
//
// While manipulating, the first single-finger position of a touch sequence
// decides the gesture:
//
//   - On the selected object's body: move. Every later position re-anchors the
//     object where the finger meets the surface.
//   - On the rotation gizmo: rotate. Each step applies the shortest-arc
//     rotation between successive anchor-to-finger directions.
//   - Anywhere else: the object is deselected and the Builder returns to
//     [ModeSelect].
//
// Two fingers scale the selection, provided one of them was on its body when
// the second finger landed. Scale changes by the pinch distance delta times
// [Config].ScaleSensitivity and is clamped to [Config].MinScale and
// [Config].MaxScale. Lifting every finger ends the gesture; the selection is
// kept.
//
// # Input
//
// Raw touches go through a [Demuxer], which drops presses and positions over
// UI surfaces and counts fingers. [EbitenTouchSource] reads them from
// Ebitengine. For tests and replays, the Inject methods and [ScriptRunner]
// queue synthetic touches that are consumed one per frame.
//
// # Events
//
// Register callbacks with [Builder.On], or bridge events into an ECS with
// [Builder.SetEventSink]. The ecs sub-package provides a Donburi sink.
package arbuild
