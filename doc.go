// Package glide is an activity-gated motion engine for scrolling pages:
// an ambient dot field that swells around the pointer, a cursor that spins
// until it locks onto interactive elements, reversible scroll reveals, a
// pinned closing section, spinning decorations that react to scroll speed,
// and an elastic drag slider driving an output such as audio volume.
//
// # Quick start
//
//	layout := glide.NewLayout(1280, 800)
//	layout.Add(glide.Element{ID: "hero", Tags: []string{"float"}, Bounds: glide.Rect{X: 80, Y: 900, Width: 600, Height: 300}})
//
//	stage := glide.NewStage(layout, glide.NewEbitenSurface(layout), glide.DefaultConfig())
//	stage.EnableField()
//	stage.EnableCursor()
//	stage.Reveals().Register("hero", glide.FloatReveal())
//
//	if err := glide.Run(stage, glide.RunConfig{Title: "glide", Width: 1280, Height: 800}); err != nil {
//		log.Fatal(err)
//	}
//
// # Frame model
//
// A [Stage] owns one [Context] and a [Scheduler]. Each Update drains the
// whole input queue first, then ticks every registered [Ticker] once.
// Components register only while they have something left to converge and
// unregister as soon as they settle, so a static page costs no per-frame
// work. Nothing ticks while the page is hidden. The idle cursor spin, spin
// decorations and [IdleMotion] float and pulse loops are functions of the
// stage clock and are written in [Stage.Draw] without ticking.
//
// Every animated number converges through [Step]:
//
//	current += (target - current) * rate
//
// Time-based transitions (reveal playheads, hover strength, click pulses)
// use gween curves, and the slider's release uses a harmonica spring.
//
// # Viewport and surface
//
// Components never touch a real document. Element geometry comes from a
// [Viewport] (the in-memory [Layout] in tests and examples) and results go to
// a [Surface]: [EbitenSurface] paints them, [Recorder] keeps them for
// inspection, and [Discard] drops them.
//
// # Failure model
//
// Missing elements make registration a no-op that reports false. Zero-size
// geometry never divides by zero. Nothing in the animation path returns an
// error; only setup ([LoadConfig], [LoadTestScript], [Run],
// [NewVolumeOutput]) does.
//
// # Scripted runs
//
// [LoadTestScript] parses a JSON list of steps (move, leave, press, release,
// click, drag, scroll, resize, hide, show, wait, screenshot) that a
// [TestRunner] injects one event per frame.
//
// # ECS integration
//
// [Stage.SetEventSink] forwards [MotionEvent] notifications. The ecs
// submodule provides a donburi bridge.
package glide
