package main

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/strafe/input"
	"github.com/oomph-ac/strafe/session"
	"github.com/oomph-ac/strafe/world"
)

const courseName = "demo"

// character is a character the demo course spawns.
type character struct {
	name  string
	spawn mgl32.Vec3
	// impulses maps tick numbers to impulses scheduled for the character.
	impulses map[uint64]mgl32.Vec3
}

var characters = []character{
	{name: "runner", spawn: mgl32.Vec3{0, 1, 0}},
	{name: "rocket", spawn: mgl32.Vec3{0, 1, -8}, impulses: map[uint64]mgl32.Vec3{
		45: {6, 9, 0},
	}},
}

// buildCourse lays out a floor with a low step, a wall, a ramp up to a platform and a platform that
// slides back and forth along Z.
func buildCourse(w *world.World) (movingPlatform uint64) {
	w.Add(world.NewBox(cube.Box(-20, -1, -20, 60, 0, 20)))
	w.Add(world.NewBox(cube.Box(4, 0, -20, 60, 0.08, 20)))
	w.Add(world.NewBox(cube.Box(30, 0, -2, 31, 3, 20)))
	w.Add(world.NewRamp(cube.Box(12, 0.08, -20, 18, 2, -12), cube.FaceEast))
	w.Add(world.NewBox(cube.Box(18, 0.08, -20, 26, 2, -12)))
	return w.Add(world.NewBox(cube.Box(40, 0.08, -4, 44, 1, 0)))
}

// platformOffset returns how far the moving platform travels between the previous tick and tick.
func platformOffset(tick uint64, dt float32) mgl32.Vec3 {
	const amplitude, speed = 4, 1
	at := func(t uint64) float32 {
		return amplitude * math32.Sin(float32(t)*dt*speed)
	}
	return mgl32.Vec3{0, 0, at(tick) - at(tick-1)}
}

// defaultScript turns to face +X, runs over the step, strafe jumps, lets go and turns around.
func defaultScript() []input.Step {
	return []input.Step{
		{Ticks: 1, Raw: input.Raw{Vertical: 1, LookX: 45}},
		{Ticks: 29, Raw: input.Raw{Vertical: 1}},
		{Ticks: 1, Raw: input.Raw{Vertical: 1, Jump: true}},
		{Ticks: 25, Raw: input.Raw{Horizontal: 1, Vertical: 1, LookX: 0.5}},
		{Ticks: 10, Raw: input.Raw{}},
		{Ticks: 1, Raw: input.Raw{Vertical: 1, Jump: true, LookX: -10}},
		{Ticks: 40, Raw: input.Raw{Vertical: 1, LookX: -1}},
		{Ticks: 20, Raw: input.Raw{Horizontal: -1}},
		{Ticks: 50, Raw: input.Raw{}},
	}
}

// populate builds the demo course into w and adds its characters to sess, each replaying steps.
func populate(sess *session.Session, w *world.World, steps []input.Step, dt float32) error {
	platform := buildCourse(w)
	sess.BeforeTick(func(tick uint64) {
		w.Move(platform, platformOffset(tick, dt))
	})
	for _, c := range characters {
		if _, err := sess.AddCharacter(c.name, c.spawn, input.NewScript(nil, steps...)); err != nil {
			return err
		}
		for tick, impulse := range c.impulses {
			if err := sess.ScheduleImpulse(c.name, tick, impulse); err != nil {
				return err
			}
		}
	}
	return nil
}
