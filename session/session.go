// Package session drives a set of characters through a shared world at a fixed tick rate.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/strafe/input"
	"github.com/oomph-ac/strafe/movement"
	"github.com/oomph-ac/strafe/oerror"
	"github.com/oomph-ac/strafe/physics"
	"github.com/oomph-ac/strafe/settings"
	"github.com/oomph-ac/strafe/worker"
	"github.com/oomph-ac/strafe/world"
	"github.com/sasha-s/go-deadlock"
	"github.com/zeebo/xxh3"
)

// Config holds what a Session is created from.
type Config struct {
	Settings settings.Settings
	World    world.Provider
	// Dynamics moves characters while they are not kinematic. It defaults to a physics.Integrator
	// over World.
	Dynamics movement.Dynamics
	// Recorder, if set, receives a record of every character's tick. The session does not close it.
	Recorder *Recorder
	Logger   *slog.Logger
}

// Snapshot is the outcome of one tick of a character.
type Snapshot struct {
	Tick      uint64
	Frame     input.Frame
	Result    movement.Result
	Respawned bool
}

// Character is a controller driven by an input source.
type Character struct {
	Name       string
	Controller *movement.Controller
	Input      input.Source
	Spawn      mgl32.Vec3

	history   *History[Snapshot]
	impulse   mgl32.Vec3
	impulsed  bool
	scheduled map[uint64]mgl32.Vec3
	respawns  int
}

// History returns the most recent snapshots of the character.
func (c *Character) History() *History[Snapshot] {
	return c.history
}

// Respawns returns how many times the character fell below the kill plane.
func (c *Character) Respawns() int {
	return c.respawns
}

// Session owns the characters and advances them one tick at a time.
type Session struct {
	conf  Config
	chars *orderedmap.OrderedMap[string, *Character]
	tick  uint64
	sum   *xxh3.Hasher

	beforeTick []func(tick uint64)
	log        *slog.Logger

	deadlock.Mutex
}

// New creates an empty session.
func New(conf Config) (*Session, error) {
	if conf.World == nil {
		return nil, oerror.New("session requires a world")
	}
	if err := conf.Settings.Validate(); err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	if conf.Logger == nil {
		conf.Logger = slog.Default()
	}
	if conf.Dynamics == nil {
		conf.Dynamics = physics.NewIntegrator(conf.World)
	}
	return &Session{
		conf:  conf,
		chars: orderedmap.NewOrderedMap[string, *Character](),
		sum:   xxh3.New(),
		log:   conf.Logger,
	}, nil
}

// AddCharacter spawns a new character at spawn, driven by src. Characters are ticked in the order
// they were added.
func (s *Session) AddCharacter(name string, spawn mgl32.Vec3, src input.Source) (*Character, error) {
	s.Lock()
	defer s.Unlock()

	if _, ok := s.chars.Get(name); ok {
		return nil, oerror.New("character %q already exists", name)
	}
	logger := s.log.With("character", name)
	ctrl, err := movement.New(movement.Config{
		Movement: s.conf.Settings.Movement,
		Body:     s.conf.Settings.Body,
		World:    s.conf.World,
		Dynamics: s.conf.Dynamics,
		Spawn:    spawn,
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("add character %s: %w", name, err)
	}
	c := &Character{
		Name:       name,
		Controller: ctrl,
		Input:      src,
		Spawn:      spawn,
		history:    NewHistory[Snapshot](s.conf.Settings.Session.HistorySize),
		scheduled:  make(map[uint64]mgl32.Vec3),
	}
	s.chars.Set(name, c)
	logger.Info("character added", "spawn", spawn)
	return c, nil
}

// Character returns the character with the name passed.
func (s *Session) Character(name string) (*Character, bool) {
	s.Lock()
	defer s.Unlock()
	return s.chars.Get(name)
}

// Characters returns every character in the order they are ticked.
func (s *Session) Characters() []*Character {
	s.Lock()
	defer s.Unlock()
	return s.characters()
}

func (s *Session) characters() []*Character {
	list := make([]*Character, 0, s.chars.Len())
	for el := s.chars.Front(); el != nil; el = el.Next() {
		list = append(list, el.Value)
	}
	return list
}

// ApplyImpulse queues an impulse for the character with the name passed. It is handed to the
// controller right before its next tick.
func (s *Session) ApplyImpulse(name string, impulse mgl32.Vec3) error {
	s.Lock()
	defer s.Unlock()

	c, ok := s.chars.Get(name)
	if !ok {
		return oerror.New("no character named %q", name)
	}
	c.impulse = c.impulse.Add(impulse)
	c.impulsed = true
	return nil
}

// ScheduleImpulse queues an impulse for the character with the name passed, to be applied right
// before the tick with the number passed runs. Ticks are numbered from 1.
func (s *Session) ScheduleImpulse(name string, tick uint64, impulse mgl32.Vec3) error {
	s.Lock()
	defer s.Unlock()

	c, ok := s.chars.Get(name)
	if !ok {
		return oerror.New("no character named %q", name)
	}
	if tick <= s.tick {
		return oerror.New("tick %d has already run", tick)
	}
	c.scheduled[tick] = c.scheduled[tick].Add(impulse)
	return nil
}

// BeforeTick registers f to be called at the start of every tick, before any character moves. It
// is where dynamic colliders are moved. f must not call back into the session.
func (s *Session) BeforeTick(f func(tick uint64)) {
	s.Lock()
	defer s.Unlock()
	s.beforeTick = append(s.beforeTick, f)
}

// Tick returns the amount of ticks run.
func (s *Session) Tick() uint64 {
	s.Lock()
	defer s.Unlock()
	return s.tick
}

// Checksum returns the running checksum over every character tick so far.
func (s *Session) Checksum() uint64 {
	s.Lock()
	defer s.Unlock()
	return s.sum.Sum64()
}

// Step runs a single tick for every character. If a character's tick panics on the worker pool
// nothing from the tick is recorded and an error naming the characters is returned.
func (s *Session) Step() error {
	s.Lock()
	defer s.Unlock()

	s.tick++
	for _, f := range s.beforeTick {
		f(s.tick)
	}

	chars := s.characters()
	snaps := make([]Snapshot, len(chars))
	killY := s.conf.Settings.Session.KillY
	if s.conf.Settings.Session.Parallel && len(chars) > 1 {
		var g worker.Group
		done := make([]bool, len(chars))
		for i, c := range chars {
			g.Go(func() {
				snaps[i] = c.step(s.tick, killY)
				done[i] = true
			})
		}
		if err := g.Wait(); err != nil {
			var failed []string
			for i, c := range chars {
				if !done[i] {
					failed = append(failed, c.Name)
				}
			}
			s.log.Error("tick did not complete", "tick", s.tick, "characters", failed, "error", err)
			return fmt.Errorf("tick %d failed for %v: %w", s.tick, failed, err)
		}
	} else {
		for i, c := range chars {
			snaps[i] = c.step(s.tick, killY)
		}
	}

	for i, c := range chars {
		snap := snaps[i]
		c.history.Append(snap)
		if snap.Respawned {
			s.log.Info("character fell out of the world", "character", c.Name, "tick", s.tick, "respawns", c.respawns)
		}

		rec := NewTickRecord(s.tick, c.Name, snap.Result, snap.Respawned)
		foldChecksum(s.sum, rec.Checksum)
		if s.conf.Recorder != nil {
			if err := s.conf.Recorder.Write(rec); err != nil {
				return fmt.Errorf("record tick %d: %w", s.tick, err)
			}
		}
	}
	return nil
}

// Run steps the session ticks times, or until ctx is done. With realtime set the ticks are paced
// at the configured tick rate, otherwise they run back to back.
func (s *Session) Run(ctx context.Context, ticks int, realtime bool) error {
	var ticker *time.Ticker
	if realtime {
		d := time.Second / time.Duration(s.conf.Settings.Movement.TickRate)
		ticker = time.NewTicker(d)
		defer ticker.Stop()
	}
	for i := 0; i < ticks; i++ {
		if ticker != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Step(); err != nil {
			return err
		}
	}
	return nil
}

// step samples the character's input and ticks its controller. A character below killY is put
// back at its spawn.
func (c *Character) step(tick uint64, killY float32) Snapshot {
	frame := c.Input.Sample()
	if v, ok := c.scheduled[tick]; ok {
		delete(c.scheduled, tick)
		c.impulse = c.impulse.Add(v)
		c.impulsed = true
	}
	if c.impulsed {
		c.Controller.ApplyImpulse(c.impulse)
		c.impulse, c.impulsed = mgl32.Vec3{}, false
	}
	if frame.Jump {
		c.Controller.Jump()
	}
	res := c.Controller.Tick(frame.Move)

	snap := Snapshot{Tick: tick, Frame: frame}
	if res.Position.Y() < killY {
		c.Controller.Respawn(c.Spawn)
		c.respawns++
		res.Position = c.Controller.Position()
		res.Velocity = c.Controller.Velocity()
		res.Movement = mgl32.Vec3{}
		res.Mode = c.Controller.Mode()
		res.OnGround = false
		res.GroundNormal = mgl32.Vec3{}
		snap.Respawned = true
	}
	snap.Result = res
	return snap
}
