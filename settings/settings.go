package settings

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/strafe/game"
	"github.com/oomph-ac/strafe/oerror"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every environment variable that overrides a setting.
const EnvPrefix = "STRAFE_"

// Settings contains everything that can be configured for a strafe session.
type Settings struct {
	Movement Movement `yaml:"movement" envPrefix:"MOVEMENT_"`
	Body     Body     `yaml:"body" envPrefix:"BODY_"`
	Session  Session  `yaml:"session" envPrefix:"SESSION_"`
	Logging  Logging  `yaml:"logging" envPrefix:"LOG_"`
}

// Movement holds the tuning of the movement controller.
type Movement struct {
	RunAcceleration float32 `yaml:"run_acceleration" env:"RUN_ACCELERATION"`
	AirAcceleration float32 `yaml:"air_acceleration" env:"AIR_ACCELERATION"`
	MaxRunSpeed     float32 `yaml:"max_run_speed" env:"MAX_RUN_SPEED"`
	MaxAirSpeed     float32 `yaml:"max_air_speed" env:"MAX_AIR_SPEED"`
	// StopSpeed is the grounded speed under which the character is brought to a full stop.
	StopSpeed  float32 `yaml:"stop_speed" env:"STOP_SPEED"`
	JumpHeight float32 `yaml:"jump_height" env:"JUMP_HEIGHT"`
	// GravityY is the vertical acceleration applied while airborne. It must be negative.
	GravityY float32 `yaml:"gravity_y" env:"GRAVITY_Y"`
	// WalkableNormalY is the minimum Y component of a normal the character can stand on.
	WalkableNormalY  float32 `yaml:"walkable_normal_y" env:"WALKABLE_NORMAL_Y"`
	GroundedDistance float32 `yaml:"grounded_distance" env:"GROUNDED_DISTANCE"`
	StepHeight       float32 `yaml:"step_height" env:"STEP_HEIGHT"`
	// TickRate is the number of physics ticks per second.
	TickRate int `yaml:"tick_rate" env:"TICK_RATE"`
}

// Gravity returns the gravity vector.
func (m Movement) Gravity() mgl32.Vec3 {
	return mgl32.Vec3{0, m.GravityY, 0}
}

// TickDuration returns the fixed duration of one tick in seconds.
func (m Movement) TickDuration() float32 {
	return 1 / float32(m.TickRate)
}

// Validate returns every problem found with the movement settings, or nil.
func (m Movement) Validate() error {
	var errs []error
	positive := func(name string, v float32) {
		if v <= 0 {
			errs = append(errs, oerror.New("movement: %s must be positive, got %v", name, v))
		}
	}
	positive("run_acceleration", m.RunAcceleration)
	positive("air_acceleration", m.AirAcceleration)
	positive("max_run_speed", m.MaxRunSpeed)
	positive("max_air_speed", m.MaxAirSpeed)
	positive("jump_height", m.JumpHeight)
	positive("grounded_distance", m.GroundedDistance)
	positive("step_height", m.StepHeight)
	if m.StopSpeed < 0 {
		errs = append(errs, oerror.New("movement: stop_speed must not be negative, got %v", m.StopSpeed))
	}
	if m.GravityY >= 0 {
		errs = append(errs, oerror.New("movement: gravity_y must be negative, got %v", m.GravityY))
	}
	if m.WalkableNormalY <= 0 || m.WalkableNormalY > 1 {
		errs = append(errs, oerror.New("movement: walkable_normal_y must be in (0, 1], got %v", m.WalkableNormalY))
	}
	if m.TickRate <= 0 {
		errs = append(errs, oerror.New("movement: tick_rate must be positive, got %d", m.TickRate))
	}
	return errors.Join(errs...)
}

// Body describes the fixed bounding box of the character.
type Body struct {
	Width  float32 `yaml:"width" env:"WIDTH"`
	Height float32 `yaml:"height" env:"HEIGHT"`
	Depth  float32 `yaml:"depth" env:"DEPTH"`
	// CenterOffsetY offsets the box centre from the character's origin.
	CenterOffsetY float32 `yaml:"center_offset_y" env:"CENTER_OFFSET_Y"`
}

// HalfExtents returns the half size of the box on each axis.
func (b Body) HalfExtents() mgl32.Vec3 {
	return mgl32.Vec3{b.Width / 2, b.Height / 2, b.Depth / 2}
}

// Validate returns every problem found with the body settings, or nil.
func (b Body) Validate() error {
	if b.Width <= 0 || b.Height <= 0 || b.Depth <= 0 {
		return oerror.New("body: dimensions must be positive, got %vx%vx%v", b.Width, b.Height, b.Depth)
	}
	return nil
}

// Session holds settings of the simulation loop driving characters.
type Session struct {
	// KillY is the height under which a character is respawned.
	KillY float32 `yaml:"kill_y" env:"KILL_Y"`
	// HistorySize is the amount of ticks kept per character for inspection.
	HistorySize int `yaml:"history_size" env:"HISTORY_SIZE"`
	// RecordingFile is where ticks are recorded to. Recording is disabled when empty.
	RecordingFile string `yaml:"recording_file" env:"RECORDING_FILE"`
	// Parallel ticks independent characters on the worker pool.
	Parallel bool `yaml:"parallel" env:"PARALLEL"`
}

// Validate returns every problem found with the session settings, or nil.
func (s Session) Validate() error {
	if s.HistorySize < 0 {
		return oerror.New("session: history_size must not be negative, got %d", s.HistorySize)
	}
	return nil
}

// Logging holds settings for the slog logger.
type Logging struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"`
}

// Validate returns every problem found with the logging settings, or nil.
func (l Logging) Validate() error {
	switch strings.ToLower(l.Format) {
	case "", "text", "json":
	default:
		return oerror.New("logging: unknown format %q", l.Format)
	}
	switch strings.ToLower(l.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return oerror.New("logging: unknown level %q", l.Level)
	}
	return nil
}

// DefaultSettings returns the default settings.
func DefaultSettings() Settings {
	return Settings{
		Movement: Movement{
			RunAcceleration:  game.DefaultRunAcceleration,
			AirAcceleration:  game.DefaultAirAcceleration,
			MaxRunSpeed:      game.DefaultMaxRunSpeed,
			MaxAirSpeed:      game.DefaultMaxAirSpeed,
			StopSpeed:        game.DefaultStopSpeed,
			JumpHeight:       game.DefaultJumpHeight,
			GravityY:         game.DefaultGravityY,
			WalkableNormalY:  game.DefaultWalkableNormalY,
			GroundedDistance: game.DefaultGroundedDistance,
			StepHeight:       game.DefaultStepHeight,
			TickRate:         game.DefaultTickRate,
		},
		Body: Body{
			Width:  1,
			Height: 2,
			Depth:  1,
		},
		Session: Session{
			KillY:       -50,
			HistorySize: 128,
		},
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate returns every problem found with the settings, or nil.
func (s Settings) Validate() error {
	return errors.Join(s.Movement.Validate(), s.Body.Validate(), s.Session.Validate(), s.Logging.Validate())
}

// Load reads settings from the YAML file at path on top of the defaults, applies environment
// overrides and validates the result. A missing file is not an error.
func Load(path string) (Settings, error) {
	s := DefaultSettings()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return s, fmt.Errorf("read settings: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &s); err != nil {
				return s, fmt.Errorf("decode settings %s: %w", path, err)
			}
		}
	}
	if err := ApplyEnv(&s); err != nil {
		return s, err
	}
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("invalid settings: %w", err)
	}
	return s, nil
}

// ApplyEnv overrides s with any STRAFE_ prefixed environment variables that are set.
func ApplyEnv(s *Settings) error {
	if err := env.ParseWithOptions(s, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Encode returns the YAML representation of s, used to write out a starter settings file.
func Encode(s Settings) ([]byte, error) {
	return yaml.Marshal(s)
}
