package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/oomph-ac/strafe/input"
	"github.com/oomph-ac/strafe/session"
	"github.com/oomph-ac/strafe/settings"
	"github.com/oomph-ac/strafe/world"
)

var (
	configPath  = flag.String("config", "strafe.yaml", "path to the settings file")
	ticks       = flag.Int("ticks", 250, "amount of ticks to simulate")
	recordPath  = flag.String("record", "", "file to record the run to, overriding session.recording_file")
	realtime    = flag.Bool("realtime", false, "pace ticks at the configured tick rate")
	scriptPath  = flag.String("script", "", "YAML input script replayed by every character")
	verifyPath  = flag.String("verify", "", "replay a recording and check it reproduces bit for bit")
	writeConfig = flag.String("write-config", "", "write the effective settings to this file and exit")
)

// The following program runs characters through a demo course with scripted input and prints where
// they ended up, optionally recording every tick or verifying an earlier recording.
func main() {
	flag.Parse()

	s, err := settings.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := newLogger(s.Logging, os.Stderr)

	if dsn := os.Getenv("STRAFE_SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: dsn}); err != nil {
			log.Warn("unable to initialise sentry", "err", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	if os.Getenv("PPROF_ENABLED") != "" {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr("localhost:8080"))

		mgr := statsview.New()
		go mgr.Start()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch {
	case *writeConfig != "":
		err = writeSettings(*writeConfig, s)
	case *verifyPath != "":
		err = verify(ctx, log, *verifyPath)
	default:
		err = simulate(ctx, log, s)
	}
	if err != nil {
		log.Error("strafesim failed", "err", err)
		os.Exit(1)
	}
}

func writeSettings(path string, s settings.Settings) error {
	data, err := settings.Encode(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	fmt.Printf("Settings written to %s\n", path)
	return nil
}

// loadSteps returns the steps from the script at path, or the built in script if path is empty.
func loadSteps(path string) ([]input.Step, error) {
	if path == "" || path == "builtin" {
		return defaultScript(), nil
	}
	return input.LoadScript(path)
}

func simulate(ctx context.Context, log *slog.Logger, s settings.Settings) error {
	steps, err := loadSteps(*scriptPath)
	if err != nil {
		return err
	}

	file := s.Session.RecordingFile
	if *recordPath != "" {
		file = *recordPath
	}
	var rec *session.Recorder
	if file != "" {
		script := *scriptPath
		if script == "" {
			script = "builtin"
		}
		meta := orderedmap.NewOrderedMap[string, string]()
		meta.Set("course", courseName)
		meta.Set("script", script)
		meta.Set("ticks", fmt.Sprint(*ticks))
		meta.Set("recorded_at", time.Now().UTC().Format(time.RFC3339))

		if rec, err = session.CreateRecording(file, s, meta); err != nil {
			return err
		}
		defer rec.Close()
	}

	sess, err := newSession(log, s, steps, rec)
	if err != nil {
		return err
	}
	start := time.Now()
	if err := sess.Run(ctx, *ticks, *realtime); err != nil {
		return fmt.Errorf("run session: %w", err)
	}
	log.Info("simulation finished", "ticks", sess.Tick(), "took", time.Since(start))

	for _, c := range sess.Characters() {
		st := c.Controller.State()
		fmt.Printf("%-8s pos=%v vel=%v mode=%v respawns=%d\n", c.Name, st.Pos, st.Vel, st.Mode, c.Respawns())
	}
	fmt.Printf("checksum %016x\n", sess.Checksum())
	if file != "" {
		fmt.Printf("Recording written to %s\n", file)
	}
	return nil
}

func newSession(log *slog.Logger, s settings.Settings, steps []input.Step, rec *session.Recorder) (*session.Session, error) {
	w := world.New(log)
	sess, err := session.New(session.Config{
		Settings: s,
		World:    w,
		Recorder: rec,
		Logger:   log,
	})
	if err != nil {
		return nil, err
	}
	if err := populate(sess, w, steps, s.Movement.TickDuration()); err != nil {
		return nil, err
	}
	return sess, nil
}

// verify replays the recording at path with the settings and script it was recorded with and
// reports the first tick that does not reproduce.
func verify(ctx context.Context, log *slog.Logger, path string) error {
	want, err := session.OpenRecording(path)
	if err != nil {
		return err
	}
	if course, _ := want.Meta("course"); course != courseName {
		return fmt.Errorf("recording was made on course %q", course)
	}
	script, _ := want.Meta("script")
	steps, err := loadSteps(script)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	rec, err := session.NewRecorder(&buf, want.Settings, nil)
	if err != nil {
		return err
	}
	sess, err := newSession(log, want.Settings, steps, rec)
	if err != nil {
		return err
	}
	n := len(want.Ticks) / len(characters)
	if err := sess.Run(ctx, n, false); err != nil {
		return fmt.Errorf("replay session: %w", err)
	}
	if err := rec.Close(); err != nil {
		return err
	}
	got, err := session.ReadRecording(&buf)
	if err != nil {
		return err
	}

	for i, t := range want.Ticks {
		if i >= len(got.Ticks) || got.Ticks[i].Checksum != t.Checksum {
			return fmt.Errorf("replay diverged on tick %d for %s", t.Tick, t.Character)
		}
	}
	if got.Checksum() != want.Checksum() {
		return fmt.Errorf("replay checksum %016x does not match recording %016x", got.Checksum(), want.Checksum())
	}
	fmt.Printf("Recording %s reproduced %d ticks, checksum %016x\n", path, n, got.Checksum())
	return nil
}
