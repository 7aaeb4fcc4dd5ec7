package main

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/chewxy/math32"
	"github.com/elliotchance/orderedmap/v2"
	"github.com/oomph-ac/strafe/session"
	"github.com/oomph-ac/strafe/settings"
)

func TestPlatformReturnsToStart(t *testing.T) {
	dt := settings.DefaultSettings().Movement.TickDuration()
	var z float32
	for tick := uint64(1); tick <= 200; tick++ {
		z += platformOffset(tick, dt).Z()
	}
	if want := 4 * math32.Sin(200*dt); math32.Abs(z-want) > 1e-3 {
		t.Fatalf("expected the platform offsets to add up to %v, got %v", want, z)
	}
}

func TestVerifyReproducesRecording(t *testing.T) {
	s := settings.DefaultSettings()
	path := filepath.Join(t.TempDir(), "run.strafe")

	meta := orderedmap.NewOrderedMap[string, string]()
	meta.Set("course", courseName)
	meta.Set("script", "builtin")
	rec, err := session.CreateRecording(path, s, meta)
	if err != nil {
		t.Fatalf("create recording: %v", err)
	}
	sess, err := newSession(slog.Default(), s, defaultScript(), rec)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if err := sess.Run(context.Background(), 120, false); err != nil {
		t.Fatalf("run: %v", err)
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("close recording: %v", err)
	}

	if err := verify(context.Background(), slog.Default(), path); err != nil {
		t.Fatalf("expected the recording to reproduce, got %v", err)
	}
}
