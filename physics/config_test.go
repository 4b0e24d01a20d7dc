package physics

import (
	"log/slog"
	"testing"

	"github.com/silt-engine/impulse3d/lin"
)

func TestNewWorldDefaults(t *testing.T) {
	w := NewWorld()
	want := lin.Vec3{Y: -9.81}
	if w.gravity != want {
		t.Errorf("expected default gravity %v, got %v", want, w.gravity)
	}
}

func TestNewWorldGravityOption(t *testing.T) {
	w := NewWorld(Gravity(1, 2, 3))
	want := lin.Vec3{X: 1, Y: 2, Z: 3}
	if w.gravity != want {
		t.Errorf("expected gravity %v, got %v", want, w.gravity)
	}
}

func TestNewWorldLoggerOption(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(nil, nil))
	w := NewWorld(Logger(logger))
	if w.logger != logger {
		t.Error("expected the Logger option to replace the World's logger")
	}
}

func TestNewWorldOptionsAppliedInOrder(t *testing.T) {
	w := NewWorld(Gravity(0, -1, 0), Gravity(0, -20, 0))
	want := lin.Vec3{Y: -20}
	if w.gravity != want {
		t.Errorf("expected the last Gravity option to win, got %v", w.gravity)
	}
}
