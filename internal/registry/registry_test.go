package registry

import (
	"strings"
	"testing"

	"github.com/vovakirdan/highway-runner/internal/core"
)

type stubGame struct {
	svc core.Services
}

func (g *stubGame) ID() string { return "stub" }
func (g *stubGame) Title() string { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig) {}
func (g *stubGame) Render(*core.Screen) {}
func (g *stubGame) State() core.GameState { return core.GameState{} }
func (g *stubGame) Step(core.InputFrame, core.Delta) core.StepResult {
	return core.StepResult{}
}

func TestCreateFillsServices(t *testing.T) {
	Register("stub-create", func(svc core.Services) Game { return &stubGame{svc: svc} })

	g, err := Create("stub-create", core.Services{})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	sg := g.(*stubGame)
	if sg.svc.Sprites == nil || sg.svc.Audio == nil {
		t.Errorf("Create() left nil services: %+v", sg.svc)
	}
	if !Exists("stub-create") {
		t.Error("Exists() = false after Register")
	}
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create("no-such-game", core.Services{})
	if err == nil || !strings.Contains(err.Error(), "no-such-game") {
		t.Errorf("Create() error = %v, expected unknown game error", err)
	}
	if Exists("no-such-game") {
		t.Error("Exists() = true for unregistered id")
	}
}

func TestRegisterTwicePanics(t *testing.T) {
	f := func(svc core.Services) Game { return &stubGame{} }
	Register("stub-dup", f)

	defer func() {
		if recover() == nil {
			t.Error("second Register() did not panic")
		}
	}()
	Register("stub-dup", f)
}
