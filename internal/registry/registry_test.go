package registry

import (
	"strings"
	"testing"

	"github.com/vovakirdan/gridmaze/internal/core"
)

type stubGame struct {
	id    string
	state core.GameState
}

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return strings.ToUpper(g.id) }
func (g *stubGame) Reset(core.RuntimeConfig)             { g.state = core.GameState{} }
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{State: g.state} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return g.state }

type describedGame struct{ stubGame }

func (g *describedGame) Description() string { return "has a description" }

func TestRegisterAndCreate(t *testing.T) {
	Register("stub_b", func() Game { return &stubGame{id: "stub_b"} })
	Register("stub_a", func() Game { return &describedGame{stubGame{id: "stub_a"}} })
	t.Cleanup(func() {
		unregister("stub_a")
		unregister("stub_b")
	})

	if !Exists("stub_a") {
		t.Fatal("stub_a should exist")
	}

	g, err := Create("stub_b")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if g.ID() != "stub_b" {
		t.Errorf("ID() = %q, expected stub_b", g.ID())
	}

	info, ok := Lookup("stub_a")
	if !ok {
		t.Fatal("Lookup(stub_a) not found")
	}
	if info.Title != "STUB_A" || info.Description != "has a description" {
		t.Errorf("Lookup(stub_a) = %+v", info)
	}

	var ids []string
	for _, gi := range List() {
		if strings.HasPrefix(gi.ID, "stub_") {
			ids = append(ids, gi.ID)
		}
	}
	if len(ids) != 2 || ids[0] != "stub_a" || ids[1] != "stub_b" {
		t.Errorf("List() stub ids = %v, expected sorted [stub_a stub_b]", ids)
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("missing"); err == nil {
		t.Error("Create(missing) should fail")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub_dup", func() Game { return &stubGame{id: "stub_dup"} })
	t.Cleanup(func() { unregister("stub_dup") })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("stub_dup", func() Game { return &stubGame{id: "stub_dup"} })
}
