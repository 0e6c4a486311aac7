package entities

import (
	"math/rand"
	"testing"

	"github.com/decker502/pumpkinpatch/pkg/components"
	"github.com/decker502/pumpkinpatch/pkg/config"
	"github.com/decker502/pumpkinpatch/pkg/ecs"
	"github.com/decker502/pumpkinpatch/pkg/field"
)

func TestNewForagerEntity(t *testing.T) {
	cfg := config.DefaultFarmConfig().Foragers
	em := ecs.NewEntityManager()
	rng := rand.New(rand.NewSource(7))

	id := NewForagerEntity(em, cfg, components.SpeciesSquirrel, 12, 1, rng)

	agent, ok := ecs.GetComponent[*components.AgentComponent](em, id)
	if !ok {
		t.Fatal("missing AgentComponent")
	}
	if agent.Kind != components.AgentForager {
		t.Errorf("Kind: got %v, want Forager", agent.Kind)
	}
	if agent.TargetState != field.CellReady {
		t.Errorf("TargetState: got %v, want Ready", agent.TargetState)
	}
	if agent.InteractDuration != cfg.PickDuration {
		t.Errorf("InteractDuration: got %v, want %v", agent.InteractDuration, cfg.PickDuration)
	}

	forager, ok := ecs.GetComponent[*components.ForagerComponent](em, id)
	if !ok {
		t.Fatal("missing ForagerComponent")
	}
	if forager.Species != components.SpeciesSquirrel {
		t.Errorf("Species: got %v", forager.Species)
	}
	if forager.Scares != 0 || forager.MaxScares != cfg.MaxScares {
		t.Errorf("scares: got %d/%d", forager.Scares, forager.MaxScares)
	}
	if forager.IsFull() || forager.IsDrivenOff() {
		t.Error("new forager should be hungry and not driven off")
	}
}

// TestNewForagerEntityInitialDirection 出生在右侧向左飞，出生在左侧向右飞
func TestNewForagerEntityInitialDirection(t *testing.T) {
	cfg := config.DefaultFarmConfig().Foragers
	em := ecs.NewEntityManager()
	rng := rand.New(rand.NewSource(1))

	tests := []struct {
		x        float64
		wantDirX float64
	}{
		{12, -1},
		{-16, 1},
	}

	for _, tt := range tests {
		id := NewForagerEntity(em, cfg, components.SpeciesCrow, tt.x, 0, rng)
		agent, _ := ecs.GetComponent[*components.AgentComponent](em, id)
		if agent.DirX != tt.wantDirX || agent.DirY != 0 {
			t.Errorf("spawn x=%v: got dir (%v, %v), want (%v, 0)", tt.x, agent.DirX, agent.DirY, tt.wantDirX)
		}
	}
}

// TestNewForagerEntitySatiationRange 初始饥饿值落在 [SatiationMin, SatiationMax)
func TestNewForagerEntitySatiationRange(t *testing.T) {
	cfg := config.DefaultFarmConfig().Foragers
	em := ecs.NewEntityManager()
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		id := NewForagerEntity(em, cfg, components.SpeciesCrow, -16, 0, rng)
		forager, _ := ecs.GetComponent[*components.ForagerComponent](em, id)
		if forager.Satiation < cfg.SatiationMin || forager.Satiation >= cfg.SatiationMax {
			t.Fatalf("satiation %v out of [%v, %v)", forager.Satiation, cfg.SatiationMin, cfg.SatiationMax)
		}
	}
}
