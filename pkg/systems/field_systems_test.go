package systems

import (
	"math/rand"
	"testing"

	"github.com/decker502/pumpkinpatch/pkg/components"
	"github.com/decker502/pumpkinpatch/pkg/config"
	"github.com/decker502/pumpkinpatch/pkg/ecs"
	"github.com/decker502/pumpkinpatch/pkg/entities"
	"github.com/decker502/pumpkinpatch/pkg/field"
)

func TestGrowthSystemTicksGrid(t *testing.T) {
	cfg := config.DefaultFarmConfig()
	grid := field.NewGrid(cfg.Field)
	rng := rand.New(rand.NewSource(3))
	if err := grid.PlantCell(0, rng); err != nil {
		t.Fatalf("PlantCell() error: %v", err)
	}

	sys := NewGrowthSystem(grid)
	sys.Update(cfg.Field.GrowDuration)

	cell, _ := grid.Cell(0)
	if cell.State() != field.CellReady {
		t.Errorf("state: got %v, want Ready", cell.State())
	}
}

type countingIncome struct {
	elapsed float64
	calls   int
}

func (c *countingIncome) Tick(elapsed float64) {
	c.elapsed += elapsed
	c.calls++
}

func TestEconomySystemForwardsTick(t *testing.T) {
	income := &countingIncome{}
	sys := NewEconomySystem(income)
	sys.Update(0.5)
	sys.Update(0.25)

	if income.calls != 2 || income.elapsed != 0.75 {
		t.Errorf("got %d calls / %v elapsed, want 2 / 0.75", income.calls, income.elapsed)
	}
}

// TestForagerSpawnSystemInterval 每满一个间隔生成一只觅食者
func TestForagerSpawnSystemInterval(t *testing.T) {
	cfg := config.DefaultFarmConfig().Foragers
	em := ecs.NewEntityManager()
	sys := NewForagerSpawnSystem(em, cfg, rand.New(rand.NewSource(5)))

	count := func() int {
		return len(ecs.GetEntitiesWith1[*components.ForagerComponent](em))
	}

	sys.Update(10)
	if count() != 0 {
		t.Fatalf("no forager before interval, got %d", count())
	}
	sys.Update(10)
	if count() != 1 {
		t.Fatalf("one forager after 20s, got %d", count())
	}
	sys.Update(45)
	if count() != 3 {
		t.Fatalf("three foragers after 65s, got %d", count())
	}

	for _, id := range ecs.GetEntitiesWith2[*components.ForagerComponent, *components.PositionComponent](em) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		if pos.X != cfg.SpawnXs[0] && pos.X != cfg.SpawnXs[1] {
			t.Errorf("forager %d spawned at x=%v, not a spawn point", id, pos.X)
		}
		if pos.Y < cfg.SpawnYMin || pos.Y >= cfg.SpawnYMax {
			t.Errorf("forager %d spawned at y=%v, out of range", id, pos.Y)
		}
	}
}

func TestForagerSpawnSystemDisabled(t *testing.T) {
	cfg := config.DefaultFarmConfig().Foragers
	cfg.SpawnInterval = 0
	em := ecs.NewEntityManager()
	sys := NewForagerSpawnSystem(em, cfg, rand.New(rand.NewSource(5)))

	if sys.IsEnabled() {
		t.Fatal("zero interval should disable spawning")
	}
	sys.Update(1000)
	if em.Count() != 0 {
		t.Errorf("no entity expected, got %d", em.Count())
	}

	// 手动生成不受开关影响
	sys.Spawn()
	if em.Count() != 1 {
		t.Errorf("Spawn() should create one forager, got %d", em.Count())
	}
}

func TestForagerSpawnSystemToggle(t *testing.T) {
	cfg := config.DefaultFarmConfig().Foragers
	em := ecs.NewEntityManager()
	sys := NewForagerSpawnSystem(em, cfg, rand.New(rand.NewSource(5)))

	sys.Disable()
	sys.Update(cfg.SpawnInterval)
	if em.Count() != 0 {
		t.Fatalf("disabled system spawned %d", em.Count())
	}
	sys.Enable()
	sys.Update(cfg.SpawnInterval)
	if em.Count() != 1 {
		t.Errorf("enabled system should spawn one, got %d", em.Count())
	}
}

// TestBoundsSystemRemovesForagers 只移除越界的觅食者，工人不受影响
func TestBoundsSystemRemovesForagers(t *testing.T) {
	cfg := config.DefaultFarmConfig()
	em := ecs.NewEntityManager()
	rng := rand.New(rand.NewSource(9))

	inside := entities.NewForagerEntity(em, cfg.Foragers, components.SpeciesCrow, 0, 0, rng)
	right := entities.NewForagerEntity(em, cfg.Foragers, components.SpeciesCrow, 31, 0, rng)
	left := entities.NewForagerEntity(em, cfg.Foragers, components.SpeciesSquirrel, -51, 0, rng)
	worker := entities.NewWorkerEntity(em, components.RoleHarvester, cfg.Workers, 100, 0)

	sys := NewBoundsSystem(em, cfg.Foragers.BoundsMinX, cfg.Foragers.BoundsMaxX)
	sys.Update(0.1)

	// 标记删除不会立即生效
	if !em.IsAlive(right) {
		t.Fatal("destruction should be deferred")
	}
	if removed := em.RemoveMarkedEntities(); removed != 2 {
		t.Errorf("removed: got %d, want 2", removed)
	}

	tests := []struct {
		name  string
		id    ecs.EntityID
		alive bool
	}{
		{"inside", inside, true},
		{"beyond right bound", right, false},
		{"beyond left bound", left, false},
		{"worker", worker, true},
	}
	for _, tt := range tests {
		if em.IsAlive(tt.id) != tt.alive {
			t.Errorf("%s: alive %v, want %v", tt.name, em.IsAlive(tt.id), tt.alive)
		}
	}
}
