package field

import (
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/decker502/pumpkinpatch/pkg/config"
)

func newTestGrid() *Grid {
	return NewGrid(config.DefaultFarmConfig().Field)
}

func unlockedIDs(g *Grid) []CellID {
	ids := make([]CellID, 0)
	for _, c := range g.Cells() {
		if c.IsUnlocked() {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

func TestNewGridLayout(t *testing.T) {
	g := newTestGrid()

	if g.Len() != 36 {
		t.Fatalf("expected 36 cells, got %d", g.Len())
	}
	if g.RowCount() != 6 {
		t.Fatalf("expected 6 rows, got %d", g.RowCount())
	}

	// 预解锁第 0、1 行，共 12 格
	if got := len(unlockedIDs(g)); got != 12 {
		t.Errorf("expected 12 unlocked cells, got %d", got)
	}
	if !g.IsRowUnlocked(0) || !g.IsRowUnlocked(1) || g.IsRowUnlocked(2) {
		t.Error("unexpected initial row lock state")
	}

	// 第 2 行第 0 格位于 X=-1.5, Y=2.5
	c, ok := g.Cell(12)
	if !ok {
		t.Fatal("cell 12 should exist")
	}
	if c.Row != 2 || c.X != -1.5 || c.Y != 2.5 {
		t.Errorf("cell 12: row=%d pos=(%v,%v)", c.Row, c.X, c.Y)
	}

	for _, cell := range g.Cells() {
		if cell.State() != CellEmpty {
			t.Fatalf("cell %d should start Empty, got %s", cell.ID, cell.State())
		}
	}
}

func TestGridCellLookupOutOfRange(t *testing.T) {
	g := newTestGrid()
	if _, ok := g.Cell(NoCell); ok {
		t.Error("NoCell should not resolve")
	}
	if _, ok := g.Cell(CellID(g.Len())); ok {
		t.Error("out of range id should not resolve")
	}
}

func TestCellsInStateSkipsLockedCells(t *testing.T) {
	g := newTestGrid()

	empty := g.CellsInState(CellEmpty)
	if len(empty) != 12 {
		t.Fatalf("expected 12 unlocked empty cells, got %d", len(empty))
	}
	for i, c := range empty {
		if !c.IsUnlocked() {
			t.Errorf("locked cell %d returned", c.ID)
		}
		if i > 0 && empty[i-1].ID >= c.ID {
			t.Errorf("cells not in insertion order: %d before %d", empty[i-1].ID, c.ID)
		}
	}

	ready := g.CellsInState(CellReady)
	if ready == nil || len(ready) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", ready)
	}

	if _, ok := g.RandomCellInState(CellReady, rand.New(rand.NewSource(1))); ok {
		t.Error("RandomCellInState should report none when no match")
	}
}

func TestUnlockRowIdempotent(t *testing.T) {
	once := newTestGrid()
	twice := newTestGrid()

	if err := once.UnlockRow(3); err != nil {
		t.Fatalf("UnlockRow() error: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := twice.UnlockRow(3); err != nil {
			t.Fatalf("UnlockRow() call %d error: %v", i+1, err)
		}
	}

	if !reflect.DeepEqual(unlockedIDs(once), unlockedIDs(twice)) {
		t.Errorf("unlock sets differ: %v vs %v", unlockedIDs(once), unlockedIDs(twice))
	}
	if len(unlockedIDs(once)) != 18 {
		t.Errorf("expected 18 unlocked cells, got %d", len(unlockedIDs(once)))
	}

	// 再次解锁已解锁的行不会改变任何状态
	if err := once.UnlockRow(0); err != nil {
		t.Fatalf("re-unlocking row 0: %v", err)
	}
	if len(unlockedIDs(once)) != 18 {
		t.Errorf("re-unlocking row 0 changed unlocked set")
	}
}

func TestUnlockRowInvalid(t *testing.T) {
	g := newTestGrid()
	if err := g.UnlockRow(-1); err == nil {
		t.Error("expected error for row -1")
	}
	if err := g.UnlockRow(g.RowCount()); err == nil {
		t.Error("expected error for row past end")
	}
}

// TestRandomCellInStateUniform 统计均匀性：k 个匹配格子被选中的频率大致相等
func TestRandomCellInStateUniform(t *testing.T) {
	g := newTestGrid()
	rng := rand.New(rand.NewSource(42))

	// 让 4 个格子成熟
	targets := []CellID{0, 3, 7, 11}
	for _, id := range targets {
		if err := g.PlantCell(id, rng); err != nil {
			t.Fatalf("PlantCell(%d) error: %v", id, err)
		}
	}
	g.TickGrowth(g.GrowDuration())

	const samples = 40000
	counts := make(map[CellID]int)
	for i := 0; i < samples; i++ {
		id, ok := g.RandomCellInState(CellReady, rng)
		if !ok {
			t.Fatal("expected a Ready cell")
		}
		counts[id]++
	}

	if len(counts) != len(targets) {
		t.Fatalf("expected %d distinct picks, got %v", len(targets), counts)
	}
	expected := float64(samples) / float64(len(targets))
	for _, id := range targets {
		deviation := math.Abs(float64(counts[id])-expected) / expected
		if deviation > 0.05 {
			t.Errorf("cell %d picked %d times, expected ~%.0f (deviation %.1f%%)", id, counts[id], expected, deviation*100)
		}
	}
}

func TestTickGrowthAdvancesAndSpoils(t *testing.T) {
	cfg := config.DefaultFarmConfig().Field
	g := NewGrid(cfg)
	rng := rand.New(rand.NewSource(7))

	if err := g.PlantCell(0, rng); err != nil {
		t.Fatal(err)
	}
	g.TickGrowth(cfg.GrowDuration / 2)
	c, _ := g.Cell(0)
	if c.State() != CellGrowing {
		t.Fatalf("expected Growing mid-way, got %s", c.State())
	}

	g.TickGrowth(cfg.GrowDuration / 2)
	if c.State() != CellReady {
		t.Fatalf("expected Ready, got %s", c.State())
	}

	g.TickGrowth(cfg.SpoilWindow)
	if c.State() != CellWithered {
		t.Fatalf("expected Withered after spoil window, got %s", c.State())
	}
}

// TestReduceGrowTimeProportional 肥料按比例缩短所有生长中格子的剩余时间，不影响空地和成熟格子
func TestReduceGrowTimeProportional(t *testing.T) {
	g := newTestGrid()
	rng := rand.New(rand.NewSource(3))
	base := g.GrowDuration()

	// 格子 0 成熟，格子 1、2 处于不同生长进度，格子 3 为空
	if err := g.PlantCell(0, rng); err != nil {
		t.Fatal(err)
	}
	g.TickGrowth(base)
	if err := g.PlantCell(1, rng); err != nil {
		t.Fatal(err)
	}
	g.TickGrowth(base / 4)
	if err := g.PlantCell(2, rng); err != nil {
		t.Fatal(err)
	}

	c0, _ := g.Cell(0)
	c1, _ := g.Cell(1)
	c2, _ := g.Cell(2)
	c3, _ := g.Cell(3)
	before1 := c1.GrowthRemaining()
	before2 := c2.GrowthRemaining()

	g.ReduceGrowTime(0.5)

	if c1.GrowthRemaining() != before1*0.5 {
		t.Errorf("cell 1 remaining: got %v, want %v", c1.GrowthRemaining(), before1*0.5)
	}
	if c2.GrowthRemaining() != before2*0.5 {
		t.Errorf("cell 2 remaining: got %v, want %v", c2.GrowthRemaining(), before2*0.5)
	}
	if c1.GrowthRemaining() >= before1 || c2.GrowthRemaining() >= before2 {
		t.Error("remaining time must strictly decrease for growing cells")
	}
	if c0.State() != CellReady || c0.GrowthRemaining() != 0 {
		t.Errorf("ready cell affected: %s %v", c0.State(), c0.GrowthRemaining())
	}
	if c3.State() != CellEmpty || c3.GrowthRemaining() != 0 {
		t.Errorf("empty cell affected: %s %v", c3.State(), c3.GrowthRemaining())
	}
	if g.GrowDuration() != base*0.5 {
		t.Errorf("base duration: got %v, want %v", g.GrowDuration(), base*0.5)
	}

	// 新种植使用缩短后的时长
	if err := g.PlantCell(3, rng); err != nil {
		t.Fatal(err)
	}
	if c3.GrowthRemaining() != base*0.5 {
		t.Errorf("new planting duration: got %v, want %v", c3.GrowthRemaining(), base*0.5)
	}
}

func TestCellAt(t *testing.T) {
	g := newTestGrid()

	id, ok := g.CellAt(-5.4, 2.4)
	if !ok || id != 0 {
		t.Errorf("CellAt(-5.4, 2.4): got (%d, %v), want (0, true)", id, ok)
	}

	// 第 2 行尚未解锁
	if _, ok := g.CellAt(-1.5, 2.5); ok {
		t.Error("locked cell should not be hit")
	}

	if _, ok := g.CellAt(100, 100); ok {
		t.Error("far away point should not hit any cell")
	}
}
