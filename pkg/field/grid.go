package field

import (
	"fmt"
	"log"
	"math"
	"math/rand"

	"github.com/decker502/pumpkinpatch/pkg/config"
)

// Grid 南瓜田网格
//
// 持有全部格子，格子集合在构造后不再变化。
// 代理通过查询接口选择目标，通过 Cell 的状态机操作修改格子。
type Grid struct {
	cells       []*Cell
	cellsPerRow int
	rowCount    int

	growDuration  float64 // 新种植作物的基础生长时间（肥料会缩短）
	spoilWindow   float64
	specialChance float64
}

// NewGrid 根据田地配置创建网格
// 格子按行插入：第 r 行占据 [r*cellsPerRow, (r+1)*cellsPerRow)
// 所有格子初始为 Empty，只有 UnlockedRows 中的行被解锁
func NewGrid(cfg config.FieldConfig) *Grid {
	g := &Grid{
		cellsPerRow:   cfg.CellsPerRow(),
		rowCount:      len(cfg.RowXs),
		growDuration:  cfg.GrowDuration,
		spoilWindow:   cfg.SpoilWindow,
		specialChance: cfg.SpecialChance,
	}

	g.cells = make([]*Cell, 0, g.rowCount*g.cellsPerRow)
	for row, x := range cfg.RowXs {
		for _, y := range cfg.CellYs {
			g.cells = append(g.cells, &Cell{
				ID:  CellID(len(g.cells)),
				Row: row,
				X:   x,
				Y:   y,
			})
		}
	}

	for _, row := range cfg.UnlockedRows {
		if err := g.UnlockRow(row); err != nil {
			log.Printf("[Grid] Warning: %v", err)
		}
	}

	log.Printf("[Grid] Created %d cells (%d rows x %d), unlocked rows %v",
		len(g.cells), g.rowCount, g.cellsPerRow, cfg.UnlockedRows)
	return g
}

// Len 返回格子总数（含未解锁）
func (g *Grid) Len() int { return len(g.cells) }

// RowCount 返回行数
func (g *Grid) RowCount() int { return g.rowCount }

// GrowDuration 返回当前新种植作物的生长时间
func (g *Grid) GrowDuration() float64 { return g.growDuration }

// Cell 根据 ID 获取格子
// ID 无效时返回 nil, false
func (g *Grid) Cell(id CellID) (*Cell, bool) {
	if id < 0 || int(id) >= len(g.cells) {
		return nil, false
	}
	return g.cells[id], true
}

// Cells 返回全部格子（只读遍历用，包含未解锁格子）
func (g *Grid) Cells() []*Cell {
	return g.cells
}

// CellsInState 返回所有已解锁且处于指定状态的格子，按插入顺序
func (g *Grid) CellsInState(state CellState) []*Cell {
	result := make([]*Cell, 0)
	for _, c := range g.cells {
		if c.unlocked && c.state == state {
			result = append(result, c)
		}
	}
	return result
}

// RandomCellInState 在当前匹配集合中均匀随机选择一个格子
//
// 返回:
//   - CellID: 选中的格子
//   - bool: 没有匹配格子时返回 false
func (g *Grid) RandomCellInState(state CellState, rng *rand.Rand) (CellID, bool) {
	matches := g.CellsInState(state)
	if len(matches) == 0 {
		return NoCell, false
	}
	return matches[rng.Intn(len(matches))].ID, true
}

// UnlockRow 解锁指定行的全部格子
// 已解锁时为空操作
func (g *Grid) UnlockRow(row int) error {
	if row < 0 || row >= g.rowCount {
		return fmt.Errorf("invalid row %d (valid range: 0-%d)", row, g.rowCount-1)
	}

	start := row * g.cellsPerRow
	for i := start; i < start+g.cellsPerRow; i++ {
		g.cells[i].Unlock()
	}
	return nil
}

// IsRowUnlocked 检查指定行是否已解锁
func (g *Grid) IsRowUnlocked(row int) bool {
	if row < 0 || row >= g.rowCount {
		return false
	}
	return g.cells[row*g.cellsPerRow].unlocked
}

// TickGrowth 推进所有格子的生长与腐败
func (g *Grid) TickGrowth(elapsed float64) {
	for _, c := range g.cells {
		switch c.state {
		case CellGrowing:
			c.AdvanceGrowth(elapsed)
		case CellReady:
			c.Expire(elapsed, g.spoilWindow)
		}
	}
}

// PlantCell 在指定格子上按当前生长时间和南瓜灯概率种植
func (g *Grid) PlantCell(id CellID, rng *rand.Rand) error {
	c, ok := g.Cell(id)
	if !ok {
		return fmt.Errorf("plant: unknown cell %d", id)
	}
	return c.Plant(g.specialChance, rng, g.growDuration)
}

// ReduceGrowTime 缩短生长时间（肥料效果）
// 同时缩短未来种植的基础时间和所有正在生长格子的剩余时间
func (g *Grid) ReduceGrowTime(factor float64) {
	g.growDuration *= factor
	growing := 0
	for _, c := range g.cells {
		if c.state == CellGrowing {
			c.ScaleGrowth(factor)
			growing++
		}
	}
	log.Printf("[Grid] Grow time reduced by factor %.2f: base=%.2fs, %d growing cells rescaled",
		factor, g.growDuration, growing)
}

// CellAt 返回包含世界坐标 (x, y) 的已解锁格子（用于点击检测）
// 每个格子覆盖以其中心为圆心、边长为 1 的正方形
func (g *Grid) CellAt(x, y float64) (CellID, bool) {
	for _, c := range g.cells {
		if !c.unlocked {
			continue
		}
		if math.Abs(c.X-x) < 0.5 && math.Abs(c.Y-y) < 0.5 {
			return c.ID, true
		}
	}
	return NoCell, false
}
