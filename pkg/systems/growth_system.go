package systems

import "github.com/decker502/pumpkinpatch/pkg/field"

// GrowthSystem 推进田地中所有作物的生长和腐坏
type GrowthSystem struct {
	grid *field.Grid
}

// NewGrowthSystem 创建生长系统
func NewGrowthSystem(grid *field.Grid) *GrowthSystem {
	return &GrowthSystem{grid: grid}
}

// Update 推进生长计时（Growing → Ready → Withered）
func (s *GrowthSystem) Update(deltaTime float64) {
	s.grid.TickGrowth(deltaTime)
}
