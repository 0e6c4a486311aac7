package components

import "math"

// PositionComponent 实体在世界坐标中的位置（世界单位，Y 轴向上）
type PositionComponent struct {
	X float64
	Y float64
}

// DistanceTo 返回到 (x, y) 的欧氏距离
func (p *PositionComponent) DistanceTo(x, y float64) float64 {
	return math.Hypot(x-p.X, y-p.Y)
}
