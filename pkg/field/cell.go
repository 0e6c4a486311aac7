// Package field 实现南瓜田的格子与网格
//
// Grid 是所有 Cell 的唯一所有者。代理只持有 CellID（网格内下标），
// 每次使用前重新校验格子状态，而不是长期持有 *Cell。
package field

import (
	"errors"
	"fmt"
	"math/rand"
)

// 收获产出（基础单位，由经济系统乘以单位价值）
const (
	NormalYieldUnits  = 1
	SpecialYieldUnits = 5
)

// ErrInvalidTransition 表示在不允许的状态下调用了状态机操作
// 调用方遵守契约时不会出现，出现时状态保持不变
var ErrInvalidTransition = errors.New("invalid cell transition")

// CellState 格子的生长状态
type CellState int

const (
	// CellEmpty 空地，可以种植
	CellEmpty CellState = iota
	// CellGrowing 作物生长中
	CellGrowing
	// CellReady 作物成熟，可收获
	CellReady
	// CellWithered 成熟后长期未收获，已枯萎
	CellWithered
)

// String 返回状态名称（用于日志）
func (s CellState) String() string {
	switch s {
	case CellEmpty:
		return "Empty"
	case CellGrowing:
		return "Growing"
	case CellReady:
		return "Ready"
	case CellWithered:
		return "Withered"
	default:
		return fmt.Sprintf("CellState(%d)", int(s))
	}
}

// CellID 格子在网格中的下标
type CellID int

// NoCell 表示没有目标格子
const NoCell CellID = -1

// Cell 一个可种植的格子
//
// 状态机: Empty → Growing → Ready → Withered，Ready|Withered → Empty
type Cell struct {
	ID  CellID
	Row int
	X   float64
	Y   float64

	state           CellState
	growthRemaining float64 // 距离成熟的剩余时间（秒），仅 Growing 时非零
	ripeTime        float64 // 已成熟的时间（秒），仅 Ready 时累计
	special         bool    // 是否为南瓜灯（种植时决定）
	unlocked        bool
}

// State 返回当前状态
func (c *Cell) State() CellState { return c.state }

// GrowthRemaining 返回剩余生长时间
func (c *Cell) GrowthRemaining() float64 { return c.growthRemaining }

// IsSpecial 是否为南瓜灯
// 只有在 Ready 或 Withered 状态下才有意义
func (c *Cell) IsSpecial() bool { return c.special }

// IsUnlocked 是否已解锁
func (c *Cell) IsUnlocked() bool { return c.unlocked }

// Plant 在空地上种植作物
//
// 参数:
//   - specialChance: 长出南瓜灯的概率 [0, 1]
//   - rng: 随机数源
//   - duration: 生长所需时间（秒）
//
// 返回:
//   - error: 非 Empty 状态时返回 ErrInvalidTransition，状态不变
func (c *Cell) Plant(specialChance float64, rng *rand.Rand, duration float64) error {
	if c.state != CellEmpty {
		return fmt.Errorf("plant cell %d in state %s: %w", c.ID, c.state, ErrInvalidTransition)
	}

	c.state = CellGrowing
	c.special = rng.Float64() < specialChance
	c.growthRemaining = duration
	c.ripeTime = 0
	return nil
}

// AdvanceGrowth 推进生长
// 只在 Growing 状态下生效，剩余时间归零时转为 Ready
func (c *Cell) AdvanceGrowth(elapsed float64) {
	if c.state != CellGrowing {
		return
	}

	c.growthRemaining -= elapsed
	if c.growthRemaining <= 0 {
		c.growthRemaining = 0
		c.state = CellReady
		c.ripeTime = 0
	}
}

// Expire 推进成熟作物的腐败计时
// 只在 Ready 状态下生效，超过 spoilWindow 转为 Withered
func (c *Cell) Expire(elapsed, spoilWindow float64) {
	if c.state != CellReady {
		return
	}

	c.ripeTime += elapsed
	if c.ripeTime >= spoilWindow {
		c.state = CellWithered
	}
}

// Harvest 收获或清除作物，格子回到 Empty
//
// 参数:
//   - collectYield: false 表示"只销毁不给奖励"（如觅食者、清理枯萎作物）
//
// 返回:
//   - units: 应计入经济系统的基础单位数；只有在 Ready 状态且 collectYield 为 true 时非零
//   - error: Empty/Growing 状态下返回 ErrInvalidTransition，状态不变
func (c *Cell) Harvest(collectYield bool) (int, error) {
	if c.state != CellReady && c.state != CellWithered {
		return 0, fmt.Errorf("harvest cell %d in state %s: %w", c.ID, c.state, ErrInvalidTransition)
	}

	units := 0
	if c.state == CellReady && collectYield {
		units = NormalYieldUnits
		if c.special {
			units = SpecialYieldUnits
		}
	}

	c.state = CellEmpty
	c.growthRemaining = 0
	c.ripeTime = 0
	c.special = false
	return units, nil
}

// ScaleGrowth 按比例缩放剩余生长时间
// 只影响 Growing 状态的格子
func (c *Cell) ScaleGrowth(factor float64) {
	if c.state != CellGrowing {
		return
	}
	c.growthRemaining *= factor
}

// Unlock 解锁格子（幂等，不可逆）
func (c *Cell) Unlock() {
	c.unlocked = true
}
