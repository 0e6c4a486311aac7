package components

import (
	"math"

	"github.com/decker502/pumpkinpatch/pkg/field"
)

// AgentKind 代理种类
type AgentKind int

const (
	// AgentWorker 工人：为经济系统种植或收获
	AgentWorker AgentKind = iota
	// AgentForager 觅食者：偷吃成熟作物，可以被驱赶
	AgentForager
)

// String 返回代理种类名称（用于日志）
func (k AgentKind) String() string {
	if k == AgentForager {
		return "Forager"
	}
	return "Worker"
}

// AgentState 代理状态机状态
//
// Idle → Traveling → Interacting → Idle
// 觅食者额外拥有 Fleeing（逃离，直到离开边界被移除）
type AgentState int

const (
	// AgentIdle 没有目标，等待 RetargetDelay 到期后寻找目标
	AgentIdle AgentState = iota
	// AgentTraveling 正在前往目标格子
	AgentTraveling
	// AgentInteracting 在目标格子上执行计时交互
	AgentInteracting
	// AgentFleeing 逃离场地（仅觅食者）
	AgentFleeing
)

// String 返回状态名称（用于日志）
func (s AgentState) String() string {
	switch s {
	case AgentIdle:
		return "Idle"
	case AgentTraveling:
		return "Traveling"
	case AgentInteracting:
		return "Interacting"
	case AgentFleeing:
		return "Fleeing"
	default:
		return "Unknown"
	}
}

// AgentComponent 工人和觅食者共享的目标寻找/移动/交互状态
//
// Target 是网格内的格子下标，不持有格子本身；
// 每一步都会重新校验格子状态，状态不再匹配时目标被丢弃。
type AgentComponent struct {
	Kind  AgentKind
	State AgentState

	// TargetState 代理要寻找的格子状态
	TargetState field.CellState
	// Target 当前目标格子，field.NoCell 表示没有目标
	Target field.CellID

	// DirX, DirY 移动方向（单位向量或零向量）
	DirX float64
	DirY float64
	// FlipX 最近一次非零水平方向是否朝左，停下时保持不变
	FlipX bool

	// InteractionTimer 交互剩余时间（秒）
	InteractionTimer float64
	// RetargetDelay 距离下一次寻找目标的时间（秒）
	RetargetDelay float64

	Speed            float64 // 移动速度（世界单位/秒）
	InteractDuration float64 // 一次交互耗时（秒）
	ArriveDistance   float64 // 到达判定距离
}

// HasTarget 是否持有目标
func (a *AgentComponent) HasTarget() bool {
	return a.Target != field.NoCell
}

// ClearTarget 丢弃目标并停止移动
func (a *AgentComponent) ClearTarget() {
	a.Target = field.NoCell
	a.DirX, a.DirY = 0, 0
	a.InteractionTimer = 0
}

// SetDirection 设置归一化的移动方向
// 零向量表示停止；水平分量非零时同步更新朝向
func (a *AgentComponent) SetDirection(dx, dy float64) {
	length := math.Hypot(dx, dy)
	if length == 0 {
		a.DirX, a.DirY = 0, 0
		return
	}
	a.DirX, a.DirY = dx/length, dy/length
	if a.DirX != 0 {
		a.FlipX = a.DirX < 0
	}
}

// FacingLeft 是否朝左（用于精灵翻转）
func (a *AgentComponent) FacingLeft() bool {
	return a.FlipX
}

// FacingSign 朝向对应的水平方向：朝左 -1，朝右 1
func (a *AgentComponent) FacingSign() float64 {
	if a.FlipX {
		return -1
	}
	return 1
}
