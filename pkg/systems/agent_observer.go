package systems

import "github.com/decker502/pumpkinpatch/pkg/ecs"

// AgentCue 代理状态切换时发出的表现提示（动画/音效由前端决定）
type AgentCue int

const (
	CueIdle AgentCue = iota
	CueMoving
	CueInteracting
	CueTakeOff // 觅食者起飞
	CueLanding // 觅食者降落
	CueScared  // 觅食者被驱赶（一次点击）
)

// String 返回提示名称（用于日志）
func (c AgentCue) String() string {
	switch c {
	case CueIdle:
		return "Idle"
	case CueMoving:
		return "Moving"
	case CueInteracting:
		return "Interacting"
	case CueTakeOff:
		return "TakeOff"
	case CueLanding:
		return "Landing"
	case CueScared:
		return "Scared"
	default:
		return "Unknown"
	}
}

// AgentObserver 接收代理发出的表现通知
// 模拟核心只发出通知，不关心接收方如何处理
type AgentObserver interface {
	OnCue(id ecs.EntityID, cue AgentCue)
	OnFacing(id ecs.EntityID, flipX bool)
}

// NopObserver 丢弃所有通知（无头模式和测试使用）
type NopObserver struct{}

func (NopObserver) OnCue(ecs.EntityID, AgentCue) {}
func (NopObserver) OnFacing(ecs.EntityID, bool)  {}
