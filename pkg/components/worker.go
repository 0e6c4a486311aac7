package components

// WorkerRole 工人角色
type WorkerRole int

const (
	// RolePlanter 农夫：寻找空地种植
	RolePlanter WorkerRole = iota
	// RoleHarvester 旋耕机：寻找成熟作物收获，也会清理枯萎作物；无事可做时返回墓碑
	RoleHarvester
)

// String 返回角色名称（用于日志）
func (r WorkerRole) String() string {
	if r == RoleHarvester {
		return "Harvester"
	}
	return "Planter"
}

// WorkerComponent 标识实体为工人
// 工人由经济系统生成，在整个会话期间存在
type WorkerComponent struct {
	Role WorkerRole
	// HomeX, HomeY 旋耕机空闲时前往的位置（墓碑）
	HomeX float64
	HomeY float64
	// TargetChangeDelay 交互完成后换目标的基础延迟（秒）
	TargetChangeDelay float64
	// DelayJitter 延迟随机抖动幅度（±秒）
	DelayJitter float64
	// RetryDelay 找不到目标时的重试延迟（秒）
	RetryDelay float64
	// AbandonDelay 目标失效后的重新寻找延迟（秒）
	AbandonDelay float64
}
