package systems

import (
	"log"
	"math/rand"

	"github.com/decker502/pumpkinpatch/pkg/components"
	"github.com/decker502/pumpkinpatch/pkg/ecs"
	"github.com/decker502/pumpkinpatch/pkg/field"
)

// YieldSink 接收工人收获产出的经济系统
// *game.Economy 实现了此接口
type YieldSink interface {
	GrantYield(units int)
}

// AgentSystem 驱动所有代理（工人和觅食者）的共享状态机
//
// 状态机：Idle → Traveling → Interacting → Idle，觅食者额外有 Fleeing。
// 两种代理的差异通过 agentRole 能力集表达（接受条件、交互动作、无目标动作、放弃动作），
// 状态机本身不区分代理种类。
//
// 代理只持有格子下标，每一步都重新校验格子状态；
// 两个代理可能同时选中同一个格子，后到者在校验失败后放弃并重新寻找。
type AgentSystem struct {
	entityManager *ecs.EntityManager
	grid          *field.Grid
	economy       YieldSink
	rng           *rand.Rand
	observer      AgentObserver
}

// NewAgentSystem 创建代理系统
// 参数:
//   - em: EntityManager 实例
//   - grid: 田地网格（目标查询和格子状态修改）
//   - economy: 收获产出的接收方
//   - rng: 随机源（目标选择、延迟抖动、南瓜灯概率）
//   - observer: 表现通知接收方，可为 nil
func NewAgentSystem(em *ecs.EntityManager, grid *field.Grid, economy YieldSink, rng *rand.Rand, observer AgentObserver) *AgentSystem {
	if observer == nil {
		observer = NopObserver{}
	}
	return &AgentSystem{
		entityManager: em,
		grid:          grid,
		economy:       economy,
		rng:           rng,
		observer:      observer,
	}
}

// SetObserver 替换表现通知接收方
func (s *AgentSystem) SetObserver(observer AgentObserver) {
	if observer == nil {
		observer = NopObserver{}
	}
	s.observer = observer
}

// Update 推进所有代理一步（按实体ID升序）
func (s *AgentSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith2[
		*components.AgentComponent,
		*components.PositionComponent,
	](s.entityManager)

	for _, id := range entities {
		agent, ok := ecs.GetComponent[*components.AgentComponent](s.entityManager, id)
		if !ok {
			continue
		}
		pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if !ok {
			continue
		}
		role := s.roleFor(id, agent)
		if role == nil {
			continue
		}

		switch agent.State {
		case components.AgentIdle:
			s.updateIdle(id, agent, pos, role, deltaTime)
		case components.AgentTraveling:
			s.updateTraveling(id, agent, pos, role, deltaTime)
		case components.AgentInteracting:
			s.updateInteracting(id, agent, role, deltaTime)
		case components.AgentFleeing:
			s.move(pos, agent.DirX, agent.DirY, agent.Speed*deltaTime)
		}
	}
}

// roleFor 根据实体携带的组件构造能力集
func (s *AgentSystem) roleFor(id ecs.EntityID, agent *components.AgentComponent) agentRole {
	switch agent.Kind {
	case components.AgentWorker:
		if worker, ok := ecs.GetComponent[*components.WorkerComponent](s.entityManager, id); ok {
			return &workerRole{sys: s, worker: worker}
		}
	case components.AgentForager:
		if forager, ok := ecs.GetComponent[*components.ForagerComponent](s.entityManager, id); ok {
			return &foragerRole{sys: s, forager: forager}
		}
	}
	return nil
}

// updateIdle 空闲：沿当前方向移动，等待重新寻找目标的延迟到期
func (s *AgentSystem) updateIdle(id ecs.EntityID, agent *components.AgentComponent, pos *components.PositionComponent, role agentRole, dt float64) {
	if role.mustLeave() {
		s.flee(id, agent)
		return
	}

	role.idleMove(agent, pos, dt)

	agent.RetargetDelay -= dt
	if agent.RetargetDelay > 0 {
		return
	}

	target, found := role.seek(agent)
	if !found {
		role.onNoTarget(id, agent, pos)
		return
	}

	cell, _ := s.grid.Cell(target)
	agent.Target = target
	agent.State = components.AgentTraveling
	s.setDirection(id, agent, cell.X-pos.X, cell.Y-pos.Y)
	s.observer.OnCue(id, CueMoving)
}

// updateTraveling 前往目标：每一步重新校验，到达后开始交互
func (s *AgentSystem) updateTraveling(id ecs.EntityID, agent *components.AgentComponent, pos *components.PositionComponent, role agentRole, dt float64) {
	cell, ok := s.grid.Cell(agent.Target)
	if !ok || !role.accepts(agent, cell) {
		role.onAbort(id, agent)
		return
	}

	dist := pos.DistanceTo(cell.X, cell.Y)
	if dist > agent.ArriveDistance {
		// 步长限制在剩余距离内，避免越过目标来回振荡
		step := agent.Speed * dt
		if step >= dist {
			pos.X, pos.Y = cell.X, cell.Y
		} else {
			s.move(pos, agent.DirX, agent.DirY, step)
		}
		dist = pos.DistanceTo(cell.X, cell.Y)
	}

	if dist <= agent.ArriveDistance {
		agent.State = components.AgentInteracting
		agent.InteractionTimer = agent.InteractDuration
		agent.DirX, agent.DirY = 0, 0
		s.observer.OnCue(id, role.arriveCue())
	}
}

// updateInteracting 计时交互：计时结束时执行角色的交互动作
func (s *AgentSystem) updateInteracting(id ecs.EntityID, agent *components.AgentComponent, role agentRole, dt float64) {
	cell, ok := s.grid.Cell(agent.Target)
	if !ok || !role.accepts(agent, cell) {
		role.onAbort(id, agent)
		return
	}

	agent.InteractionTimer -= dt
	if agent.InteractionTimer > 0 {
		return
	}

	role.interact(id, agent, cell)
}

// Scare 驱赶一个觅食者（玩家点击）
//
// 每次点击计数一次；达到 MaxScares 时觅食者立即放弃目标，
// 调转方向并逃离场地，不再吃掉目标作物。
// 返回 false 表示该实体不是可驱赶的觅食者（不存在、不是觅食者或已在逃离）。
func (s *AgentSystem) Scare(id ecs.EntityID) bool {
	agent, ok := ecs.GetComponent[*components.AgentComponent](s.entityManager, id)
	if !ok || agent.State == components.AgentFleeing {
		return false
	}
	forager, ok := ecs.GetComponent[*components.ForagerComponent](s.entityManager, id)
	if !ok {
		return false
	}

	forager.Scares++
	s.observer.OnCue(id, CueScared)

	if forager.IsDrivenOff() {
		// 调头逃离
		agent.FlipX = !agent.FlipX
		s.flee(id, agent)
		log.Printf("[AgentSystem] %s %d driven off after %d scares", forager.Species, id, forager.Scares)
	}
	return true
}

// ForagerAt 返回 (x, y) 驱赶半径内最近的、尚未逃离的觅食者
func (s *AgentSystem) ForagerAt(x, y float64) (ecs.EntityID, bool) {
	entities := ecs.GetEntitiesWith3[
		*components.ForagerComponent,
		*components.AgentComponent,
		*components.PositionComponent,
	](s.entityManager)

	var (
		best     ecs.EntityID
		bestDist float64
		found    bool
	)
	for _, id := range entities {
		forager, _ := ecs.GetComponent[*components.ForagerComponent](s.entityManager, id)
		agent, _ := ecs.GetComponent[*components.AgentComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if agent.State == components.AgentFleeing {
			continue
		}
		d := pos.DistanceTo(x, y)
		if d > forager.ScareRadius {
			continue
		}
		if !found || d < bestDist {
			best, bestDist, found = id, d, true
		}
	}
	return best, found
}

// flee 丢弃目标，沿当前朝向水平逃离
func (s *AgentSystem) flee(id ecs.EntityID, agent *components.AgentComponent) {
	sign := agent.FacingSign()
	agent.ClearTarget()
	agent.State = components.AgentFleeing
	s.setDirection(id, agent, sign, 0)
	s.observer.OnCue(id, CueTakeOff)
}

// setDirection 设置方向并发出朝向通知
func (s *AgentSystem) setDirection(id ecs.EntityID, agent *components.AgentComponent, dx, dy float64) {
	agent.SetDirection(dx, dy)
	if agent.DirX != 0 {
		s.observer.OnFacing(id, agent.FlipX)
	}
}

func (s *AgentSystem) move(pos *components.PositionComponent, dirX, dirY, distance float64) {
	pos.X += dirX * distance
	pos.Y += dirY * distance
}
