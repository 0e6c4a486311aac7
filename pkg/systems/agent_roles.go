package systems

import (
	"log"

	"github.com/decker502/pumpkinpatch/pkg/components"
	"github.com/decker502/pumpkinpatch/pkg/ecs"
	"github.com/decker502/pumpkinpatch/pkg/field"
)

// agentRole 代理角色的能力集
// 共享状态机在固定的节点调用这些方法，角色只决定"做什么"
type agentRole interface {
	// mustLeave 空闲时是否必须离开场地（觅食者吃饱）
	mustLeave() bool
	// idleMove 空闲状态下的移动
	idleMove(agent *components.AgentComponent, pos *components.PositionComponent, dt float64)
	// seek 选择新目标
	seek(agent *components.AgentComponent) (field.CellID, bool)
	// onNoTarget 没有可用目标时的动作
	onNoTarget(id ecs.EntityID, agent *components.AgentComponent, pos *components.PositionComponent)
	// accepts 目标格子是否仍然有效
	accepts(agent *components.AgentComponent, cell *field.Cell) bool
	// arriveCue 到达目标时发出的提示
	arriveCue() AgentCue
	// interact 交互计时结束时的动作
	interact(id ecs.EntityID, agent *components.AgentComponent, cell *field.Cell)
	// onAbort 目标失效时的动作
	onAbort(id ecs.EntityID, agent *components.AgentComponent)
}

// workerRole 工人：种植空地，收获成熟作物，清理枯萎作物
type workerRole struct {
	sys    *AgentSystem
	worker *components.WorkerComponent
}

func (r *workerRole) mustLeave() bool { return false }

// idleMove 旋耕机空闲时走向墓碑，到达后停下
func (r *workerRole) idleMove(agent *components.AgentComponent, pos *components.PositionComponent, dt float64) {
	if agent.DirX == 0 && agent.DirY == 0 {
		return
	}
	step := agent.Speed * dt
	if r.worker.Role == components.RoleHarvester {
		if remaining := pos.DistanceTo(r.worker.HomeX, r.worker.HomeY); remaining <= step {
			pos.X, pos.Y = r.worker.HomeX, r.worker.HomeY
			agent.DirX, agent.DirY = 0, 0
			return
		}
	}
	r.sys.move(pos, agent.DirX, agent.DirY, step)
}

// seek 按目标状态随机选择格子；寻找成熟作物的工人在没有成熟作物时退而清理枯萎作物
func (r *workerRole) seek(agent *components.AgentComponent) (field.CellID, bool) {
	id, ok := r.sys.grid.RandomCellInState(agent.TargetState, r.sys.rng)
	if !ok && agent.TargetState == field.CellReady {
		id, ok = r.sys.grid.RandomCellInState(field.CellWithered, r.sys.rng)
	}
	return id, ok
}

func (r *workerRole) onNoTarget(id ecs.EntityID, agent *components.AgentComponent, pos *components.PositionComponent) {
	agent.RetargetDelay = r.worker.RetryDelay
	if r.worker.Role == components.RoleHarvester && pos.DistanceTo(r.worker.HomeX, r.worker.HomeY) > agent.ArriveDistance {
		r.sys.setDirection(id, agent, r.worker.HomeX-pos.X, r.worker.HomeY-pos.Y)
	}
	r.sys.observer.OnCue(id, CueIdle)
}

func (r *workerRole) accepts(agent *components.AgentComponent, cell *field.Cell) bool {
	state := cell.State()
	if state == agent.TargetState {
		return true
	}
	return agent.TargetState == field.CellReady && state == field.CellWithered
}

func (r *workerRole) arriveCue() AgentCue { return CueInteracting }

// interact 根据格子当前状态种植、收获或清理
func (r *workerRole) interact(id ecs.EntityID, agent *components.AgentComponent, cell *field.Cell) {
	switch cell.State() {
	case field.CellEmpty:
		if err := r.sys.grid.PlantCell(cell.ID, r.sys.rng); err != nil {
			log.Printf("[AgentSystem] Warning: worker %d plant failed: %v", id, err)
		}
	case field.CellReady:
		units, err := cell.Harvest(true)
		if err != nil {
			log.Printf("[AgentSystem] Warning: worker %d harvest failed: %v", id, err)
			break
		}
		if r.sys.economy != nil {
			r.sys.economy.GrantYield(units)
		}
	case field.CellWithered:
		if _, err := cell.Harvest(false); err != nil {
			log.Printf("[AgentSystem] Warning: worker %d clear failed: %v", id, err)
		}
	}

	agent.ClearTarget()
	agent.State = components.AgentIdle
	jitter := (r.sys.rng.Float64()*2 - 1) * r.worker.DelayJitter
	agent.RetargetDelay = r.worker.TargetChangeDelay + jitter
	r.sys.observer.OnCue(id, CueIdle)
}

func (r *workerRole) onAbort(id ecs.EntityID, agent *components.AgentComponent) {
	agent.ClearTarget()
	agent.State = components.AgentIdle
	agent.RetargetDelay = r.worker.AbandonDelay
	r.sys.observer.OnCue(id, CueIdle)
}

// foragerRole 觅食者：只吃成熟作物，不产生收益，吃饱或被驱赶后离开
type foragerRole struct {
	sys     *AgentSystem
	forager *components.ForagerComponent
}

func (r *foragerRole) mustLeave() bool { return r.forager.IsFull() }

func (r *foragerRole) idleMove(agent *components.AgentComponent, pos *components.PositionComponent, dt float64) {
	r.sys.move(pos, agent.DirX, agent.DirY, agent.Speed*dt)
}

func (r *foragerRole) seek(agent *components.AgentComponent) (field.CellID, bool) {
	return r.sys.grid.RandomCellInState(agent.TargetState, r.sys.rng)
}

// onNoTarget 没有成熟作物时沿朝向水平飞行，稍后再找
func (r *foragerRole) onNoTarget(id ecs.EntityID, agent *components.AgentComponent, pos *components.PositionComponent) {
	agent.RetargetDelay = r.forager.RetargetDelay
	if agent.DirY != 0 || agent.DirX == 0 {
		r.sys.setDirection(id, agent, agent.FacingSign(), 0)
	}
}

func (r *foragerRole) accepts(agent *components.AgentComponent, cell *field.Cell) bool {
	return cell.State() == agent.TargetState
}

func (r *foragerRole) arriveCue() AgentCue { return CueLanding }

// interact 吃掉作物（不计收益），按作物种类减少饥饿值
func (r *foragerRole) interact(id ecs.EntityID, agent *components.AgentComponent, cell *field.Cell) {
	special := cell.IsSpecial()
	if _, err := cell.Harvest(false); err != nil {
		log.Printf("[AgentSystem] Warning: forager %d pick failed: %v", id, err)
	} else if special {
		r.forager.Satiation -= r.forager.SpecialBite
	} else {
		r.forager.Satiation -= r.forager.NormalBite
	}

	r.takeOff(id, agent)
	agent.RetargetDelay = 0
}

// onAbort 目标被别的代理处理掉：起飞，稍后重新寻找
func (r *foragerRole) onAbort(id ecs.EntityID, agent *components.AgentComponent) {
	r.takeOff(id, agent)
	agent.RetargetDelay = r.forager.RetargetDelay
}

func (r *foragerRole) takeOff(id ecs.EntityID, agent *components.AgentComponent) {
	wasLanded := agent.State == components.AgentInteracting
	agent.ClearTarget()
	agent.State = components.AgentIdle
	r.sys.setDirection(id, agent, agent.FacingSign(), 0)
	if wasLanded {
		r.sys.observer.OnCue(id, CueTakeOff)
	}
}
