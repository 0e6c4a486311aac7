package sim

import (
	"github.com/decker502/pumpkinpatch/pkg/components"
	"github.com/decker502/pumpkinpatch/pkg/ecs"
)

// AgentView 单个代理的显示数据
type AgentView struct {
	ID      ecs.EntityID
	Kind    components.AgentKind
	Role    components.WorkerRole     // 仅工人有效
	Species components.ForagerSpecies // 仅觅食者有效
	State   components.AgentState
	X, Y    float64
	FlipX   bool
	Scares  int // 仅觅食者有效
}

// Agents 返回所有代理的显示快照（按实体ID升序）
func (s *Simulation) Agents() []AgentView {
	ids := ecs.GetEntitiesWith2[
		*components.AgentComponent,
		*components.PositionComponent,
	](s.entityManager)

	views := make([]AgentView, 0, len(ids))
	for _, id := range ids {
		agent, _ := ecs.GetComponent[*components.AgentComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		v := AgentView{
			ID:    id,
			Kind:  agent.Kind,
			State: agent.State,
			X:     pos.X,
			Y:     pos.Y,
			FlipX: agent.FacingLeft(),
		}
		if worker, ok := ecs.GetComponent[*components.WorkerComponent](s.entityManager, id); ok {
			v.Role = worker.Role
		}
		if forager, ok := ecs.GetComponent[*components.ForagerComponent](s.entityManager, id); ok {
			v.Species = forager.Species
			v.Scares = forager.Scares
		}
		views = append(views, v)
	}
	return views
}

// CountWorkers 返回指定角色的工人数量
func (s *Simulation) CountWorkers(role components.WorkerRole) int {
	n := 0
	for _, id := range ecs.GetEntitiesWith1[*components.WorkerComponent](s.entityManager) {
		if worker, _ := ecs.GetComponent[*components.WorkerComponent](s.entityManager, id); worker.Role == role {
			n++
		}
	}
	return n
}

// CountForagers 返回场上觅食者数量
func (s *Simulation) CountForagers() int {
	return len(ecs.GetEntitiesWith1[*components.ForagerComponent](s.entityManager))
}
