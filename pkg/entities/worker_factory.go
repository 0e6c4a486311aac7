package entities

import (
	"log"

	"github.com/decker502/pumpkinpatch/pkg/components"
	"github.com/decker502/pumpkinpatch/pkg/config"
	"github.com/decker502/pumpkinpatch/pkg/ecs"
	"github.com/decker502/pumpkinpatch/pkg/field"
)

// NewWorkerEntity 创建一个工人实体
// 参数:
//   - em: EntityManager 实例
//   - role: 工人角色（农夫寻找空地，旋耕机寻找成熟作物）
//   - cfg: 工人行为配置
//   - x, y: 出生位置（世界坐标）
//
// 返回: 创建的实体ID
func NewWorkerEntity(em *ecs.EntityManager, role components.WorkerRole, cfg config.WorkerConfig, x, y float64) ecs.EntityID {
	id := em.CreateEntity()

	targetState := field.CellEmpty
	if role == components.RoleHarvester {
		targetState = field.CellReady
	}

	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})

	// 出生后立即寻找目标（RetargetDelay = 0）
	ecs.AddComponent(em, id, &components.AgentComponent{
		Kind:             components.AgentWorker,
		State:            components.AgentIdle,
		TargetState:      targetState,
		Target:           field.NoCell,
		Speed:            cfg.Speed,
		InteractDuration: cfg.InteractDuration,
		ArriveDistance:   cfg.ArriveDistance,
	})

	ecs.AddComponent(em, id, &components.WorkerComponent{
		Role:              role,
		HomeX:             cfg.HomeX,
		HomeY:             cfg.HomeY,
		TargetChangeDelay: cfg.TargetChangeDelay,
		DelayJitter:       cfg.DelayJitter,
		RetryDelay:        cfg.RetryDelay,
		AbandonDelay:      cfg.AbandonDelay,
	})

	log.Printf("[WorkerFactory] Created %s (ID: %d) at (%.1f, %.1f)", role, id, x, y)
	return id
}
