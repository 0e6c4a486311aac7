package entities

import (
	"log"
	"math/rand"

	"github.com/decker502/pumpkinpatch/pkg/components"
	"github.com/decker502/pumpkinpatch/pkg/config"
	"github.com/decker502/pumpkinpatch/pkg/ecs"
	"github.com/decker502/pumpkinpatch/pkg/field"
)

// NewForagerEntity 创建一个觅食者实体（乌鸦或松鼠）
// 参数:
//   - em: EntityManager 实例
//   - cfg: 觅食者行为配置
//   - species: 外观种类
//   - x, y: 出生位置（通常在场地左右两侧之外）
//   - rng: 随机源，决定初始饥饿值 [SatiationMin, SatiationMax)
//
// 返回: 创建的实体ID
func NewForagerEntity(em *ecs.EntityManager, cfg config.ForagerConfig, species components.ForagerSpecies, x, y float64, rng *rand.Rand) ecs.EntityID {
	id := em.CreateEntity()

	satiation := cfg.SatiationMin + rng.Float64()*(cfg.SatiationMax-cfg.SatiationMin)

	// 初始朝向场地中央飞行：从右侧出生向左，从左侧出生向右
	dirX := 1.0
	if x > 0 {
		dirX = -1.0
	}

	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})

	agent := &components.AgentComponent{
		Kind:             components.AgentForager,
		State:            components.AgentIdle,
		TargetState:      field.CellReady,
		Target:           field.NoCell,
		Speed:            cfg.Speed,
		InteractDuration: cfg.PickDuration,
		ArriveDistance:   cfg.ArriveDistance,
	}
	agent.SetDirection(dirX, 0)
	ecs.AddComponent(em, id, agent)

	ecs.AddComponent(em, id, &components.ForagerComponent{
		Species:       species,
		Satiation:     satiation,
		MaxScares:     cfg.MaxScares,
		NormalBite:    cfg.NormalBite,
		SpecialBite:   cfg.SpecialBite,
		RetargetDelay: cfg.RetargetDelay,
		ScareRadius:   cfg.ScareRadius,
	})

	log.Printf("[ForagerFactory] Created %s (ID: %d) at (%.1f, %.1f), satiation=%.2f",
		species, id, x, y, satiation)
	return id
}
