package systems

import (
	"log"

	"github.com/decker502/pumpkinpatch/pkg/components"
	"github.com/decker502/pumpkinpatch/pkg/ecs"
)

// BoundsSystem 移除飞出场地边界的觅食者
// 工人在整个会话中存在，不受边界限制
type BoundsSystem struct {
	entityManager *ecs.EntityManager
	minX          float64
	maxX          float64
}

// NewBoundsSystem 创建边界系统
// 参数:
//   - em: EntityManager 实例
//   - minX, maxX: 水平边界，x < minX 或 x > maxX 的觅食者会被移除
func NewBoundsSystem(em *ecs.EntityManager, minX, maxX float64) *BoundsSystem {
	return &BoundsSystem{
		entityManager: em,
		minX:          minX,
		maxX:          maxX,
	}
}

// Update 标记越界的觅食者待删除（实际删除在帧末统一进行）
func (s *BoundsSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith2[
		*components.ForagerComponent,
		*components.PositionComponent,
	](s.entityManager)

	for _, id := range entities {
		pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if !ok {
			continue
		}
		if pos.X > s.maxX || pos.X < s.minX {
			s.entityManager.DestroyEntity(id)
			log.Printf("[BoundsSystem] Forager %d left the field at x=%.1f", id, pos.X)
		}
	}
}
