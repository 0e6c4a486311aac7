package systems

import (
	"log"
	"math/rand"

	"github.com/decker502/pumpkinpatch/pkg/components"
	"github.com/decker502/pumpkinpatch/pkg/config"
	"github.com/decker502/pumpkinpatch/pkg/ecs"
	"github.com/decker502/pumpkinpatch/pkg/entities"
)

// ForagerSpawnSystem 定时在场地两侧生成觅食者
type ForagerSpawnSystem struct {
	entityManager *ecs.EntityManager
	cfg           config.ForagerConfig
	rng           *rand.Rand
	spawnTimer    float64 // 距上次生成累计的时间
	enabled       bool    // SpawnInterval <= 0 时禁用自动生成
}

// NewForagerSpawnSystem 创建觅食者生成系统
func NewForagerSpawnSystem(em *ecs.EntityManager, cfg config.ForagerConfig, rng *rand.Rand) *ForagerSpawnSystem {
	enabled := cfg.SpawnInterval > 0 && len(cfg.SpawnXs) > 0
	log.Printf("[ForagerSpawnSystem] Initialized with interval=%.1fs, enabled=%v", cfg.SpawnInterval, enabled)
	return &ForagerSpawnSystem{
		entityManager: em,
		cfg:           cfg,
		rng:           rng,
		enabled:       enabled,
	}
}

// Enable 启用自动生成
func (s *ForagerSpawnSystem) Enable() {
	s.enabled = s.cfg.SpawnInterval > 0 && len(s.cfg.SpawnXs) > 0
}

// Disable 禁用自动生成
func (s *ForagerSpawnSystem) Disable() {
	s.enabled = false
}

// IsEnabled 是否启用自动生成
func (s *ForagerSpawnSystem) IsEnabled() bool {
	return s.enabled
}

// Update 累加计时器，每满一个间隔生成一只觅食者
func (s *ForagerSpawnSystem) Update(deltaTime float64) {
	if !s.enabled {
		return
	}

	s.spawnTimer += deltaTime
	for s.spawnTimer >= s.cfg.SpawnInterval {
		s.spawnTimer -= s.cfg.SpawnInterval
		s.Spawn()
	}
}

// Spawn 立即生成一只觅食者：随机选择一侧出生点、高度和种类
func (s *ForagerSpawnSystem) Spawn() ecs.EntityID {
	x := 0.0
	if len(s.cfg.SpawnXs) > 0 {
		x = s.cfg.SpawnXs[s.rng.Intn(len(s.cfg.SpawnXs))]
	}
	y := s.cfg.SpawnYMin + s.rng.Float64()*(s.cfg.SpawnYMax-s.cfg.SpawnYMin)

	species := components.SpeciesCrow
	if s.rng.Intn(2) == 1 {
		species = components.SpeciesSquirrel
	}

	return entities.NewForagerEntity(s.entityManager, s.cfg, species, x, y, s.rng)
}
