// Package sim 组装农场模拟：实体管理器、田地、经济和各个系统
//
// Simulation 是模拟核心的唯一入口。前端（窗口或无头模式）只通过
// Step 推进时间，通过玩家命令（点击格子、驱赶、购买、解锁）修改状态，
// 通过只读快照读取显示数据。
package sim

import (
	"log"
	"math/rand"

	"github.com/decker502/pumpkinpatch/pkg/components"
	"github.com/decker502/pumpkinpatch/pkg/config"
	"github.com/decker502/pumpkinpatch/pkg/ecs"
	"github.com/decker502/pumpkinpatch/pkg/entities"
	"github.com/decker502/pumpkinpatch/pkg/field"
	"github.com/decker502/pumpkinpatch/pkg/game"
	"github.com/decker502/pumpkinpatch/pkg/systems"
)

// 每隔多少步输出一次状态日志
const statusLogInterval = 600

// Simulation 单线程、确定性的农场模拟
//
// 每一步按固定顺序执行：生长 → 觅食者生成 → 代理 → 边界 → 经济 → 清理实体。
// 相同的配置和随机种子产生相同的结果。
type Simulation struct {
	cfg           *config.FarmConfig
	entityManager *ecs.EntityManager
	grid          *field.Grid
	economy       *game.Economy
	rng           *rand.Rand

	growthSystem       *systems.GrowthSystem
	foragerSpawnSystem *systems.ForagerSpawnSystem
	agentSystem        *systems.AgentSystem
	boundsSystem       *systems.BoundsSystem
	economySystem      *systems.EconomySystem

	elapsed float64
	steps   int
}

// New 创建模拟
// 参数:
//   - cfg: 已校验的农场配置
//   - seed: 随机种子（目标选择、南瓜灯概率、觅食者生成）
//   - observer: 代理表现通知接收方，可为 nil
func New(cfg *config.FarmConfig, seed int64, observer systems.AgentObserver) *Simulation {
	s := &Simulation{
		cfg:           cfg,
		entityManager: ecs.NewEntityManager(),
		grid:          field.NewGrid(cfg.Field),
		rng:           rand.New(rand.NewSource(seed)),
	}

	s.economy = game.NewEconomy(cfg.Economy, cfg.Field.GrowTimeFactor, s.grid, s)

	s.growthSystem = systems.NewGrowthSystem(s.grid)
	s.foragerSpawnSystem = systems.NewForagerSpawnSystem(s.entityManager, cfg.Foragers, s.rng)
	s.agentSystem = systems.NewAgentSystem(s.entityManager, s.grid, s.economy, s.rng, observer)
	s.boundsSystem = systems.NewBoundsSystem(s.entityManager, cfg.Foragers.BoundsMinX, cfg.Foragers.BoundsMaxX)
	s.economySystem = systems.NewEconomySystem(s.economy)

	log.Printf("[Simulation] Created with seed=%d, %d cells, %d upgrades",
		seed, s.grid.Len(), len(cfg.Economy.Upgrades))
	return s
}

// SpawnWorker 在工人出生点生成一个工人（实现 game.WorkerSpawner）
func (s *Simulation) SpawnWorker(role components.WorkerRole) {
	w := s.cfg.Workers
	entities.NewWorkerEntity(s.entityManager, role, w, w.SpawnX, w.SpawnY)
}

// SpawnForager 立即生成一只觅食者
func (s *Simulation) SpawnForager() ecs.EntityID {
	return s.foragerSpawnSystem.Spawn()
}

// SetForagerSpawning 开关觅食者自动生成
func (s *Simulation) SetForagerSpawning(enabled bool) {
	if enabled {
		s.foragerSpawnSystem.Enable()
	} else {
		s.foragerSpawnSystem.Disable()
	}
}

// ForagerSpawning 返回觅食者自动生成是否开启
func (s *Simulation) ForagerSpawning() bool {
	return s.foragerSpawnSystem.IsEnabled()
}

// SetObserver 替换代理表现通知接收方
func (s *Simulation) SetObserver(observer systems.AgentObserver) {
	s.agentSystem.SetObserver(observer)
}

// Step 推进模拟 dt 秒
// dt <= 0 时为空操作
func (s *Simulation) Step(dt float64) {
	if dt <= 0 {
		return
	}

	s.growthSystem.Update(dt)
	s.foragerSpawnSystem.Update(dt)
	s.agentSystem.Update(dt)
	s.boundsSystem.Update(dt)
	s.economySystem.Update(dt)
	s.entityManager.RemoveMarkedEntities()

	s.elapsed += dt
	s.steps++
	if s.steps%statusLogInterval == 0 {
		log.Printf("[Simulation] t=%.1fs balance=%.2f entities=%d",
			s.elapsed, s.economy.Balance(), s.entityManager.Count())
	}
}

// ClickCell 玩家点击世界坐标 (x, y) 处的格子
// 空地种植，成熟作物收获并计入收益，枯萎作物清除；
// 没有命中已解锁格子或格子正在生长时返回 false
func (s *Simulation) ClickCell(x, y float64) bool {
	id, ok := s.grid.CellAt(x, y)
	if !ok {
		return false
	}
	cell, _ := s.grid.Cell(id)

	switch cell.State() {
	case field.CellEmpty:
		if err := s.grid.PlantCell(id, s.rng); err != nil {
			log.Printf("[Simulation] Warning: click plant failed: %v", err)
			return false
		}
	case field.CellReady:
		units, err := cell.Harvest(true)
		if err != nil {
			log.Printf("[Simulation] Warning: click harvest failed: %v", err)
			return false
		}
		s.economy.GrantYield(units)
	case field.CellWithered:
		if _, err := cell.Harvest(false); err != nil {
			log.Printf("[Simulation] Warning: click clear failed: %v", err)
			return false
		}
	default:
		return false
	}
	return true
}

// ScareAt 驱赶 (x, y) 附近的觅食者
// 没有命中觅食者时返回 false
func (s *Simulation) ScareAt(x, y float64) bool {
	id, ok := s.agentSystem.ForagerAt(x, y)
	if !ok {
		return false
	}
	return s.agentSystem.Scare(id)
}

// Purchase 按名称购买升级
func (s *Simulation) Purchase(name string) bool {
	return s.economy.PurchaseUpgrade(name)
}

// PurchaseBySlot 按槽位购买升级（数字键 1-6 对应槽位 0-5）
func (s *Simulation) PurchaseBySlot(slot int) bool {
	return s.economy.PurchaseBySlot(slot)
}

// UnlockRow 支付费用解锁一行
func (s *Simulation) UnlockRow(row int) bool {
	return s.economy.UnlockRow(row)
}

// View 返回经济显示快照
func (s *Simulation) View() game.EconomyView {
	return s.economy.Snapshot()
}

// Grid 返回田地（只应用于读取）
func (s *Simulation) Grid() *field.Grid { return s.grid }

// Economy 返回经济系统
func (s *Simulation) Economy() *game.Economy { return s.economy }

// EntityManager 返回实体管理器
func (s *Simulation) EntityManager() *ecs.EntityManager { return s.entityManager }

// Elapsed 返回累计模拟时间（秒）
func (s *Simulation) Elapsed() float64 { return s.elapsed }

// Steps 返回已执行的步数
func (s *Simulation) Steps() int { return s.steps }
