package game

import (
	"github.com/decker502/pumpkinpatch/pkg/components"
	"github.com/decker502/pumpkinpatch/pkg/config"
)

// Upgrade 一个可购买的升级项
//
// 每购买一次 Rank +1，价格乘以 PriceGrowth，效果乘以 ValueGrowth。
type Upgrade struct {
	Name     string
	Category string
	Price    float64
	Rank     int
	Value    float64 // 每级效果（被动收入增量）
	Capped   bool    // 是否受等级上限约束

	// SpawnsWorker 购买时是否生成一个工人
	SpawnsWorker bool
	Role         components.WorkerRole
}

// newUpgrade 根据配置创建升级项，Rank 从 0 开始
func newUpgrade(cfg config.UpgradeConfig) *Upgrade {
	u := &Upgrade{
		Name:     cfg.Name,
		Category: cfg.Category,
		Price:    cfg.Price,
		Value:    cfg.Value,
		Capped:   cfg.Capped,
	}

	switch cfg.Role {
	case config.RolePlanter:
		u.SpawnsWorker = true
		u.Role = components.RolePlanter
	case config.RoleHarvester:
		u.SpawnsWorker = true
		u.Role = components.RoleHarvester
	}
	return u
}

// IsMaxed 是否已达到等级上限
func (u *Upgrade) IsMaxed(rankCap int) bool {
	return u.Capped && u.Rank >= rankCap
}

// increaseRank 升一级，价格和效果按固定倍率增长
func (u *Upgrade) increaseRank(priceGrowth, valueGrowth float64) {
	u.Rank++
	u.Price *= priceGrowth
	u.Value *= valueGrowth
}
