package game

import (
	"log"

	"github.com/decker502/pumpkinpatch/pkg/components"
	"github.com/decker502/pumpkinpatch/pkg/config"
)

// Farmland 经济系统需要的田地操作
// *field.Grid 实现了此接口
type Farmland interface {
	UnlockRow(row int) error
	IsRowUnlocked(row int) bool
	ReduceGrowTime(factor float64)
}

// WorkerSpawner 生成工人的外部工厂
// 经济系统只决定何时、以何种角色生成工人
type WorkerSpawner interface {
	SpawnWorker(role components.WorkerRole)
}

// Economy 南瓜经济
//
// 记录当前余额、累计收入、单位价值和被动收入，管理升级和行解锁费用。
// 资源不足时所有购买操作都是静默的空操作。
type Economy struct {
	balance     float64
	totalEarned float64
	unitValue   float64 // 每个基础单位的南瓜价值
	passiveRate float64 // 每个结算周期的被动收入
	passiveTime float64 // 距上次被动结算累计的时间

	upgrades []*Upgrade
	rowCosts []config.RowCost

	cfg            config.EconomyConfig
	growTimeFactor float64
	field          Farmland
	spawner        WorkerSpawner
}

// NewEconomy 创建经济系统
// 参数:
//   - cfg: 经济配置
//   - growTimeFactor: 肥料每级缩短生长时间的系数
//   - field: 田地（行解锁和生长时间）
//   - spawner: 工人工厂，可为 nil（之后通过 SetSpawner 设置）
func NewEconomy(cfg config.EconomyConfig, growTimeFactor float64, field Farmland, spawner WorkerSpawner) *Economy {
	e := &Economy{
		balance:        cfg.StartBalance,
		unitValue:      cfg.StartUnitValue,
		cfg:            cfg,
		growTimeFactor: growTimeFactor,
		field:          field,
		spawner:        spawner,
	}

	for _, uc := range cfg.Upgrades {
		e.upgrades = append(e.upgrades, newUpgrade(uc))
	}
	e.rowCosts = append(e.rowCosts, cfg.RowCosts...)

	log.Printf("[Economy] Initialized: balance=%.2f, %d upgrades, %d row locks",
		e.balance, len(e.upgrades), len(e.rowCosts))
	return e
}

// SetSpawner 设置工人工厂
func (e *Economy) SetSpawner(spawner WorkerSpawner) {
	e.spawner = spawner
}

// Balance 返回当前余额
func (e *Economy) Balance() float64 { return e.balance }

// TotalEarned 返回累计收获收入（不含被动收入）
func (e *Economy) TotalEarned() float64 { return e.totalEarned }

// UnitValue 返回每个基础单位的价值
func (e *Economy) UnitValue() float64 { return e.unitValue }

// PassiveRate 返回每个结算周期的被动收入
func (e *Economy) PassiveRate() float64 { return e.passiveRate }

// GrantYield 计入收获产出
// 余额和累计收入都增加 units × 单位价值
func (e *Economy) GrantYield(units int) {
	amount := float64(units) * e.unitValue
	e.balance += amount
	e.totalEarned += amount
}

// Upgrades 返回所有升级项的快照（按配置顺序）
func (e *Economy) Upgrades() []Upgrade {
	result := make([]Upgrade, len(e.upgrades))
	for i, u := range e.upgrades {
		result[i] = *u
	}
	return result
}

// Upgrade 按名称返回升级项快照
func (e *Economy) Upgrade(name string) (Upgrade, bool) {
	if u := e.findUpgrade(name); u != nil {
		return *u, true
	}
	return Upgrade{}, false
}

func (e *Economy) findUpgrade(name string) *Upgrade {
	for _, u := range e.upgrades {
		if u.Name == name {
			return u
		}
	}
	return nil
}

// CanAfford 检查升级当前是否可以购买（只读）
func (e *Economy) CanAfford(name string) bool {
	u := e.findUpgrade(name)
	if u == nil || u.IsMaxed(e.cfg.RankCap) {
		return false
	}
	return e.balance >= u.Price
}

// PurchaseUpgrade 购买升级
//
// 余额不足、已达上限或名称未知时不改变任何状态并返回 false。
// 否则扣除价格，执行类别效果，然后升级（价格和效果按倍率增长）。
func (e *Economy) PurchaseUpgrade(name string) bool {
	u := e.findUpgrade(name)
	if u == nil {
		log.Printf("[Economy] Warning: unknown upgrade %q", name)
		return false
	}
	if u.IsMaxed(e.cfg.RankCap) || e.balance < u.Price {
		return false
	}

	e.debit(u.Price)

	switch u.Category {
	case config.UpgradeCategoryGrowTime:
		e.field.ReduceGrowTime(e.growTimeFactor)
	case config.UpgradeCategoryYieldValue:
		e.unitValue += e.cfg.UnitValueStep
	case config.UpgradeCategoryPassive:
		if u.SpawnsWorker {
			if e.spawner != nil {
				e.spawner.SpawnWorker(u.Role)
			} else {
				log.Printf("[Economy] Warning: no spawner set, %s not spawned for %q", u.Role, u.Name)
			}
		}
		e.passiveRate += u.Value
	}

	u.increaseRank(e.cfg.PriceGrowth, e.cfg.ValueGrowth)
	log.Printf("[Economy] Purchased %q: rank=%d, next price=%.2f, balance=%.2f",
		u.Name, u.Rank, u.Price, e.balance)
	return true
}

// PurchaseBySlot 按槽位（0-based，配置顺序）购买升级
// 对应数字键快捷购买
func (e *Economy) PurchaseBySlot(slot int) bool {
	if slot < 0 || slot >= len(e.upgrades) {
		return false
	}
	return e.PurchaseUpgrade(e.upgrades[slot].Name)
}

// RowCosts 返回尚未解锁的行及其费用
func (e *Economy) RowCosts() []config.RowCost {
	return append([]config.RowCost(nil), e.rowCosts...)
}

// CanUnlockRow 检查指定行当前是否可以解锁（只读）
func (e *Economy) CanUnlockRow(row int) bool {
	idx := e.rowCostIndex(row)
	return idx >= 0 && !e.field.IsRowUnlocked(row) && e.balance >= e.rowCosts[idx].Cost
}

// UnlockRow 支付费用解锁一行
// 行不在待解锁列表中、已经解锁或余额不足时返回 false，且不扣款
func (e *Economy) UnlockRow(row int) bool {
	idx := e.rowCostIndex(row)
	if idx < 0 {
		return false
	}
	// 已解锁的行不再收费，移除残留的费用项
	if e.field.IsRowUnlocked(row) {
		log.Printf("[Economy] Warning: row %d already unlocked, dropping its cost entry", row)
		e.rowCosts = append(e.rowCosts[:idx], e.rowCosts[idx+1:]...)
		return false
	}
	cost := e.rowCosts[idx].Cost
	if e.balance < cost {
		return false
	}

	if err := e.field.UnlockRow(row); err != nil {
		log.Printf("[Economy] Warning: failed to unlock row %d: %v", row, err)
		return false
	}

	e.debit(cost)
	e.rowCosts = append(e.rowCosts[:idx], e.rowCosts[idx+1:]...)
	log.Printf("[Economy] Unlocked row %d for %.2f, balance=%.2f", row, cost, e.balance)
	return true
}

func (e *Economy) rowCostIndex(row int) int {
	for i, rc := range e.rowCosts {
		if rc.Row == row {
			return i
		}
	}
	return -1
}

// Tick 推进被动收入
// 每满一个结算周期计入一次 passiveRate，而不是连续累加
func (e *Economy) Tick(elapsed float64) {
	e.passiveTime += elapsed
	for e.passiveTime >= e.cfg.PassiveInterval {
		e.passiveTime -= e.cfg.PassiveInterval
		e.balance += e.passiveRate
	}
}

// debit 扣款，结果不低于 0（浮点舍入误差可能导致微小负值）
func (e *Economy) debit(amount float64) {
	e.balance -= amount
	if e.balance < 0 {
		e.balance = 0
	}
}
