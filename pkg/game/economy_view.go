package game

import (
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
)

// UpgradeView 单个升级按钮的显示数据
type UpgradeView struct {
	Name        string
	Price       float64
	Rank        int
	Maxed       bool
	Purchasable bool
	PriceText   string // "12.5" 或 "--"
	RankText    string // "3" 或 "MAX"
}

// RowLockView 单个行锁按钮的显示数据
type RowLockView struct {
	Row        int
	Cost       float64
	Affordable bool
	CostText   string
}

// EconomyView 供 UI 使用的只读经济快照
// 每一步重新计算，不会修改经济状态
type EconomyView struct {
	Balance     float64 // 四舍五入后的余额
	BalanceText string
	TotalEarned float64
	PassiveRate float64
	Upgrades    []UpgradeView
	RowLocks    []RowLockView
}

// Snapshot 生成当前经济状态的显示快照
func (e *Economy) Snapshot() EconomyView {
	rounded := math.Round(e.balance)
	view := EconomyView{
		Balance:     rounded,
		BalanceText: humanize.Comma(int64(rounded)),
		TotalEarned: e.totalEarned,
		PassiveRate: e.passiveRate,
		Upgrades:    make([]UpgradeView, 0, len(e.upgrades)),
		RowLocks:    make([]RowLockView, 0, len(e.rowCosts)),
	}

	for _, u := range e.upgrades {
		uv := UpgradeView{
			Name:        u.Name,
			Price:       u.Price,
			Rank:        u.Rank,
			Maxed:       u.IsMaxed(e.cfg.RankCap),
			Purchasable: e.CanAfford(u.Name),
			PriceText:   humanize.CommafWithDigits(u.Price, 1),
			RankText:    strconv.Itoa(u.Rank),
		}
		if uv.Maxed {
			uv.PriceText = "--"
			uv.RankText = "MAX"
		}
		view.Upgrades = append(view.Upgrades, uv)
	}

	for _, rc := range e.rowCosts {
		view.RowLocks = append(view.RowLocks, RowLockView{
			Row:        rc.Row,
			Cost:       rc.Cost,
			Affordable: e.balance >= rc.Cost,
			CostText:   humanize.Comma(int64(math.Round(rc.Cost))),
		})
	}

	return view
}
