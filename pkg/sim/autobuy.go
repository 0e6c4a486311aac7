package sim

// BuyCheapest 购买当前最便宜且买得起的升级或行
// 价格相同时升级优先；没有可买项时返回 false
func (s *Simulation) BuyCheapest() bool {
	name, row := "", -1
	best := 0.0

	for _, u := range s.economy.Upgrades() {
		if !s.economy.CanAfford(u.Name) {
			continue
		}
		if name == "" || u.Price < best {
			name, best = u.Name, u.Price
		}
	}
	for _, rc := range s.economy.RowCosts() {
		if !s.economy.CanUnlockRow(rc.Row) {
			continue
		}
		if (name == "" && row < 0) || rc.Cost < best {
			name, row, best = "", rc.Row, rc.Cost
		}
	}

	switch {
	case row >= 0:
		return s.economy.UnlockRow(row)
	case name != "":
		return s.economy.PurchaseUpgrade(name)
	}
	return false
}
