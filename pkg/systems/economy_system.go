package systems

// PassiveIncome 按固定周期结算被动收入
// *game.Economy 实现了此接口
type PassiveIncome interface {
	Tick(elapsed float64)
}

// EconomySystem 每一步推进经济的被动收入计时
type EconomySystem struct {
	economy PassiveIncome
}

// NewEconomySystem 创建经济系统
func NewEconomySystem(economy PassiveIncome) *EconomySystem {
	return &EconomySystem{economy: economy}
}

// Update 推进被动收入
func (s *EconomySystem) Update(deltaTime float64) {
	s.economy.Tick(deltaTime)
}
