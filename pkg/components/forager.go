package components

// ForagerSpecies 觅食者外观种类（只影响提示音效和表现）
type ForagerSpecies int

const (
	SpeciesCrow ForagerSpecies = iota
	SpeciesSquirrel
)

// String 返回种类名称（用于日志）
func (s ForagerSpecies) String() string {
	if s == SpeciesSquirrel {
		return "Squirrel"
	}
	return "Crow"
}

// ForagerComponent 标识实体为觅食者
//
// Satiation 是剩余"食欲"：每吃掉一个作物就减少，耗尽后觅食者离开。
// Scares 记录被玩家驱赶的次数，达到 MaxScares 时立即放弃目标逃离。
type ForagerComponent struct {
	Species   ForagerSpecies
	Satiation float64
	Scares    int
	MaxScares int

	NormalBite    float64 // 吃掉普通南瓜减少的饥饿值
	SpecialBite   float64 // 吃掉南瓜灯减少的饥饿值
	RetargetDelay float64 // 空闲时重新寻找目标的间隔
	ScareRadius   float64 // 驱赶判定半径
}

// IsFull 食欲是否耗尽
func (f *ForagerComponent) IsFull() bool {
	return f.Satiation <= 0
}

// IsDrivenOff 是否已被驱赶走
func (f *ForagerComponent) IsDrivenOff() bool {
	return f.Scares >= f.MaxScares
}
