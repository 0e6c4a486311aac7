package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// 升级类别（对应 economy.upgrades[].category）
const (
	// UpgradeCategoryGrowTime 缩短全局生长时间（肥料）
	UpgradeCategoryGrowTime = "grow_time"
	// UpgradeCategoryYieldValue 提高每单位南瓜价值（大南瓜）
	UpgradeCategoryYieldValue = "yield_value"
	// UpgradeCategoryPassive 增加被动收入，可选地生成一个工人
	UpgradeCategoryPassive = "passive"
)

// 工人角色（对应 economy.upgrades[].role）
const (
	RolePlanter   = "planter"
	RoleHarvester = "harvester"
)

// FarmConfig 农场模拟的完整平衡配置
//
// 配置文件位置: data/farm.yaml
type FarmConfig struct {
	// Field 田地布局和作物生长参数
	Field FieldConfig `yaml:"field"`

	// Workers 工人（农夫/旋耕机）行为参数
	Workers WorkerConfig `yaml:"workers"`

	// Foragers 觅食者（乌鸦/松鼠）行为参数
	Foragers ForagerConfig `yaml:"foragers"`

	// Economy 经济系统参数
	Economy EconomyConfig `yaml:"economy"`
}

// FieldConfig 田地配置
//
// 田地由若干"行"组成，每行是同一 X 坐标上的一列格子。
// 格子按行顺序插入，第 r 行占据下标 [r*len(CellYs), (r+1)*len(CellYs))。
type FieldConfig struct {
	// RowXs 每一行的 X 坐标（世界单位）
	RowXs []float64 `yaml:"rowXs"`
	// CellYs 行内每个格子的 Y 坐标（从上到下）
	CellYs []float64 `yaml:"cellYs"`
	// UnlockedRows 开局即解锁的行
	UnlockedRows []int `yaml:"unlockedRows"`
	// GrowDuration 新种植作物的基础生长时间（秒）
	GrowDuration float64 `yaml:"growDuration"`
	// SpoilWindow 成熟后多久未收获会枯萎（秒）
	SpoilWindow float64 `yaml:"spoilWindow"`
	// SpecialChance 种植时长出南瓜灯（稀有高价值作物）的概率
	SpecialChance float64 `yaml:"specialChance"`
	// GrowTimeFactor 每次购买肥料后生长时间乘以的系数 (0, 1)
	GrowTimeFactor float64 `yaml:"growTimeFactor"`
}

// WorkerConfig 工人配置
type WorkerConfig struct {
	Speed             float64 `yaml:"speed"`             // 移动速度（世界单位/秒）
	InteractDuration  float64 `yaml:"interactDuration"`  // 与格子交互耗时（秒）
	TargetChangeDelay float64 `yaml:"targetChangeDelay"` // 交互完成后换目标的基础延迟（秒）
	DelayJitter       float64 `yaml:"delayJitter"`       // 延迟随机抖动幅度（±秒）
	RetryDelay        float64 `yaml:"retryDelay"`        // 找不到目标时的重试延迟（秒）
	AbandonDelay      float64 `yaml:"abandonDelay"`      // 目标失效后的重新寻找延迟（秒）
	ArriveDistance    float64 `yaml:"arriveDistance"`    // 到达判定距离
	SpawnX            float64 `yaml:"spawnX"`            // 新工人出生点
	SpawnY            float64 `yaml:"spawnY"`
	HomeX             float64 `yaml:"homeX"` // 旋耕机空闲时返回的墓碑位置
	HomeY             float64 `yaml:"homeY"`
}

// ForagerConfig 觅食者配置
type ForagerConfig struct {
	Speed          float64   `yaml:"speed"`          // 飞行速度（世界单位/秒）
	PickDuration   float64   `yaml:"pickDuration"`   // 啄食耗时（秒）
	ArriveDistance float64   `yaml:"arriveDistance"` // 降落判定距离
	RetargetDelay  float64   `yaml:"retargetDelay"`  // 空闲时重新寻找目标的间隔（秒）
	MaxScares      int       `yaml:"maxScares"`      // 被驱赶多少次后逃离
	ScareRadius    float64   `yaml:"scareRadius"`    // 驱赶点击的判定半径
	SatiationMin   float64   `yaml:"satiationMin"`   // 初始饥饿值下限
	SatiationMax   float64   `yaml:"satiationMax"`   // 初始饥饿值上限
	NormalBite     float64   `yaml:"normalBite"`     // 吃掉普通南瓜减少的饥饿值
	SpecialBite    float64   `yaml:"specialBite"`    // 吃掉南瓜灯减少的饥饿值
	SpawnInterval  float64   `yaml:"spawnInterval"`  // 自动生成间隔（秒），0 表示禁用
	SpawnXs        []float64 `yaml:"spawnXs"`        // 可选的出生 X 坐标（场地两侧）
	SpawnYMin      float64   `yaml:"spawnYMin"`
	SpawnYMax      float64   `yaml:"spawnYMax"`
	BoundsMinX     float64   `yaml:"boundsMinX"` // 超出边界即移除
	BoundsMaxX     float64   `yaml:"boundsMaxX"`
}

// EconomyConfig 经济配置
type EconomyConfig struct {
	StartBalance    float64         `yaml:"startBalance"`
	StartUnitValue  float64         `yaml:"startUnitValue"`
	UnitValueStep   float64         `yaml:"unitValueStep"`   // 大南瓜每级增加的单位价值
	PassiveInterval float64         `yaml:"passiveInterval"` // 被动收入结算间隔（秒）
	PriceGrowth     float64         `yaml:"priceGrowth"`     // 每升一级价格倍率
	ValueGrowth     float64         `yaml:"valueGrowth"`     // 每升一级效果倍率
	RankCap         int             `yaml:"rankCap"`         // 受限升级的等级上限
	Upgrades        []UpgradeConfig `yaml:"upgrades"`
	RowCosts        []RowCost       `yaml:"rowCosts"`
}

// UpgradeConfig 单个升级项定义
type UpgradeConfig struct {
	Name     string  `yaml:"name"`
	Category string  `yaml:"category"`
	Price    float64 `yaml:"price"`
	Value    float64 `yaml:"value"`
	Capped   bool    `yaml:"capped"`
	Role     string  `yaml:"role,omitempty"`
}

// RowCost 解锁某一行的费用
type RowCost struct {
	Row  int     `yaml:"row"`
	Cost float64 `yaml:"cost"`
}

// DefaultFarmConfig 返回内置默认配置
// 与 data/farm.yaml 保持一致，用于测试和配置文件缺失时的降级
func DefaultFarmConfig() *FarmConfig {
	return &FarmConfig{
		Field: FieldConfig{
			RowXs:          []float64{-5.5, -4.5, -1.5, -0.5, 2.5, 3.5},
			CellYs:         []float64{2.5, 1.5, 0.5, -0.5, -1.5, -2.5},
			UnlockedRows:   []int{0, 1},
			GrowDuration:   10.0,
			SpoilWindow:    15.0,
			SpecialChance:  0.05,
			GrowTimeFactor: 0.9,
		},
		Workers: WorkerConfig{
			Speed:             1.0,
			InteractDuration:  1.0,
			TargetChangeDelay: 3.0,
			DelayJitter:       0.5,
			RetryDelay:        1.0,
			AbandonDelay:      0.5,
			ArriveDistance:    0.05,
			SpawnX:            -1.0,
			SpawnY:            -4.0,
			HomeX:             -9.0,
			HomeY:             3.0,
		},
		Foragers: ForagerConfig{
			Speed:          3.0,
			PickDuration:   2.0,
			ArriveDistance: 0.1,
			RetargetDelay:  0.25,
			MaxScares:      2,
			ScareRadius:    0.5,
			SatiationMin:   0.1,
			SatiationMax:   0.7,
			NormalBite:     0.1,
			SpecialBite:    0.3,
			SpawnInterval:  20.0,
			SpawnXs:        []float64{-16.0, 12.0},
			SpawnYMin:      -3.0,
			SpawnYMax:      4.0,
			BoundsMinX:     -50.0,
			BoundsMaxX:     30.0,
		},
		Economy: EconomyConfig{
			StartBalance:    0,
			StartUnitValue:  1,
			UnitValueStep:   0.5,
			PassiveInterval: 0.25,
			PriceGrowth:     1.2,
			ValueGrowth:     1.15,
			RankCap:         10,
			Upgrades: []UpgradeConfig{
				{Name: "fertilizer", Category: UpgradeCategoryGrowTime, Price: 5, Value: 0},
				{Name: "biggerPump", Category: UpgradeCategoryYieldValue, Price: 10, Value: 0},
				{Name: "farmers", Category: UpgradeCategoryPassive, Price: 20, Value: 0.01, Capped: true, Role: RolePlanter},
				{Name: "rototillers", Category: UpgradeCategoryPassive, Price: 60, Value: 0.1, Capped: true, Role: RoleHarvester},
				{Name: "factory", Category: UpgradeCategoryPassive, Price: 120, Value: 0.5},
				{Name: "labs", Category: UpgradeCategoryPassive, Price: 200, Value: 1},
			},
			RowCosts: []RowCost{
				{Row: 2, Cost: 25},
				{Row: 3, Cost: 50},
				{Row: 4, Cost: 100},
				{Row: 5, Cost: 200},
			},
		},
	}
}

// LoadFarmConfig 加载农场平衡配置
//
// 参数:
//   - path: 配置文件路径（如 "data/farm.yaml"）
//
// 返回:
//   - *FarmConfig: 加载成功后的配置结构
//   - error: 加载失败时返回错误
func LoadFarmConfig(path string) (*FarmConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read farm config: %w", err)
	}
	return ParseFarmConfig(data)
}

// ParseFarmConfig 从 YAML 数据解析配置
// 未出现在 YAML 中的字段保留默认值
func ParseFarmConfig(data []byte) (*FarmConfig, error) {
	cfg := DefaultFarmConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse farm config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid farm config: %w", err)
	}

	return cfg, nil
}

// Validate 验证配置有效性
//
// 检查配置值是否在合理范围内：
//   - 田地至少一行一格，预解锁行和解锁费用中的行号必须存在
//   - 解锁费用不能指向预解锁行，同一行只能定价一次
//   - 时间、速度类参数必须为正
//   - 概率和倍率在合理区间
//   - 升级名称唯一，类别和角色合法
func (c *FarmConfig) Validate() error {
	f := c.Field
	if len(f.RowXs) == 0 || len(f.CellYs) == 0 {
		return fmt.Errorf("field must have at least one row and one cell per row")
	}
	rows := len(f.RowXs)
	for _, r := range f.UnlockedRows {
		if r < 0 || r >= rows {
			return fmt.Errorf("unlocked row %d out of range [0, %d)", r, rows)
		}
	}
	if f.GrowDuration <= 0 || f.SpoilWindow <= 0 {
		return fmt.Errorf("growDuration(%.2f) and spoilWindow(%.2f) must be positive", f.GrowDuration, f.SpoilWindow)
	}
	if f.SpecialChance < 0 || f.SpecialChance > 1 {
		return fmt.Errorf("specialChance %.2f out of range [0, 1]", f.SpecialChance)
	}
	if f.GrowTimeFactor <= 0 || f.GrowTimeFactor >= 1 {
		return fmt.Errorf("growTimeFactor %.2f out of range (0, 1)", f.GrowTimeFactor)
	}

	w := c.Workers
	if w.Speed <= 0 || w.InteractDuration <= 0 || w.ArriveDistance <= 0 {
		return fmt.Errorf("worker speed, interactDuration and arriveDistance must be positive")
	}
	if w.DelayJitter < 0 || w.DelayJitter > w.TargetChangeDelay {
		return fmt.Errorf("worker delayJitter %.2f must be within [0, targetChangeDelay]", w.DelayJitter)
	}

	fg := c.Foragers
	if fg.Speed <= 0 || fg.PickDuration <= 0 || fg.ArriveDistance <= 0 {
		return fmt.Errorf("forager speed, pickDuration and arriveDistance must be positive")
	}
	if fg.MaxScares < 1 {
		return fmt.Errorf("forager maxScares must be at least 1, got %d", fg.MaxScares)
	}
	if fg.SatiationMin > fg.SatiationMax {
		return fmt.Errorf("forager satiation range invalid: min(%.2f) > max(%.2f)", fg.SatiationMin, fg.SatiationMax)
	}
	if fg.SpawnYMin > fg.SpawnYMax {
		return fmt.Errorf("forager spawn Y range invalid: min(%.1f) > max(%.1f)", fg.SpawnYMin, fg.SpawnYMax)
	}
	if fg.BoundsMinX >= fg.BoundsMaxX {
		return fmt.Errorf("forager bounds invalid: min(%.1f) >= max(%.1f)", fg.BoundsMinX, fg.BoundsMaxX)
	}
	if fg.SpawnInterval > 0 && len(fg.SpawnXs) == 0 {
		return fmt.Errorf("forager spawnXs required when spawnInterval > 0")
	}

	e := c.Economy
	if e.PassiveInterval <= 0 {
		return fmt.Errorf("economy passiveInterval must be positive, got %.2f", e.PassiveInterval)
	}
	if e.PriceGrowth < 1 || e.ValueGrowth < 1 {
		return fmt.Errorf("economy growth factors must be >= 1 (price %.2f, value %.2f)", e.PriceGrowth, e.ValueGrowth)
	}
	if e.RankCap < 1 {
		return fmt.Errorf("economy rankCap must be at least 1, got %d", e.RankCap)
	}
	seen := make(map[string]bool, len(e.Upgrades))
	for _, u := range e.Upgrades {
		if u.Name == "" {
			return fmt.Errorf("upgrade name must not be empty")
		}
		if seen[u.Name] {
			return fmt.Errorf("duplicate upgrade %q", u.Name)
		}
		seen[u.Name] = true
		if u.Price <= 0 {
			return fmt.Errorf("upgrade %q price must be positive", u.Name)
		}
		switch u.Category {
		case UpgradeCategoryGrowTime, UpgradeCategoryYieldValue, UpgradeCategoryPassive:
		default:
			return fmt.Errorf("upgrade %q has unknown category %q", u.Name, u.Category)
		}
		switch u.Role {
		case "", RolePlanter, RoleHarvester:
		default:
			return fmt.Errorf("upgrade %q has unknown role %q", u.Name, u.Role)
		}
		if u.Role != "" && u.Category != UpgradeCategoryPassive {
			return fmt.Errorf("upgrade %q: role is only allowed on passive upgrades", u.Name)
		}
	}
	unlocked := make(map[int]bool, len(f.UnlockedRows))
	for _, r := range f.UnlockedRows {
		unlocked[r] = true
	}
	priced := make(map[int]bool, len(e.RowCosts))
	for _, rc := range e.RowCosts {
		if rc.Row < 0 || rc.Row >= rows {
			return fmt.Errorf("row cost references row %d out of range [0, %d)", rc.Row, rows)
		}
		if unlocked[rc.Row] {
			return fmt.Errorf("row cost references row %d which is already unlocked", rc.Row)
		}
		if priced[rc.Row] {
			return fmt.Errorf("duplicate row cost for row %d", rc.Row)
		}
		priced[rc.Row] = true
		if rc.Cost < 0 {
			return fmt.Errorf("row %d cost must not be negative", rc.Row)
		}
	}

	return nil
}

// CellsPerRow 返回每行的格子数
func (f FieldConfig) CellsPerRow() int {
	return len(f.CellYs)
}
