package config

// 布局配置常量
// 本文件定义了窗口、世界坐标到屏幕坐标的映射以及 HUD 元素位置

// 窗口配置
const (
	// GameWindowWidth 逻辑屏幕宽度（像素）
	GameWindowWidth = 960
	// GameWindowHeight 逻辑屏幕高度（像素）
	GameWindowHeight = 600
)

// World Configuration (世界坐标配置)
// 模拟使用世界单位（1 单位 = 1 个格子），Y 轴向上
// 渲染时转换为屏幕像素，Y 轴向下
const (
	// PixelsPerUnit 每个世界单位对应的像素数
	PixelsPerUnit = 40.0

	// WorldOriginScreenX 世界原点 (0,0) 在屏幕上的 X 坐标
	WorldOriginScreenX = 540.0

	// WorldOriginScreenY 世界原点 (0,0) 在屏幕上的 Y 坐标
	WorldOriginScreenY = 300.0

	// CellDrawSize 格子绘制边长（像素），略小于单位长度以留出缝隙
	CellDrawSize = PixelsPerUnit - 4

	// AgentDrawSize 代理绘制边长（像素）
	AgentDrawSize = 18.0
)

// HUD 配置
const (
	// HUDMarginX HUD 面板左边距（位于田地右侧）
	HUDMarginX = 720
	// HUDMarginY HUD 文本上边距
	HUDMarginY = 10
	// HUDLineHeight HUD 文本行高
	HUDLineHeight = 16

	// GrassTileSize 草地噪声纹理每个色块的边长（像素）
	GrassTileSize = 8
)

// WorldToScreen 将世界坐标转换为屏幕坐标
func WorldToScreen(x, y float64) (float64, float64) {
	return WorldOriginScreenX + x*PixelsPerUnit, WorldOriginScreenY - y*PixelsPerUnit
}

// ScreenToWorld 将屏幕坐标转换为世界坐标
func ScreenToWorld(sx, sy float64) (float64, float64) {
	return (sx - WorldOriginScreenX) / PixelsPerUnit, (WorldOriginScreenY - sy) / PixelsPerUnit
}
