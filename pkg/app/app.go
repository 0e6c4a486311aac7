// Package app 提供农场观察窗口的核心包装器
//
// 该包把模拟、窗口偏好、音效和绘制组装成 ebiten.Game。
// 桌面端通过 main.go 调用 NewApp()；无头模式不经过此包。
package app

import (
	"errors"
	"image/color"
	"io"
	"log"
	"math"

	"github.com/decker502/pumpkinpatch/pkg/components"
	"github.com/decker502/pumpkinpatch/pkg/config"
	"github.com/decker502/pumpkinpatch/pkg/ecs"
	"github.com/decker502/pumpkinpatch/pkg/game"
	"github.com/decker502/pumpkinpatch/pkg/sim"
	"github.com/decker502/pumpkinpatch/pkg/sound"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/quasilyte/gdata/v2"
	"golang.org/x/image/font/basicfont"
)

// 每帧固定的时间步长（秒）
const frameDelta = 1.0 / 60.0

// 升级快捷键，依次对应槽位 0-5
var slotKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
}

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Seed 模拟和草地纹理的随机种子
	Seed int64
	// Farm 已校验的农场配置
	Farm *config.FarmConfig
	// StorageName 窗口偏好的存储名称，为空时只使用内存设置
	StorageName string
}

// App 是农场观察窗口，实现 ebiten.Game 接口
type App struct {
	simulation *sim.Simulation
	settings   *game.SettingsManager
	audio      *sound.AudioManager
	observer   *cueObserver

	grass *ebiten.Image
	pixel *ebiten.Image
	face  text.Face

	homeX, homeY float64

	paused                   bool
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化观察窗口
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	if cfg.Farm == nil {
		return nil, errors.New("farm config is required")
	}

	// 窗口偏好存储失败不是致命错误，降级为内存设置
	var store *gdata.Manager
	if cfg.StorageName != "" {
		m, err := gdata.Open(gdata.Config{AppName: cfg.StorageName})
		if err != nil {
			log.Printf("[App] Warning: settings storage unavailable: %v", err)
		} else {
			store = m
		}
	}
	settings := game.NewSettingsManager(store)

	// 初始化音频上下文
	audioContext := audio.NewContext(sound.AudioSampleRate)
	audioManager := sound.NewAudioManager(audioContext, settings)
	log.Printf("[App] AudioManager initialized")

	observer := newCueObserver(audioManager)
	simulation := sim.New(cfg.Farm, cfg.Seed, observer)
	em := simulation.EntityManager()
	observer.species = func(id ecs.EntityID) (components.ForagerSpecies, bool) {
		f, ok := ecs.GetComponent[*components.ForagerComponent](em, id)
		if !ok {
			return 0, false
		}
		return f.Species, true
	}

	grassW := config.GameWindowWidth / config.GrassTileSize
	grassH := config.GameWindowHeight / config.GrassTileSize
	grass := ebiten.NewImage(grassW, grassH)
	grass.WritePixels(grassPixels(cfg.Seed, grassW, grassH))

	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)

	if settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return &App{
		simulation: simulation,
		settings:   settings,
		audio:      audioManager,
		observer:   observer,
		grass:      grass,
		pixel:      pixel,
		face:       text.NewGoXFace(basicfont.Face7x13),
		homeX:      cfg.Farm.Workers.HomeX,
		homeY:      cfg.Farm.Workers.HomeY,
		verbose:    cfg.Verbose,
	}, nil
}

// Update 处理输入并推进模拟
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		isFullscreen := ebiten.IsFullscreen()
		if isFullscreen {
			// 退出全屏
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
		a.settings.SetFullscreen(!isFullscreen)
		a.saveSettings()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		a.saveSettings()
		return ebiten.Termination
	}

	a.handleKeys()
	a.handleMouse()

	if !a.paused {
		n, dt := splitStep(frameDelta*a.settings.GetSettings().SimSpeed, frameDelta)
		for i := 0; i < n; i++ {
			a.simulation.Step(dt)
		}
	}

	a.observer.update(frameDelta, isAgent(a.simulation.EntityManager()))
	return nil
}

// handleKeys 处理键盘命令
func (a *App) handleKeys() {
	for slot, key := range slotKeys {
		if inpututil.IsKeyJustPressed(key) && a.simulation.PurchaseBySlot(slot) {
			a.audio.PlaySound(sound.SoundPurchase)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyU) {
		if row, ok := nextAffordableRow(a.simulation.View()); ok && a.simulation.UnlockRow(row) {
			a.audio.PlaySound(sound.SoundPurchase)
		}
	}

	s := a.settings.GetSettings()
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual), inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd):
		a.settings.SetSimSpeed(s.SimSpeed * 2)
		a.saveSettings()
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus), inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract):
		a.settings.SetSimSpeed(s.SimSpeed / 2)
		a.saveSettings()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		a.settings.SetShowDebug(!s.ShowDebug)
		a.saveSettings()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		a.settings.SetSoundEnabled(!s.SoundEnabled)
		a.saveSettings()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		a.paused = !a.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		a.simulation.SpawnForager()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		a.simulation.SetForagerSpawning(!a.simulation.ForagerSpawning())
	}
}

// handleMouse 左键点击：优先驱赶觅食者，其次操作格子，最后尝试解锁被点击的行
func (a *App) handleMouse() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	wx, wy := config.ScreenToWorld(float64(mx), float64(my))

	if a.simulation.ScareAt(wx, wy) {
		return
	}
	if a.simulation.ClickCell(wx, wy) {
		return
	}
	if row, ok := lockedRowAt(a.simulation, wx, wy); ok && a.simulation.UnlockRow(row) {
		a.audio.PlaySound(sound.SoundPurchase)
	}
}

func (a *App) saveSettings() {
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(config.GrassTileSize, config.GrassTileSize)
	screen.DrawImage(a.grass, op)

	a.drawField(screen)
	a.drawAgents(screen)
	a.drawHUD(screen)
	if a.settings.GetSettings().ShowDebug {
		a.drawDebug(screen)
	}
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	// 先填充黑色背景（全屏时左右两边为黑色）
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	// 像素风格画面使用最近邻滤波
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// Simulation 返回模拟（用于退出时输出统计）
func (a *App) Simulation() *sim.Simulation {
	return a.simulation
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

// isAgent 判断实体是否仍是场上的代理（帧末删除后组件随实体一起清空）
func isAgent(em *ecs.EntityManager) func(ecs.EntityID) bool {
	return func(id ecs.EntityID) bool {
		return ecs.HasComponent[*components.AgentComponent](em, id)
	}
}

// splitStep 把一帧的模拟时间拆成不超过 maxStep 的等长子步
func splitStep(total, maxStep float64) (int, float64) {
	if total <= 0 || maxStep <= 0 {
		return 0, 0
	}
	n := int(math.Ceil(total/maxStep - 1e-9))
	if n < 1 {
		n = 1
	}
	return n, total / float64(n)
}

// nextAffordableRow 返回第一个买得起的待解锁行
func nextAffordableRow(view game.EconomyView) (int, bool) {
	for _, rl := range view.RowLocks {
		if rl.Affordable {
			return rl.Row, true
		}
	}
	return 0, false
}

// lockedRowAt 返回覆盖 (x, y) 的未解锁格子所在的行
func lockedRowAt(s *sim.Simulation, x, y float64) (int, bool) {
	for _, c := range s.Grid().Cells() {
		if c.IsUnlocked() {
			continue
		}
		if math.Abs(c.X-x) <= 0.5 && math.Abs(c.Y-y) <= 0.5 {
			return c.Row, true
		}
	}
	return 0, false
}
