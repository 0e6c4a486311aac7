package app

import (
	"fmt"
	"image/color"

	"github.com/decker502/pumpkinpatch/pkg/components"
	"github.com/decker502/pumpkinpatch/pkg/config"
	"github.com/decker502/pumpkinpatch/pkg/field"
	"github.com/decker502/pumpkinpatch/pkg/sim"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

var (
	soilColor      = color.RGBA{R: 110, G: 74, B: 44, A: 255}
	sproutColor    = color.RGBA{R: 70, G: 190, B: 60, A: 255}
	pumpkinColor   = color.RGBA{R: 240, G: 130, B: 20, A: 255}
	lanternColor   = color.RGBA{R: 255, G: 214, B: 60, A: 255}
	witheredColor  = color.RGBA{R: 96, G: 84, B: 60, A: 255}
	lockedColor    = color.RGBA{R: 20, G: 20, B: 20, A: 140}
	homeColor      = color.RGBA{R: 150, G: 150, B: 160, A: 255}
	planterColor   = color.RGBA{R: 60, G: 110, B: 220, A: 255}
	harvesterColor = color.RGBA{R: 200, G: 40, B: 40, A: 255}
	crowColor      = color.RGBA{R: 25, G: 25, B: 30, A: 255}
	squirrelColor  = color.RGBA{R: 170, G: 90, B: 40, A: 255}
	flashColor     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	hudColor       = color.RGBA{R: 255, G: 250, B: 230, A: 255}
	hudDimColor    = color.RGBA{R: 170, G: 170, B: 150, A: 255}
	hudPanelColor  = color.RGBA{R: 0, G: 0, B: 0, A: 120}
)

// cellColor 返回格子主体颜色；生长中的格子以土壤为底色
func cellColor(c *field.Cell) color.RGBA {
	switch c.State() {
	case field.CellReady:
		if c.IsSpecial() {
			return lanternColor
		}
		return pumpkinColor
	case field.CellWithered:
		return witheredColor
	default:
		return soilColor
	}
}

// agentColor 返回代理的颜色
func agentColor(v sim.AgentView) color.RGBA {
	if v.Kind == components.AgentForager {
		if v.Species == components.SpeciesSquirrel {
			return squirrelColor
		}
		return crowColor
	}
	if v.Role == components.RoleHarvester {
		return harvesterColor
	}
	return planterColor
}

// fillRect 用 1x1 白色像素缩放绘制纯色矩形
func (a *App) fillRect(dst *ebiten.Image, x, y, w, h float64, clr color.Color) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	dst.DrawImage(a.pixel, op)
}

// fillCentered 以屏幕坐标 (cx, cy) 为中心绘制矩形
func (a *App) fillCentered(dst *ebiten.Image, cx, cy, size float64, clr color.Color) {
	a.fillRect(dst, cx-size/2, cy-size/2, size, size, clr)
}

func (a *App) drawField(screen *ebiten.Image) {
	grid := a.simulation.Grid()
	for _, c := range grid.Cells() {
		sx, sy := config.WorldToScreen(c.X, c.Y)
		a.fillCentered(screen, sx, sy, config.CellDrawSize, cellColor(c))

		if c.State() == field.CellGrowing && grid.GrowDuration() > 0 {
			// 幼苗随生长进度变大
			progress := 1 - c.GrowthRemaining()/grid.GrowDuration()
			if progress < 0.15 {
				progress = 0.15
			}
			a.fillCentered(screen, sx, sy, config.CellDrawSize*0.7*progress, sproutColor)
		}
		if !c.IsUnlocked() {
			a.fillCentered(screen, sx, sy, config.CellDrawSize, lockedColor)
		}
	}

	// 旋耕机的墓碑
	hx, hy := config.WorldToScreen(a.homeX, a.homeY)
	a.fillCentered(screen, hx, hy, config.AgentDrawSize*1.4, homeColor)
}

func (a *App) drawAgents(screen *ebiten.Image) {
	for _, v := range a.simulation.Agents() {
		sx, sy := config.WorldToScreen(v.X, v.Y)
		clr := agentColor(v)
		if a.observer.isFlashing(v.ID) {
			clr = flashColor
		}
		a.fillCentered(screen, sx, sy, config.AgentDrawSize, clr)

		// 朝向标记
		mark := config.AgentDrawSize / 2
		if v.FlipX {
			mark = -mark
		}
		a.fillCentered(screen, sx+mark, sy-config.AgentDrawSize/4, 5, hudColor)
	}
}

func (a *App) drawHUD(screen *ebiten.Image) {
	view := a.simulation.View()
	s := a.settings.GetSettings()

	lines := []hudLine{
		{fmt.Sprintf("Pumpkins: %s", view.BalanceText), hudColor},
		{fmt.Sprintf("Passive: +%.2f", view.PassiveRate), hudDimColor},
		{fmt.Sprintf("Time %.0fs  x%.2g", a.simulation.Elapsed(), s.SimSpeed), hudDimColor},
	}
	if !a.simulation.ForagerSpawning() {
		lines = append(lines, hudLine{"Foragers off", hudDimColor})
	}
	if a.paused {
		lines = append(lines, hudLine{"PAUSED", lanternColor})
	}
	lines = append(lines, hudLine{"", hudColor})

	for i, u := range view.Upgrades {
		clr := hudDimColor
		if u.Purchasable {
			clr = hudColor
		}
		lines = append(lines, hudLine{
			fmt.Sprintf("[%d] %-12s %7s  %s", i+1, u.Name, u.PriceText, u.RankText), clr,
		})
	}

	if len(view.RowLocks) > 0 {
		lines = append(lines, hudLine{"", hudColor}, hudLine{"Locked rows [U]", hudDimColor})
		for _, rl := range view.RowLocks {
			clr := hudDimColor
			if rl.Affordable {
				clr = hudColor
			}
			lines = append(lines, hudLine{fmt.Sprintf("  row %d  %s", rl.Row+1, rl.CostText), clr})
		}
	}

	panelH := float64(len(lines)*config.HUDLineHeight + 2*config.HUDMarginY)
	a.fillRect(screen, config.HUDMarginX-6, 0, config.GameWindowWidth-config.HUDMarginX+6, panelH, hudPanelColor)

	y := float64(config.HUDMarginY)
	for _, l := range lines {
		a.drawText(screen, l.text, config.HUDMarginX, y, l.clr)
		y += config.HUDLineHeight
	}

	help := "click: plant/harvest/scare  1-6 buy  U unlock  +/- speed  Space pause  F forager  G auto-foragers  D debug  M sound  F11 fullscreen"
	a.drawText(screen, help, 10, config.GameWindowHeight-config.HUDLineHeight-4, hudDimColor)
}

type hudLine struct {
	text string
	clr  color.Color
}

func (a *App) drawText(screen *ebiten.Image, str string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, a.face, op)
}

// drawDebug 在每个代理旁边显示状态和最近一次提示
func (a *App) drawDebug(screen *ebiten.Image) {
	for _, v := range a.simulation.Agents() {
		sx, sy := config.WorldToScreen(v.X, v.Y)
		label := v.State.String()
		if cue, ok := a.observer.cue(v.ID); ok {
			label += "/" + cue.String()
		}
		if v.Kind == components.AgentForager {
			label += fmt.Sprintf(" s%d", v.Scares)
		}
		ebitenutil.DebugPrintAt(screen, label, int(sx)+12, int(sy)-8)
	}
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("TPS %.1f  FPS %.1f  entities %d", ebiten.ActualTPS(), ebiten.ActualFPS(), a.simulation.EntityManager().Count()),
		10, 10)
}
