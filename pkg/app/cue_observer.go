package app

import (
	"github.com/decker502/pumpkinpatch/pkg/components"
	"github.com/decker502/pumpkinpatch/pkg/ecs"
	"github.com/decker502/pumpkinpatch/pkg/sound"
	"github.com/decker502/pumpkinpatch/pkg/systems"
)

// 被驱赶后闪烁的持续时间（秒）
const scareFlashDuration = 0.3

// soundPlayer 播放音效（*sound.AudioManager 实现了此接口）
type soundPlayer interface {
	PlaySound(soundID string) bool
}

// cueObserver 把代理提示转换成音效和短暂的视觉效果
type cueObserver struct {
	sounds  soundPlayer
	species func(id ecs.EntityID) (components.ForagerSpecies, bool)

	lastCue map[ecs.EntityID]systems.AgentCue
	flashes map[ecs.EntityID]float64
}

func newCueObserver(sounds soundPlayer) *cueObserver {
	return &cueObserver{
		sounds:  sounds,
		lastCue: make(map[ecs.EntityID]systems.AgentCue),
		flashes: make(map[ecs.EntityID]float64),
	}
}

// OnCue 记录提示并播放对应音效
func (o *cueObserver) OnCue(id ecs.EntityID, cue systems.AgentCue) {
	o.lastCue[id] = cue

	switch cue {
	case systems.CueLanding:
		o.play(o.landingSound(id))
	case systems.CueScared:
		o.flashes[id] = scareFlashDuration
		o.play(sound.SoundPoof)
	case systems.CueInteracting:
		o.play(sound.SoundDig)
	}
}

// OnFacing 朝向直接从快照读取，这里不需要处理
func (o *cueObserver) OnFacing(ecs.EntityID, bool) {}

func (o *cueObserver) landingSound(id ecs.EntityID) string {
	if o.species != nil {
		if s, ok := o.species(id); ok && s == components.SpeciesSquirrel {
			return sound.SoundSquirrel
		}
	}
	return sound.SoundCrow
}

func (o *cueObserver) play(soundID string) {
	if o.sounds != nil {
		o.sounds.PlaySound(soundID)
	}
}

// update 推进闪烁计时，清理已移除实体的记录
func (o *cueObserver) update(dt float64, alive func(ecs.EntityID) bool) {
	for id, remaining := range o.flashes {
		remaining -= dt
		if remaining <= 0 {
			delete(o.flashes, id)
		} else {
			o.flashes[id] = remaining
		}
	}
	for id := range o.lastCue {
		if !alive(id) {
			delete(o.lastCue, id)
			delete(o.flashes, id)
		}
	}
}

func (o *cueObserver) isFlashing(id ecs.EntityID) bool {
	return o.flashes[id] > 0
}

func (o *cueObserver) cue(id ecs.EntityID) (systems.AgentCue, bool) {
	c, ok := o.lastCue[id]
	return c, ok
}
