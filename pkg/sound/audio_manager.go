// Package sound 合成并播放观察窗口的提示音效
//
// 核心模拟不依赖此包，无头模式和 pkg/game 的测试不需要音频驱动。
package sound

import (
	"encoding/binary"
	"log"
	"math"

	"github.com/decker502/pumpkinpatch/pkg/game"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// AudioSampleRate 音频采样率
const AudioSampleRate = 48000

// 音效资源ID
const (
	SoundCrow     = "SOUND_CROW"     // 乌鸦降落
	SoundSquirrel = "SOUND_SQUIRREL" // 松鼠降落
	SoundPoof     = "SOUND_POOF"     // 驱赶
	SoundDig      = "SOUND_DIG"      // 工人开始交互
	SoundPurchase = "SOUND_PURCHASE" // 购买成功
)

// toneSpec 合成音效的参数
type toneSpec struct {
	startFreq float64 // 起始频率 (Hz)
	endFreq   float64 // 结束频率 (Hz)，与起始频率不同时产生滑音
	duration  float64 // 时长（秒）
	noise     float64 // 噪声混合比例 [0, 1]
}

// soundSpecs 所有音效都在启动时合成，不依赖外部音频文件
var soundSpecs = map[string]toneSpec{
	SoundCrow:     {startFreq: 620, endFreq: 380, duration: 0.22, noise: 0.35},
	SoundSquirrel: {startFreq: 1800, endFreq: 2400, duration: 0.08, noise: 0.1},
	SoundPoof:     {startFreq: 180, endFreq: 90, duration: 0.18, noise: 0.8},
	SoundDig:      {startFreq: 140, endFreq: 120, duration: 0.06, noise: 0.6},
	SoundPurchase: {startFreq: 880, endFreq: 1320, duration: 0.12, noise: 0},
}

// AudioManager 音效管理器
// 职责：
//   - 统一管理代理提示和购买反馈的音效播放
//   - 实现音量控制（从 SettingsManager 读取设置）
//
// audio.Context 为 nil 时进入静音降级模式，所有播放请求返回 false。
type AudioManager struct {
	context         *audio.Context
	settingsManager *game.SettingsManager    // 设置管理器（用于读取音量设置，可为 nil）
	soundPlayers    map[string]*audio.Player // 音效播放器缓存（资源ID -> 播放器）
}

// NewAudioManager 创建新的音效管理器
//
// 参数：
//   - ctx: 音频上下文，可为 nil（静音模式）
//   - sm: SettingsManager 实例（用于读取音量设置，可为 nil）
func NewAudioManager(ctx *audio.Context, sm *game.SettingsManager) *AudioManager {
	return &AudioManager{
		context:         ctx,
		settingsManager: sm,
		soundPlayers:    make(map[string]*audio.Player),
	}
}

// PlaySound 播放音效（单次播放）
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlaySound(soundID string) bool {
	if am.context == nil {
		return false
	}

	volume := 1.0
	if am.settingsManager != nil {
		settings := am.settingsManager.GetSettings()
		if !settings.SoundEnabled {
			return false
		}
		volume = settings.SoundVolume
	}

	player := am.getSoundPlayer(soundID)
	if player == nil {
		return false
	}

	player.SetVolume(volume)
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", soundID, err)
	}
	player.Play()
	return true
}

// getSoundPlayer 获取或创建音效播放器
func (am *AudioManager) getSoundPlayer(soundID string) *audio.Player {
	if player, ok := am.soundPlayers[soundID]; ok {
		return player
	}

	spec, ok := soundSpecs[soundID]
	if !ok {
		log.Printf("[AudioManager] Warning: unknown sound %s", soundID)
		return nil
	}

	player := am.context.NewPlayerFromBytes(synthesize(spec, AudioSampleRate))
	am.soundPlayers[soundID] = player
	return player
}

// synthesize 生成 16 位小端立体声 PCM
// 波形为滑音正弦叠加确定性噪声，带指数衰减包络
func synthesize(spec toneSpec, sampleRate int) []byte {
	samples := int(spec.duration * float64(sampleRate))
	buf := make([]byte, samples*4)

	phase := 0.0
	seed := uint32(2463534242)
	for i := 0; i < samples; i++ {
		t := float64(i) / float64(samples)
		freq := spec.startFreq + (spec.endFreq-spec.startFreq)*t
		phase += 2 * math.Pi * freq / float64(sampleRate)

		// xorshift 噪声，保证每次合成结果一致
		seed ^= seed << 13
		seed ^= seed >> 17
		seed ^= seed << 5
		noise := float64(seed)/float64(math.MaxUint32)*2 - 1

		envelope := math.Exp(-4 * t)
		v := ((1-spec.noise)*math.Sin(phase) + spec.noise*noise) * envelope * 0.5
		sample := int16(v * math.MaxInt16)

		binary.LittleEndian.PutUint16(buf[i*4:], uint16(sample))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(sample))
	}
	return buf
}
