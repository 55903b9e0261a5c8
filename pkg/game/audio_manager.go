package game

import (
	"encoding/binary"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SoundItem 拾取道具的提示音
const SoundItem = "item"

// SoundPlayer 播放一次性提示音
// 桌面端由 AudioManager 实现，终端版由 beep 实现，测试中用记录器替代
type SoundPlayer interface {
	PlaySound(soundID string) bool
}

// Tone 合成提示音的一个音符
type Tone struct {
	Frequency float64 // 频率（Hz）
	Duration  float64 // 时长（秒）
}

// PickupCue 拾取道具提示音：两个上行的短音
func PickupCue() []Tone {
	return []Tone{
		{Frequency: 988, Duration: 0.06},
		{Frequency: 1319, Duration: 0.12},
	}
}

// SynthesizeCue 把音符序列合成为 16 位小端双声道 PCM
// 每个音符是线性衰减的正弦波，避免首尾爆音
func SynthesizeCue(sampleRate int, tones []Tone) []byte {
	total := 0
	for _, tone := range tones {
		total += int(float64(sampleRate) * tone.Duration)
	}

	buf := make([]byte, 0, total*4)
	var frame [4]byte
	for _, tone := range tones {
		n := int(float64(sampleRate) * tone.Duration)
		for i := 0; i < n; i++ {
			env := 1 - float64(i)/float64(n)
			v := math.Sin(2*math.Pi*tone.Frequency*float64(i)/float64(sampleRate)) * env * 0.3
			sample := int16(v * math.MaxInt16)
			binary.LittleEndian.PutUint16(frame[0:2], uint16(sample))
			binary.LittleEndian.PutUint16(frame[2:4], uint16(sample))
			buf = append(buf, frame[:]...)
		}
	}
	return buf
}

// AudioManager 音频管理器
// 游戏不加载音频文件，提示音在启动时合成并缓存为播放器
type AudioManager struct {
	context         *audio.Context           // 音频上下文，可为 nil（静音）
	settingsManager *SettingsManager         // 设置管理器（用于读取音量设置，可为 nil）
	cues            map[string][]byte        // 提示音 PCM（资源ID -> 数据）
	soundPlayers    map[string]*audio.Player // 音效播放器缓存
}

// NewAudioManager 创建新的音频管理器并注册拾取提示音
//
// 参数：
//   - ctx: ebiten 音频上下文，nil 表示静音
//   - sm: SettingsManager 实例（用于读取音量设置，可为 nil）
//
// 返回：
//   - *AudioManager: 音频管理器实例
func NewAudioManager(ctx *audio.Context, sm *SettingsManager) *AudioManager {
	am := &AudioManager{
		context:         ctx,
		settingsManager: sm,
		cues:            make(map[string][]byte),
		soundPlayers:    make(map[string]*audio.Player),
	}
	if ctx != nil {
		am.RegisterCue(SoundItem, SynthesizeCue(ctx.SampleRate(), PickupCue()))
	}
	return am
}

// RegisterCue 注册（或替换）一个提示音
func (am *AudioManager) RegisterCue(soundID string, pcm []byte) {
	am.cues[soundID] = pcm
	delete(am.soundPlayers, soundID)
}

// PlaySound 播放音效，不等待播放结束
//
// 返回：
//   - bool: 是否成功播放（静音、音效关闭或未注册时返回 false）
func (am *AudioManager) PlaySound(soundID string) bool {
	if am.settingsManager != nil && !am.settingsManager.GetSettings().SoundEnabled {
		return false
	}

	player := am.getSoundPlayer(soundID)
	if player == nil {
		return false
	}

	player.SetVolume(am.getSoundVolume())
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", soundID, err)
	}
	player.Play()
	return true
}

// getSoundPlayer 获取或创建音效播放器
func (am *AudioManager) getSoundPlayer(soundID string) *audio.Player {
	if am.context == nil {
		return nil
	}
	if player, ok := am.soundPlayers[soundID]; ok {
		return player
	}

	pcm, ok := am.cues[soundID]
	if !ok {
		log.Printf("[AudioManager] Warning: Unknown sound %s", soundID)
		return nil
	}
	player := am.context.NewPlayerFromBytes(pcm)
	am.soundPlayers[soundID] = player
	return player
}

// getSoundVolume 获取当前音效音量
func (am *AudioManager) getSoundVolume() float64 {
	if am.settingsManager == nil {
		return 1.0
	}
	return am.settingsManager.GetSettings().SoundVolume
}
