package main

import (
	"log"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/gonewx/flappy/pkg/game"
)

const termSampleRate = beep.SampleRate(44100)

// beepSound 终端版提示音，实现 game.SoundPlayer
// 与桌面版使用同一组音符，由 beep 合成正弦波播放
type beepSound struct {
	ready  bool
	volume float64
}

// newBeepSound 初始化扬声器
// 失败不致命，返回的播放器保持静音
func newBeepSound(muted bool) *beepSound {
	s := &beepSound{volume: 0.3}
	if muted {
		return s
	}
	if err := speaker.Init(termSampleRate, termSampleRate.N(time.Second/10)); err != nil {
		log.Printf("[Sound] Audio initialization failed: %v", err)
		return s
	}
	s.ready = true
	return s
}

// PlaySound 播放提示音，不等待结束
func (s *beepSound) PlaySound(soundID string) bool {
	if !s.ready || soundID != game.SoundItem {
		return false
	}
	streamer, err := cueStreamer(game.PickupCue())
	if err != nil {
		log.Printf("[Sound] Warning: Failed to build cue %s: %v", soundID, err)
		return false
	}
	speaker.Play(&effects.Volume{Streamer: streamer, Base: 2, Volume: math.Log2(s.volume)})
	return true
}

// cueStreamer 把音符序列拼成一个流
func cueStreamer(tones []game.Tone) (beep.Streamer, error) {
	parts := make([]beep.Streamer, 0, len(tones))
	for _, tone := range tones {
		sine, err := generators.SineTone(termSampleRate, tone.Frequency)
		if err != nil {
			return nil, err
		}
		d := time.Duration(tone.Duration * float64(time.Second))
		parts = append(parts, beep.Take(termSampleRate.N(d), sine))
	}
	return beep.Seq(parts...), nil
}

func (s *beepSound) Close() {
	if s.ready {
		speaker.Close()
	}
}
