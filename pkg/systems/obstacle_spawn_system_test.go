package systems

import (
	"math"
	"testing"

	"github.com/gonewx/flappy/pkg/components"
	"github.com/gonewx/flappy/pkg/config"
	"github.com/gonewx/flappy/pkg/ecs"
)

func countObstacles(em *ecs.EntityManager) int {
	return len(ecs.GetEntitiesWith1[*components.ObstacleComponent](em))
}

func TestObstacleSpawnEveryInterval(t *testing.T) {
	tw := newTestWorld(t)
	scroll := NewScrollSystem(tw.em)
	spawner := NewObstacleSpawnSystem(tw.em, tw.world, scroll.Clock(), tw.cfg, newTestRand())
	spawner.Start()

	// 2.0 秒 = 128 帧，第 127 帧时还没有生成
	advanceFrames(scroll, 127)
	if n := countObstacles(tw.em); n != 0 {
		t.Fatalf("before first interval: %d pairs, want 0", n)
	}

	advanceFrames(scroll, 1)
	if n := countObstacles(tw.em); n != 1 {
		t.Fatalf("after 2.0s: %d pairs, want 1", n)
	}

	advanceFrames(scroll, 128)
	if n := countObstacles(tw.em); n != 2 {
		t.Errorf("after 4.0s: %d pairs, want 2", n)
	}
	if spawner.Spawned() != 2 {
		t.Errorf("Spawned() = %d, want 2", spawner.Spawned())
	}
}

func TestObstacleSpawnPausedWhenScrollStopped(t *testing.T) {
	tw := newTestWorld(t)
	scroll := NewScrollSystem(tw.em)
	spawner := NewObstacleSpawnSystem(tw.em, tw.world, scroll.Clock(), tw.cfg, newTestRand())
	spawner.Start()

	advanceFrames(scroll, 64)
	scroll.SetSpeed(0)
	advanceFrames(scroll, 640)
	if n := countObstacles(tw.em); n != 0 {
		t.Fatalf("spawned %d pairs while scroll stopped", n)
	}

	// 恢复后只需再走完剩下的 1 秒
	scroll.SetSpeed(1)
	advanceFrames(scroll, 64)
	if n := countObstacles(tw.em); n != 1 {
		t.Errorf("after resume: %d pairs, want 1", n)
	}
}

func TestObstacleSpawnRearmRestartsInterval(t *testing.T) {
	tw := newTestWorld(t)
	scroll := NewScrollSystem(tw.em)
	spawner := NewObstacleSpawnSystem(tw.em, tw.world, scroll.Clock(), tw.cfg, newTestRand())
	spawner.Start()

	advanceFrames(scroll, 96) // 1.5s
	spawner.Rearm()
	advanceFrames(scroll, 96) // 重新计时后 1.5s
	if n := countObstacles(tw.em); n != 0 {
		t.Fatalf("rearm should restart the interval, got %d pairs", n)
	}
	advanceFrames(scroll, 32)
	if n := countObstacles(tw.em); n != 1 {
		t.Errorf("2.0s after rearm: %d pairs, want 1", n)
	}
}

func TestObstacleSpawnStartIdempotent(t *testing.T) {
	tw := newTestWorld(t)
	scroll := NewScrollSystem(tw.em)
	spawner := NewObstacleSpawnSystem(tw.em, tw.world, scroll.Clock(), tw.cfg, newTestRand())
	spawner.Start()
	spawner.Start()

	advanceFrames(scroll, 128)
	if n := countObstacles(tw.em); n != 1 {
		t.Errorf("double Start spawned %d pairs, want 1", n)
	}
	if p := scroll.Clock().Pending(); p != 1 {
		t.Errorf("pending tasks = %d, want 1", p)
	}

	spawner.Stop()
	advanceFrames(scroll, 256)
	if n := countObstacles(tw.em); n != 1 {
		t.Errorf("stopped spawner kept spawning: %d pairs", n)
	}
}

func TestObstacleSpawnGapPlacement(t *testing.T) {
	tw := newTestWorld(t)
	scroll := NewScrollSystem(tw.em)
	spawner := NewObstacleSpawnSystem(tw.em, tw.world, scroll.Clock(), tw.cfg, newTestRand())
	layout := spawner.Layout()
	baseline := layout.Baseline()
	slit := tw.cfg.Player.Height * tw.cfg.Obstacle.GapFactor

	for i := 0; i < 200; i++ {
		id := spawner.Spawn()
		obstacle, ok := ecs.GetComponent[*components.ObstacleComponent](tw.em, id)
		if !ok {
			t.Fatalf("spawned entity %d has no ObstacleComponent", id)
		}
		if obstacle.GapLower < baseline || obstacle.GapLower >= baseline+layout.Range {
			t.Errorf("gap lower %v outside [%v, %v)", obstacle.GapLower, baseline, baseline+layout.Range)
		}
		if math.Abs(obstacle.GapHeight-slit) > 1e-9 {
			t.Errorf("gap height = %v, want %v", obstacle.GapHeight, slit)
		}
	}
}

func TestObstacleSpawnInvalidConfigPanics(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *config.GameConfig)
	}{
		{"zero interval", func(cfg *config.GameConfig) { cfg.Obstacle.Interval = 0 }},
		{"negative interval", func(cfg *config.GameConfig) { cfg.Obstacle.Interval = -1 }},
		{"zero travel time", func(cfg *config.GameConfig) { cfg.Obstacle.TravelTime = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := newTestWorld(t)
			tt.mutate(tw.cfg)
			scroll := NewScrollSystem(tw.em)
			expectPanic(t, tt.name, func() {
				NewObstacleSpawnSystem(tw.em, tw.world, scroll.Clock(), tw.cfg, nil)
			})
		})
	}
}
