package systems

import (
	"math"
	"testing"

	"github.com/gonewx/flappy/pkg/components"
	"github.com/gonewx/flappy/pkg/ecs"
	"github.com/gonewx/flappy/pkg/entities"
)

func newTestPlayer(t *testing.T, tw *testWorld) *PlayerSystem {
	t.Helper()
	id, err := entities.NewPlayerEntity(tw.em, tw.world, tw.cfg)
	if err != nil {
		t.Fatalf("NewPlayerEntity failed: %v", err)
	}
	ps, err := NewPlayerSystem(tw.em, id, tw.cfg)
	if err != nil {
		t.Fatalf("NewPlayerSystem failed: %v", err)
	}
	return ps
}

func TestNewPlayerSystemRequiresComponents(t *testing.T) {
	tw := newTestWorld(t)
	id := tw.em.CreateEntity()
	if _, err := NewPlayerSystem(tw.em, id, tw.cfg); err == nil {
		t.Error("expected error for entity without PlayerComponent")
	}
}

func TestPlayerFlapResetsVelocity(t *testing.T) {
	tests := []struct {
		name  string
		mass  float64
		prior float64
	}{
		{"falling fast", 1, -400},
		{"rising", 1, 180},
		{"at rest", 1, 0},
		{"heavy bird", 2, -100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := newTestWorld(t)
			tw.cfg.Player.Mass = tt.mass
			ps := newTestPlayer(t, tw)

			ps.Body().SetVelocity(30, tt.prior)
			ps.Flap()

			vx, vy := ps.Body().Velocity()
			want := tw.cfg.Player.FlapImpulse / tt.mass
			if vy != want {
				t.Errorf("vy after flap = %v, want %v", vy, want)
			}
			if vx != 0 {
				t.Errorf("vx after flap = %v, want 0", vx)
			}
		})
	}
}

func TestPlayerFlapAnimation(t *testing.T) {
	tw := newTestWorld(t)
	ps := newTestPlayer(t, tw)
	sprite, _ := ecs.GetComponent[*components.SpriteComponent](tw.em, ps.PlayerID())

	if sprite.Texture != entities.TextureBirdA {
		t.Fatalf("initial texture = %q, want %q", sprite.Texture, entities.TextureBirdA)
	}

	ps.Update(tw.cfg.Player.FrameTime)
	if sprite.Texture != entities.TextureBirdB {
		t.Errorf("after one frame texture = %q, want %q", sprite.Texture, entities.TextureBirdB)
	}

	ps.Update(tw.cfg.Player.FrameTime)
	if sprite.Texture != entities.TextureBirdA {
		t.Errorf("after two frames texture = %q, want %q", sprite.Texture, entities.TextureBirdA)
	}
}

func TestPlayerDeathRoll(t *testing.T) {
	tw := newTestWorld(t)
	ps := newTestPlayer(t, tw)

	_, y := ps.Body().Position()
	target := math.Pi * y * tw.cfg.Player.RollFactor

	ps.StartDeathRoll()
	if !ps.Rolling() {
		t.Fatal("player should be rolling")
	}

	half := tw.cfg.Player.RollDuration / 2
	ps.Update(half)
	if got := ps.Rotation(); math.Abs(got-target/2) > 1e-3 {
		t.Errorf("rotation halfway = %v, want ~%v", got, target/2)
	}
	if ps.Speed() != 1 {
		t.Errorf("speed during roll = %v, want 1", ps.Speed())
	}

	ps.Update(half)
	if ps.Rolling() {
		t.Error("roll should be finished")
	}
	if ps.Speed() != 0 {
		t.Errorf("speed after roll = %v, want 0", ps.Speed())
	}
	if ps.Rotation() != target {
		t.Errorf("final rotation = %v, want %v", ps.Rotation(), target)
	}

	// 冻结后动画不再切换
	sprite, _ := ecs.GetComponent[*components.SpriteComponent](tw.em, ps.PlayerID())
	texture := sprite.Texture
	ps.Update(1)
	if sprite.Texture != texture {
		t.Errorf("animation advanced while frozen: %q -> %q", texture, sprite.Texture)
	}
}

func TestPlayerDeathRollIdempotent(t *testing.T) {
	tw := newTestWorld(t)
	ps := newTestPlayer(t, tw)

	ps.StartDeathRoll()
	ps.Update(0.25)
	ps.StartDeathRoll()
	ps.Update(0.75)

	if ps.Rolling() || ps.Speed() != 0 {
		t.Errorf("second StartDeathRoll must not extend the roll: rolling=%v speed=%v", ps.Rolling(), ps.Speed())
	}

	// 冻结后再调用也不会重新开始
	ps.StartDeathRoll()
	if ps.Rolling() {
		t.Error("StartDeathRoll on frozen player must be ignored")
	}
}

func TestPlayerReset(t *testing.T) {
	tw := newTestWorld(t)
	ps := newTestPlayer(t, tw)

	for i := 0; i < 30; i++ {
		tw.world.Step(testFrame)
	}
	ps.StartDeathRoll()
	ps.Update(tw.cfg.Player.RollDuration)
	ps.Reset()

	x, y := ps.Body().Position()
	sx, sy := tw.cfg.PlayerStart()
	if x != sx || y != sy {
		t.Errorf("position after reset = (%v, %v), want (%v, %v)", x, y, sx, sy)
	}
	vx, vy := ps.Body().Velocity()
	if vx != 0 || vy != 0 {
		t.Errorf("velocity after reset = (%v, %v), want 0", vx, vy)
	}
	if ps.Rotation() != 0 || ps.Rolling() || ps.Speed() != 1 {
		t.Errorf("state after reset: rotation=%v rolling=%v speed=%v", ps.Rotation(), ps.Rolling(), ps.Speed())
	}

	// 动画恢复运行
	sprite, _ := ecs.GetComponent[*components.SpriteComponent](tw.em, ps.PlayerID())
	ps.Update(tw.cfg.Player.FrameTime)
	if sprite.Texture != entities.TextureBirdB {
		t.Errorf("animation should resume after reset, texture = %q", sprite.Texture)
	}
}

func TestPlayerResetDuringRoll(t *testing.T) {
	tw := newTestWorld(t)
	ps := newTestPlayer(t, tw)

	ps.StartDeathRoll()
	ps.Update(tw.cfg.Player.RollDuration / 2)
	ps.Reset()

	// 只剩重新注册的扇翅动画
	if p := ps.clock.Pending(); p != 1 {
		t.Fatalf("pending tasks after reset = %d, want 1", p)
	}

	// 被取消的翻滚不会在之后冻结玩家
	ps.Update(tw.cfg.Player.RollDuration)
	if ps.Speed() != 1 || ps.Rolling() {
		t.Errorf("cancelled roll still applied: speed=%v rolling=%v", ps.Speed(), ps.Rolling())
	}
	if ps.Rotation() != 0 {
		t.Errorf("rotation after reset = %v, want 0", ps.Rotation())
	}
}

func TestPlayerFallsUnderGravity(t *testing.T) {
	tw := newTestWorld(t)
	ps := newTestPlayer(t, tw)

	_, y0 := ps.Body().Position()
	for i := 0; i < 32; i++ {
		tw.world.Step(testFrame)
	}
	_, y1 := ps.Body().Position()
	_, vy := ps.Body().Velocity()
	if y1 >= y0 {
		t.Errorf("player should fall: y %v -> %v", y0, y1)
	}
	if vy >= 0 {
		t.Errorf("vy should be negative while falling, got %v", vy)
	}
}
