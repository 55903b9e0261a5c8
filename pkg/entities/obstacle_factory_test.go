package entities

import (
	"math"
	"math/rand"
	"testing"

	"github.com/gonewx/flappy/pkg/components"
	"github.com/gonewx/flappy/pkg/config"
	"github.com/gonewx/flappy/pkg/ecs"
	"github.com/gonewx/flappy/pkg/physics"
)

const eps = 1e-9

// TestObstacleLayout_GapPlacement 任意随机偏移下缝隙下沿落在 [baseline, baseline+R)，高度恒为 3 倍小鸟高度
func TestObstacleLayout_GapPlacement(t *testing.T) {
	cfg := config.DefaultGameConfig()
	layout := NewObstacleLayout(cfg)

	wantSlit := 3 * cfg.Player.Height
	if layout.Slit != wantSlit {
		t.Fatalf("Slit: got %v, want %v", layout.Slit, wantSlit)
	}

	rng := rand.New(rand.NewSource(1))
	draws := []float64{0, layout.Range / 2, layout.Range * 0.999}
	for i := 0; i < 200; i++ {
		draws = append(draws, rng.Float64()*layout.Range)
	}

	for _, r := range draws {
		lowerY, upperY, gap := layout.Place(r)

		if gap.Lower < layout.Baseline()-eps || gap.Lower >= layout.Baseline()+layout.Range {
			t.Errorf("r=%v: gap lower %v outside [%v, %v)", r, gap.Lower, layout.Baseline(), layout.Baseline()+layout.Range)
		}
		if math.Abs(gap.Height()-wantSlit) > eps {
			t.Errorf("r=%v: gap height %v, want %v", r, gap.Height(), wantSlit)
		}
		if math.Abs((upperY-lowerY)-(layout.WallHeight+layout.Slit)) > eps {
			t.Errorf("r=%v: walls not stacked directly around the gap", r)
		}
	}
}

// TestObstacleLayout_WallsCoverScreen 默认配置下墙壁足够长，缝隙以外不留空隙
func TestObstacleLayout_WallsCoverScreen(t *testing.T) {
	cfg := config.DefaultGameConfig()
	layout := NewObstacleLayout(cfg)

	for _, r := range []float64{0, layout.Range * 0.999} {
		lowerY, upperY, _ := layout.Place(r)
		if bottom := lowerY - layout.WallHeight/2; bottom > layout.GroundHeight {
			t.Errorf("r=%v: lower wall bottom %v above ground %v", r, bottom, layout.GroundHeight)
		}
		if top := upperY + layout.WallHeight/2; top < layout.WorldHeight {
			t.Errorf("r=%v: upper wall top %v below screen top %v", r, top, layout.WorldHeight)
		}
	}
}

func TestNewObstaclePair(t *testing.T) {
	cfg := config.DefaultGameConfig()
	em := ecs.NewEntityManager()
	world := physics.NewWorld(cfg.World.Gravity)
	layout := NewObstacleLayout(cfg)

	id := NewObstaclePair(em, world, layout, 10, cfg.Obstacle.TravelTime)

	obstacle, ok := ecs.GetComponent[*components.ObstacleComponent](em, id)
	if !ok {
		t.Fatal("ObstacleComponent missing")
	}
	if math.Abs(obstacle.GapHeight-layout.Slit) > eps {
		t.Errorf("GapHeight: got %v, want %v", obstacle.GapHeight, layout.Slit)
	}

	bodyComp, ok := ecs.GetComponent[*components.PhysicsBodyComponent](em, id)
	if !ok {
		t.Fatal("PhysicsBodyComponent missing")
	}
	if bodyComp.Body.ShapeCount() != 3 {
		t.Errorf("pair should have 3 shapes (upper, lower, sensor), got %d", bodyComp.Body.ShapeCount())
	}
	if bodyComp.Body.Owner() != id {
		t.Errorf("body owner: got %d, want %d", bodyComp.Body.Owner(), id)
	}

	x, _ := bodyComp.Body.Position()
	if x != layout.SpawnX() {
		t.Errorf("spawn X: got %v, want %v", x, layout.SpawnX())
	}

	// 4 秒移动 (世界宽度 + 墙宽)
	vx, _ := bodyComp.Body.Velocity()
	if want := -(cfg.World.Width + cfg.Obstacle.WallWidth) / 4.0; math.Abs(vx-want) > eps {
		t.Errorf("velocity: got %v, want %v", vx, want)
	}

	lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](em, id)
	if !ok || lifetime.MaxLifetime != 4.0 {
		t.Errorf("lifetime should be 4.0s, got %+v", lifetime)
	}
}

func TestNewPlayerEntity(t *testing.T) {
	cfg := config.DefaultGameConfig()
	em := ecs.NewEntityManager()
	world := physics.NewWorld(cfg.World.Gravity)

	if _, err := NewPlayerEntity(nil, world, cfg); err == nil {
		t.Error("expected error for nil entity manager")
	}
	if _, err := NewPlayerEntity(em, nil, cfg); err == nil {
		t.Error("expected error for nil world")
	}

	id, err := NewPlayerEntity(em, world, cfg)
	if err != nil {
		t.Fatalf("NewPlayerEntity() error: %v", err)
	}

	player, ok := ecs.GetComponent[*components.PlayerComponent](em, id)
	if !ok || player.Speed != 1 || player.Rotation != 0 {
		t.Errorf("unexpected player component: %+v", player)
	}

	anim, ok := ecs.GetComponent[*components.AnimationComponent](em, id)
	if !ok {
		t.Fatal("AnimationComponent missing")
	}
	if len(anim.Frames) != 2 || anim.FrameSpeed != 0.2 {
		t.Errorf("flap animation: got %+v, want 2 frames at 0.2s", anim)
	}

	body, _ := ecs.GetComponent[*components.PhysicsBodyComponent](em, id)
	x, y := body.Body.Position()
	sx, sy := cfg.PlayerStart()
	if x != sx || y != sy {
		t.Errorf("start position: got (%v, %v), want (%v, %v)", x, y, sx, sy)
	}
}

func TestNewGroundAndClouds(t *testing.T) {
	cfg := config.DefaultGameConfig()
	em := ecs.NewEntityManager()
	world := physics.NewWorld(cfg.World.Gravity)

	NewGround(em, world, cfg)
	clouds := NewClouds(em, cfg)

	wantTiles := int(cfg.World.Width/cfg.Ground.TileWidth) + 2
	tiles := 0
	for _, id := range ecs.GetEntitiesWith2[*components.SpriteComponent, *components.ScrollComponent](em) {
		sprite, _ := ecs.GetComponent[*components.SpriteComponent](em, id)
		if sprite.Texture == TextureGround {
			tiles++
		}
	}
	if tiles != wantTiles {
		t.Errorf("ground tiles: got %d, want %d", tiles, wantTiles)
	}

	if want := int(cfg.World.Width/cfg.Cloud.TileWidth) + 2; len(clouds) != want {
		t.Errorf("clouds: got %d, want %d", len(clouds), want)
	}
	if world.BodyCount() != 1 {
		t.Errorf("ground should add exactly one body, got %d", world.BodyCount())
	}
}

func TestNewItem(t *testing.T) {
	cfg := config.DefaultGameConfig()
	em := ecs.NewEntityManager()
	world := physics.NewWorld(cfg.World.Gravity)

	minY, maxY := ItemBand(cfg)
	if minY != cfg.GroundHeight()+cfg.Item.Height/2 || maxY != cfg.World.Height-cfg.Item.Height/2 {
		t.Errorf("ItemBand: got [%v, %v)", minY, maxY)
	}

	id := NewItem(em, world, cfg, 300, 1)
	item, ok := ecs.GetComponent[*components.ItemComponent](em, id)
	if !ok || item.Sequence != 1 {
		t.Errorf("ItemComponent: got %+v", item)
	}

	body, _ := ecs.GetComponent[*components.PhysicsBodyComponent](em, id)
	if body.Body.ShapeCount() != 2 {
		t.Errorf("item should have 2 shapes, got %d", body.Body.ShapeCount())
	}
	lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](em, id)
	if lifetime.MaxLifetime != 4.5 {
		t.Errorf("item lifetime: got %v, want 4.5", lifetime.MaxLifetime)
	}
}
