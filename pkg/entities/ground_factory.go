package entities

import (
	"github.com/gonewx/flappy/pkg/components"
	"github.com/gonewx/flappy/pkg/config"
	"github.com/gonewx/flappy/pkg/ecs"
	"github.com/gonewx/flappy/pkg/physics"
)

// tilesToCover 铺满宽度所需的贴图数量（多两块用于循环滚动）
func tilesToCover(width, tileWidth float64) int {
	return int(width/tileWidth) + 2
}

// NewGround 创建地面
// 物理上是一块静止的长条；视觉上是一排循环滚动的贴图
//
// 返回:
//   - ecs.EntityID: 地面物理实体ID
func NewGround(em *ecs.EntityManager, world *physics.World, cfg *config.GameConfig) ecs.EntityID {
	groundH := cfg.GroundHeight()
	tileW := cfg.Ground.TileWidth

	id := em.CreateEntity()
	body := world.AddBody(physics.BodySpec{
		Kind:  physics.BodyStatic,
		X:     cfg.World.Width / 2,
		Y:     groundH / 2,
		Owner: id,
		Shapes: []physics.ShapeSpec{{
			Category:      physics.CategoryGround,
			CollisionMask: physics.CategoryBird,
			Width:         cfg.World.Width + 2*tileW,
			Height:        groundH,
		}},
	})
	ecs.AddComponent(em, id, &components.PhysicsBodyComponent{Body: body})

	for i := 0; i < tilesToCover(cfg.World.Width, tileW); i++ {
		tile := em.CreateEntity()
		ecs.AddComponent(em, tile, &components.PositionComponent{
			X: tileW/2 + tileW*float64(i),
			Y: groundH / 2,
		})
		ecs.AddComponent(em, tile, &components.SpriteComponent{
			Texture: TextureGround,
			Width:   tileW,
			Height:  groundH,
			Z:       ZGround,
		})
		ecs.AddComponent(em, tile, &components.ScrollComponent{
			VelocityX: -tileW / cfg.Ground.Period,
			LoopWidth: tileW,
		})
	}

	return id
}

// NewClouds 创建屏幕顶部循环滚动的云层（纯装饰，无物理）
func NewClouds(em *ecs.EntityManager, cfg *config.GameConfig) []ecs.EntityID {
	cloudW := cfg.Cloud.TileWidth
	cloudH := cfg.Cloud.TileHeight

	n := tilesToCover(cfg.World.Width, cloudW)
	ids := make([]ecs.EntityID, 0, n)
	for i := 0; i < n; i++ {
		id := em.CreateEntity()
		ecs.AddComponent(em, id, &components.PositionComponent{
			X: cloudW/2 + cloudW*float64(i),
			Y: cfg.World.Height - cloudH/2,
		})
		ecs.AddComponent(em, id, &components.SpriteComponent{
			Texture: TextureCloud,
			Width:   cloudW,
			Height:  cloudH,
			Z:       ZCloud,
		})
		ecs.AddComponent(em, id, &components.ScrollComponent{
			VelocityX: -cloudW / cfg.Cloud.Period,
			LoopWidth: cloudW,
		})
		ids = append(ids, id)
	}
	return ids
}
