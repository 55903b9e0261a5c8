package entities

import (
	"github.com/gonewx/flappy/pkg/components"
	"github.com/gonewx/flappy/pkg/config"
	"github.com/gonewx/flappy/pkg/ecs"
	"github.com/gonewx/flappy/pkg/physics"
)

// ItemBand 道具中心 Y 的取值范围 [Min, Max)
func ItemBand(cfg *config.GameConfig) (minY, maxY float64) {
	minY = cfg.GroundHeight() + cfg.Item.Height/2
	maxY = cfg.World.Height - cfg.Item.Height/2
	return minY, maxY
}

// NewItem 创建道具：可见本体 + 拾取感应区，共用一个运动学刚体
//
// 参数:
//   - em: 实体管理器
//   - world: 物理世界
//   - cfg: 游戏配置
//   - y: 道具中心 Y（世界坐标）
//   - seq: 生成序号
//
// 返回:
//   - ecs.EntityID: 道具实体ID
func NewItem(em *ecs.EntityManager, world *physics.World, cfg *config.GameConfig, y float64, seq int) ecs.EntityID {
	id := em.CreateEntity()
	w, h := cfg.Item.Width, cfg.Item.Height
	velocityX := -(cfg.World.Width + w) / cfg.Item.TravelTime

	body := world.AddBody(physics.BodySpec{
		Kind:  physics.BodyKinematic,
		X:     cfg.World.Width + w/2,
		Y:     y,
		Owner: id,
		Shapes: []physics.ShapeSpec{
			// 本体只用于分类，不与任何类别作用
			{Category: physics.CategoryItem, Width: w, Height: h},
			{
				Category:    physics.CategoryItemScore,
				ContactMask: physics.CategoryBird,
				Sensor:      true,
				Width:       w,
				Height:      h,
			},
		},
	})
	body.SetVelocity(velocityX, 0)

	ecs.AddComponent(em, id, &components.PhysicsBodyComponent{Body: body})
	ecs.AddComponent(em, id, &components.ItemComponent{Sequence: seq})
	ecs.AddComponent(em, id, &components.SpriteComponent{
		Texture: TextureItem,
		Width:   w,
		Height:  h,
		Z:       ZItem,
	})
	ecs.AddComponent(em, id, &components.ScrollComponent{VelocityX: velocityX})
	ecs.AddComponent(em, id, &components.LifetimeComponent{MaxLifetime: cfg.Item.TravelTime})

	return id
}
