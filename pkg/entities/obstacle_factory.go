package entities

import (
	"github.com/gonewx/flappy/pkg/components"
	"github.com/gonewx/flappy/pkg/config"
	"github.com/gonewx/flappy/pkg/ecs"
	"github.com/gonewx/flappy/pkg/physics"
)

// ObstacleLayout 障碍对的几何参数（与随机数无关的部分）
type ObstacleLayout struct {
	WorldWidth   float64
	WorldHeight  float64
	GroundHeight float64
	WallWidth    float64
	WallHeight   float64
	PlayerWidth  float64
	Slit         float64 // 缝隙高度
	Range        float64 // 缝隙随机浮动范围 [0, Range)
}

// NewObstacleLayout 从配置计算障碍几何参数
func NewObstacleLayout(cfg *config.GameConfig) ObstacleLayout {
	return ObstacleLayout{
		WorldWidth:   cfg.World.Width,
		WorldHeight:  cfg.World.Height,
		GroundHeight: cfg.GroundHeight(),
		WallWidth:    cfg.Obstacle.WallWidth,
		WallHeight:   cfg.Obstacle.WallHeight,
		PlayerWidth:  cfg.Player.Width,
		Slit:         cfg.Player.Height * cfg.Obstacle.GapFactor,
		Range:        cfg.Player.Height * cfg.Obstacle.RangeFactor,
	}
}

// CenterY 地面以上区域的垂直中心
func (l ObstacleLayout) CenterY() float64 {
	return l.GroundHeight + (l.WorldHeight-l.GroundHeight)/2
}

// LowestLowerWallY 下墙中心的最低位置（随机偏移为 0 时）
func (l ObstacleLayout) LowestLowerWallY() float64 {
	return l.CenterY() - l.Slit/2 - l.WallHeight/2 - l.Range/2
}

// Baseline 缝隙下沿的最低位置
func (l ObstacleLayout) Baseline() float64 {
	return l.LowestLowerWallY() + l.WallHeight/2
}

// Place 根据随机偏移 r ∈ [0, Range) 计算上下墙中心和缝隙
func (l ObstacleLayout) Place(r float64) (lowerY, upperY float64, gap components.Gap) {
	lowerY = l.LowestLowerWallY() + r
	upperY = lowerY + l.WallHeight + l.Slit
	gap = components.Gap{
		Lower: lowerY + l.WallHeight/2,
		Upper: upperY - l.WallHeight/2,
	}
	return lowerY, upperY, gap
}

// SpawnX 障碍对生成时的中心 X（刚好在屏幕右侧外）
func (l ObstacleLayout) SpawnX() float64 {
	return l.WorldWidth + l.WallWidth/2
}

// TravelDistance 从生成到销毁移动的总距离
func (l ObstacleLayout) TravelDistance() float64 {
	return l.WorldWidth + l.WallWidth
}

// SensorOffsetX 计分感应区相对于障碍对中心的 X 偏移（上墙后缘再往后半个小鸟宽）
func (l ObstacleLayout) SensorOffsetX() float64 {
	return l.WallWidth + l.PlayerWidth/2
}

// NewObstaclePair 创建一对墙壁和计分感应区，三者共用一个运动学刚体
//
// 参数:
//   - em: 实体管理器
//   - world: 物理世界
//   - layout: 障碍几何参数
//   - r: 缝隙随机偏移，[0, layout.Range)
//   - travelTime: 移动 layout.TravelDistance() 所需时间，同时作为生命周期
//
// 返回:
//   - ecs.EntityID: 障碍对实体ID
func NewObstaclePair(em *ecs.EntityManager, world *physics.World, layout ObstacleLayout, r, travelTime float64) ecs.EntityID {
	id := em.CreateEntity()
	lowerY, upperY, gap := layout.Place(r)
	velocityX := -layout.TravelDistance() / travelTime

	wall := func(y float64) physics.ShapeSpec {
		return physics.ShapeSpec{
			Category:      physics.CategoryWall,
			CollisionMask: physics.CategoryBird,
			OffsetY:       y,
			Width:         layout.WallWidth,
			Height:        layout.WallHeight,
		}
	}

	// 刚体中心位于 (SpawnX, 0)，形状的 Y 偏移即世界 Y
	body := world.AddBody(physics.BodySpec{
		Kind:  physics.BodyKinematic,
		X:     layout.SpawnX(),
		Y:     0,
		Owner: id,
		Shapes: []physics.ShapeSpec{
			wall(lowerY),
			wall(upperY),
			{
				Category:    physics.CategoryScore,
				ContactMask: physics.CategoryBird,
				Sensor:      true,
				OffsetX:     layout.SensorOffsetX(),
				OffsetY:     layout.WorldHeight / 2,
				Width:       layout.WallWidth,
				Height:      layout.WorldHeight,
			},
		},
	})
	body.SetVelocity(velocityX, 0)

	ecs.AddComponent(em, id, &components.PhysicsBodyComponent{Body: body})
	ecs.AddComponent(em, id, &components.ObstacleComponent{
		LowerY:     lowerY,
		UpperY:     upperY,
		GapLower:   gap.Lower,
		GapHeight:  gap.Height(),
		WallWidth:  layout.WallWidth,
		WallHeight: layout.WallHeight,
	})
	ecs.AddComponent(em, id, &components.SpriteComponent{
		Texture: TextureWall,
		Width:   layout.WallWidth,
		Height:  layout.WallHeight,
		Z:       ZObstacle,
	})
	ecs.AddComponent(em, id, &components.ScrollComponent{VelocityX: velocityX})
	ecs.AddComponent(em, id, &components.LifetimeComponent{MaxLifetime: travelTime})

	return id
}
