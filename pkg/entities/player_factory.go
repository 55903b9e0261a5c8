package entities

import (
	"fmt"

	"github.com/gonewx/flappy/pkg/components"
	"github.com/gonewx/flappy/pkg/config"
	"github.com/gonewx/flappy/pkg/ecs"
	"github.com/gonewx/flappy/pkg/physics"
)

// 玩家碰撞掩码
const (
	// PlayerCollisionMask 正常飞行时与地面、墙壁发生物理碰撞
	PlayerCollisionMask = physics.CategoryGround | physics.CategoryWall
	// PlayerContactMask 正常飞行时接收通知的类别（含两种感应区）
	PlayerContactMask = PlayerCollisionMask | physics.CategoryScore | physics.CategoryItemScore
	// PlayerGameOverMask 游戏结束后只与地面作用，落地而不会再撞墙
	PlayerGameOverMask = physics.CategoryGround
)

// NewPlayerEntity 创建玩家（小鸟）实体
//
// 参数:
//   - em: 实体管理器
//   - world: 物理世界
//   - cfg: 游戏配置（尺寸、出生点、质量、动画帧时长）
//
// 返回:
//   - ecs.EntityID: 玩家实体ID
//   - error: 参数为空时返回错误
func NewPlayerEntity(em *ecs.EntityManager, world *physics.World, cfg *config.GameConfig) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if world == nil {
		return 0, fmt.Errorf("physics world cannot be nil")
	}

	id := em.CreateEntity()
	x, y := cfg.PlayerStart()

	body := world.AddBody(physics.BodySpec{
		Kind:  physics.BodyDynamic,
		X:     x,
		Y:     y,
		Mass:  cfg.Player.Mass,
		Owner: id,
		Shapes: []physics.ShapeSpec{{
			Category:      physics.CategoryBird,
			CollisionMask: PlayerCollisionMask,
			ContactMask:   PlayerContactMask,
			Radius:        cfg.Player.Height / 2,
		}},
	})

	ecs.AddComponent(em, id, &components.PhysicsBodyComponent{Body: body})
	ecs.AddComponent(em, id, &components.PlayerComponent{Speed: 1})
	ecs.AddComponent(em, id, &components.SpriteComponent{
		Texture: TextureBirdA,
		Width:   cfg.Player.Width,
		Height:  cfg.Player.Height,
		Z:       ZPlayer,
	})
	ecs.AddComponent(em, id, &components.AnimationComponent{
		Frames:     []string{TextureBirdA, TextureBirdB},
		FrameSpeed: cfg.Player.FrameTime,
	})

	return id, nil
}
