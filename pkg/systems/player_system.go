package systems

import (
	"fmt"
	"log"
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/gonewx/flappy/pkg/components"
	"github.com/gonewx/flappy/pkg/config"
	"github.com/gonewx/flappy/pkg/ecs"
	"github.com/gonewx/flappy/pkg/entities"
	"github.com/gonewx/flappy/pkg/physics"
	"github.com/gonewx/flappy/pkg/scheduler"
)

// PlayerSystem 驱动玩家（小鸟）
//
// 玩家有自己的局部时钟（速度 = PlayerComponent.Speed），
// 扇翅动画和死亡翻滚都挂在这个时钟上。翻滚结束后速度置 0，
// 动画随之停止，会话据此判断是否允许点击重新开始。
type PlayerSystem struct {
	entityManager *ecs.EntityManager
	playerID      ecs.EntityID
	cfg           *config.GameConfig
	clock         *scheduler.Clock

	roll       *gween.Tween
	rollTarget float64
}

// NewPlayerSystem 创建玩家系统并启动扇翅动画
//
// 参数:
//   - em: 实体管理器
//   - playerID: 由 entities.NewPlayerEntity 创建的玩家实体
//   - cfg: 游戏配置
//
// 返回:
//   - *PlayerSystem: 玩家系统
//   - error: 实体缺少必要组件时返回错误
func NewPlayerSystem(em *ecs.EntityManager, playerID ecs.EntityID, cfg *config.GameConfig) (*PlayerSystem, error) {
	if _, ok := ecs.GetComponent[*components.PlayerComponent](em, playerID); !ok {
		return nil, fmt.Errorf("entity %d has no PlayerComponent", playerID)
	}
	if _, ok := ecs.GetComponent[*components.PhysicsBodyComponent](em, playerID); !ok {
		return nil, fmt.Errorf("entity %d has no PhysicsBodyComponent", playerID)
	}

	s := &PlayerSystem{
		entityManager: em,
		playerID:      playerID,
		cfg:           cfg,
		clock:         scheduler.NewClock(),
	}
	s.startAnimation()
	return s, nil
}

// startAnimation 在玩家时钟上注册扇翅动画任务
func (s *PlayerSystem) startAnimation() {
	s.clock.Schedule(scheduler.Task{
		Name:     "flap-animation",
		Interval: s.cfg.Player.FrameTime,
		Repeat:   true,
		OnFire:   s.nextFrame,
	})
}

// PlayerID 返回玩家实体ID
func (s *PlayerSystem) PlayerID() ecs.EntityID {
	return s.playerID
}

func (s *PlayerSystem) player() *components.PlayerComponent {
	p, _ := ecs.GetComponent[*components.PlayerComponent](s.entityManager, s.playerID)
	return p
}

// Body 返回玩家刚体
func (s *PlayerSystem) Body() *physics.Body {
	pb, _ := ecs.GetComponent[*components.PhysicsBodyComponent](s.entityManager, s.playerID)
	return pb.Body
}

// Speed 玩家局部速度
func (s *PlayerSystem) Speed() float64 {
	return s.player().Speed
}

// Rotation 玩家视觉旋转角（弧度）
func (s *PlayerSystem) Rotation() float64 {
	return s.player().Rotation
}

// Rolling 是否正在播放死亡翻滚
func (s *PlayerSystem) Rolling() bool {
	return s.player().Rolling
}

func (s *PlayerSystem) setSpeed(speed float64) {
	s.player().Speed = speed
	s.clock.Speed = speed
}

// nextFrame 切换到下一帧扇翅贴图
func (s *PlayerSystem) nextFrame() {
	anim, ok := ecs.GetComponent[*components.AnimationComponent](s.entityManager, s.playerID)
	if !ok || len(anim.Frames) == 0 {
		return
	}
	anim.CurrentFrame = (anim.CurrentFrame + 1) % len(anim.Frames)
	if sprite, ok := ecs.GetComponent[*components.SpriteComponent](s.entityManager, s.playerID); ok {
		sprite.Texture = anim.CurrentTexture()
	}
}

// Flap 向上扇翅：先清零速度再施加冲量
// 因此扇翅后的竖直速度总是 冲量/质量，与之前的速度无关
func (s *PlayerSystem) Flap() {
	body := s.Body()
	body.SetVelocity(0, 0)
	body.ApplyImpulse(0, s.cfg.Player.FlapImpulse)
}

// StartDeathRoll 开始死亡翻滚
//
// 小鸟改为只与地面作用（穿过墙壁落地），视觉上旋转 π * y * rollFactor 弧度，
// 翻滚时长结束后玩家速度置 0。重复调用无效果。
func (s *PlayerSystem) StartDeathRoll() {
	p := s.player()
	if p.Rolling || p.Speed == 0 {
		return
	}

	body := s.Body()
	body.SetMask(physics.CategoryBird, entities.PlayerGameOverMask)

	_, y := body.Position()
	angle := math.Pi * y * s.cfg.Player.RollFactor
	s.rollTarget = p.Rotation + angle
	s.roll = gween.New(float32(p.Rotation), float32(s.rollTarget), float32(s.cfg.Player.RollDuration), ease.Linear)
	p.Rolling = true

	s.clock.Schedule(scheduler.Task{
		Name:     "death-roll",
		Interval: s.cfg.Player.RollDuration,
		OnFire:   s.finishRoll,
	})
	log.Printf("[PlayerSystem] Death roll started at y=%.1f, angle=%.2f rad", y, angle)
}

// finishRoll 翻滚结束：定格最终角度并冻结玩家
func (s *PlayerSystem) finishRoll() {
	p := s.player()
	p.Rotation = s.rollTarget
	p.Rolling = false
	s.roll = nil
	s.setSpeed(0)
	log.Printf("[PlayerSystem] Death roll finished, player frozen")
}

// Reset 把玩家放回出生点并恢复全部状态
// 玩家时钟上的任务全部取消，扇翅动画从第一帧重新计时
func (s *PlayerSystem) Reset() {
	s.clock.CancelAll()
	s.startAnimation()
	s.roll = nil

	p := s.player()
	p.Rotation = 0
	p.Rolling = false
	s.setSpeed(1)

	body := s.Body()
	x, y := s.cfg.PlayerStart()
	body.SetPosition(x, y)
	body.SetVelocity(0, 0)
	body.SetMask(physics.CategoryBird, entities.PlayerContactMask)

	if anim, ok := ecs.GetComponent[*components.AnimationComponent](s.entityManager, s.playerID); ok {
		anim.CurrentFrame = 0
		if sprite, ok := ecs.GetComponent[*components.SpriteComponent](s.entityManager, s.playerID); ok {
			sprite.Texture = anim.CurrentTexture()
		}
	}
}

// Update 推进玩家时钟（动画、翻滚）
func (s *PlayerSystem) Update(deltaTime float64) {
	scaled := s.clock.Scaled(deltaTime)
	if s.roll != nil {
		val, _ := s.roll.Update(float32(scaled))
		s.player().Rotation = float64(val)
	}
	s.clock.Advance(deltaTime)
}
