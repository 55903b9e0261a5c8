package systems

import (
	"log"

	"github.com/gonewx/flappy/pkg/components"
	"github.com/gonewx/flappy/pkg/ecs"
	"github.com/gonewx/flappy/pkg/scheduler"
)

// loopEpsilon 吸收逐帧累加位移的浮点误差
const loopEpsilon = 1e-9

// ScrollSystem 滚动层
//
// 墙壁、道具、地面和云都属于滚动层。滚动层拥有自己的时钟，
// 时钟速度即滚动速度：置 0 时所有滚动实体原地冻结（不销毁），
// 挂在该时钟上的生成任务、生命周期计时也随之暂停。
type ScrollSystem struct {
	entityManager *ecs.EntityManager
	clock         *scheduler.Clock
}

// NewScrollSystem 创建滚动系统，初始速度为 1
func NewScrollSystem(em *ecs.EntityManager) *ScrollSystem {
	return &ScrollSystem{
		entityManager: em,
		clock:         scheduler.NewClock(),
	}
}

// Clock 返回滚动层时钟，生成系统把任务注册在这里
func (s *ScrollSystem) Clock() *scheduler.Clock {
	return s.clock
}

// Speed 当前滚动速度
func (s *ScrollSystem) Speed() float64 {
	return s.clock.Speed
}

// SetSpeed 设置滚动速度，负值按 0 处理
func (s *ScrollSystem) SetSpeed(speed float64) {
	if speed < 0 {
		speed = 0
	}
	if speed != s.clock.Speed {
		log.Printf("[ScrollSystem] Speed %.2f -> %.2f", s.clock.Speed, speed)
	}
	s.clock.Speed = speed
}

// Scaled 把真实帧时间换算为滚动层时间
func (s *ScrollSystem) Scaled(dt float64) float64 {
	return s.clock.Scaled(dt)
}

// Advance 推进滚动层时钟，触发到期的生成任务
func (s *ScrollSystem) Advance(dt float64) {
	s.clock.Advance(dt)
}

// Update 同步刚体速度并移动装饰实体
//
// 有刚体的实体只改速度，位置交给物理步进；
// 没有刚体的实体直接按滚动层时间移动，满一个循环距离后回到原位。
func (s *ScrollSystem) Update(dt float64) {
	speed := s.clock.Speed
	scaled := s.clock.Scaled(dt)

	for _, id := range ecs.GetEntitiesWith2[*components.ScrollComponent, *components.PhysicsBodyComponent](s.entityManager) {
		scroll, _ := ecs.GetComponent[*components.ScrollComponent](s.entityManager, id)
		pb, _ := ecs.GetComponent[*components.PhysicsBodyComponent](s.entityManager, id)
		if pb.Body == nil {
			continue
		}
		_, vy := pb.Body.Velocity()
		pb.Body.SetVelocity(scroll.VelocityX*speed, vy)
	}

	for _, id := range ecs.GetEntitiesWith2[*components.ScrollComponent, *components.PositionComponent](s.entityManager) {
		scroll, _ := ecs.GetComponent[*components.ScrollComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		dx := scroll.VelocityX * scaled
		pos.X += dx
		if scroll.LoopWidth <= 0 {
			continue
		}
		if dx < 0 {
			dx = -dx
		}
		scroll.Traveled += dx
		for scroll.Traveled >= scroll.LoopWidth-loopEpsilon {
			scroll.Traveled -= scroll.LoopWidth
			if scroll.VelocityX < 0 {
				pos.X += scroll.LoopWidth
			} else {
				pos.X -= scroll.LoopWidth
			}
		}
	}
}
