package systems

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/gonewx/flappy/pkg/config"
	"github.com/gonewx/flappy/pkg/ecs"
	"github.com/gonewx/flappy/pkg/entities"
	"github.com/gonewx/flappy/pkg/physics"
	"github.com/gonewx/flappy/pkg/scheduler"
)

// ObstacleSpawnSystem 按固定间隔生成墙壁对
//
// 生成任务注册在滚动层时钟上：滚动速度为 0 时不再生成，
// 重新开始时任务被取消并重新注册，第一对墙壁在一个完整间隔后出现。
type ObstacleSpawnSystem struct {
	entityManager *ecs.EntityManager
	world         *physics.World
	clock         *scheduler.Clock
	layout        entities.ObstacleLayout
	interval      float64
	travelTime    float64
	rng           *rand.Rand

	taskID  scheduler.TaskID
	armed   bool
	spawned int
}

// NewObstacleSpawnSystem 创建墙壁生成系统
//
// 参数:
//   - em: 实体管理器
//   - world: 物理世界
//   - clock: 滚动层时钟
//   - cfg: 游戏配置
//   - rng: 随机数源，nil 时使用按时间播种的随机源
//
// 生成间隔或移动时间不大于 0 属于编程错误，直接 panic
func NewObstacleSpawnSystem(em *ecs.EntityManager, world *physics.World, clock *scheduler.Clock, cfg *config.GameConfig, rng *rand.Rand) *ObstacleSpawnSystem {
	if cfg.Obstacle.Interval <= 0 {
		panic(fmt.Sprintf("obstacle spawn interval must be > 0, got %v", cfg.Obstacle.Interval))
	}
	if cfg.Obstacle.TravelTime <= 0 {
		panic(fmt.Sprintf("obstacle travel time must be > 0, got %v", cfg.Obstacle.TravelTime))
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	layout := entities.NewObstacleLayout(cfg)
	log.Printf("[ObstacleSpawnSystem] Initialized with interval=%.1fs, travel=%.1fs, slit=%.0f, range=%.0f",
		cfg.Obstacle.Interval, cfg.Obstacle.TravelTime, layout.Slit, layout.Range)

	return &ObstacleSpawnSystem{
		entityManager: em,
		world:         world,
		clock:         clock,
		layout:        layout,
		interval:      cfg.Obstacle.Interval,
		travelTime:    cfg.Obstacle.TravelTime,
		rng:           rng,
	}
}

// Start 注册重复生成任务，已注册时不重复注册
func (s *ObstacleSpawnSystem) Start() {
	if s.armed && s.clock.IsPending(s.taskID) {
		return
	}
	s.taskID = s.clock.Schedule(scheduler.Task{
		Name:     "spawn-obstacle",
		Interval: s.interval,
		Repeat:   true,
		OnFire:   func() { s.Spawn() },
	})
	s.armed = true
}

// Stop 取消生成任务
func (s *ObstacleSpawnSystem) Stop() {
	if s.armed {
		s.clock.Cancel(s.taskID)
		s.armed = false
	}
}

// Rearm 取消并重新注册生成任务（重新开始时调用）
func (s *ObstacleSpawnSystem) Rearm() {
	s.Stop()
	s.Start()
}

// Spawn 立即生成一对墙壁
func (s *ObstacleSpawnSystem) Spawn() ecs.EntityID {
	r := s.rng.Float64() * s.layout.Range
	id := entities.NewObstaclePair(s.entityManager, s.world, s.layout, r, s.travelTime)
	s.spawned++
	log.Printf("[ObstacleSpawnSystem] Spawned pair #%d (entity %d), offset=%.1f", s.spawned, id, r)
	return id
}

// Spawned 返回累计生成数量
func (s *ObstacleSpawnSystem) Spawned() int {
	return s.spawned
}

// Layout 返回墙壁几何参数
func (s *ObstacleSpawnSystem) Layout() entities.ObstacleLayout {
	return s.layout
}
