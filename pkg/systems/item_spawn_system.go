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

// ItemSpawnSystem 以随机间隔生成可拾取道具
// 每次生成后重新抽取下一次间隔，间隔在 [MinInterval, MaxInterval) 内均匀分布
type ItemSpawnSystem struct {
	entityManager *ecs.EntityManager
	world         *physics.World
	clock         *scheduler.Clock
	cfg           *config.GameConfig
	rng           *rand.Rand
	minY, maxY    float64

	taskID   scheduler.TaskID
	armed    bool
	sequence int
}

// NewItemSpawnSystem 创建道具生成系统
//
// 参数:
//   - em: 实体管理器
//   - world: 物理世界
//   - clock: 滚动层时钟
//   - cfg: 游戏配置
//   - rng: 随机数源，nil 时使用按时间播种的随机源
//
// 间隔范围非法（最小值不大于 0 或最大值小于最小值）或移动时间不大于 0 时 panic
func NewItemSpawnSystem(em *ecs.EntityManager, world *physics.World, clock *scheduler.Clock, cfg *config.GameConfig, rng *rand.Rand) *ItemSpawnSystem {
	if cfg.Item.MinInterval <= 0 || cfg.Item.MaxInterval < cfg.Item.MinInterval {
		panic(fmt.Sprintf("item spawn interval range invalid: [%v, %v)", cfg.Item.MinInterval, cfg.Item.MaxInterval))
	}
	if cfg.Item.TravelTime <= 0 {
		panic(fmt.Sprintf("item travel time must be > 0, got %v", cfg.Item.TravelTime))
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	minY, maxY := entities.ItemBand(cfg)
	log.Printf("[ItemSpawnSystem] Initialized with interval=[%.1f, %.1f)s, band=[%.0f, %.0f)",
		cfg.Item.MinInterval, cfg.Item.MaxInterval, minY, maxY)

	return &ItemSpawnSystem{
		entityManager: em,
		world:         world,
		clock:         clock,
		cfg:           cfg,
		rng:           rng,
		minY:          minY,
		maxY:          maxY,
	}
}

// nextInterval 抽取下一次生成间隔
func (s *ItemSpawnSystem) nextInterval() float64 {
	return s.cfg.Item.MinInterval + s.rng.Float64()*(s.cfg.Item.MaxInterval-s.cfg.Item.MinInterval)
}

// Start 注册生成任务，已注册时不重复注册
func (s *ItemSpawnSystem) Start() {
	if s.armed && s.clock.IsPending(s.taskID) {
		return
	}
	s.taskID = s.clock.Schedule(scheduler.Task{
		Name:         "spawn-item",
		Interval:     s.nextInterval(),
		Repeat:       true,
		OnFire:       func() { s.Spawn() },
		NextInterval: s.nextInterval,
	})
	s.armed = true
}

// Stop 取消生成任务
func (s *ItemSpawnSystem) Stop() {
	if s.armed {
		s.clock.Cancel(s.taskID)
		s.armed = false
	}
}

// Rearm 取消并重新注册生成任务
func (s *ItemSpawnSystem) Rearm() {
	s.Stop()
	s.Start()
}

// Spawn 立即在随机高度生成一个道具
func (s *ItemSpawnSystem) Spawn() ecs.EntityID {
	y := s.minY + s.rng.Float64()*(s.maxY-s.minY)
	s.sequence++
	id := entities.NewItem(s.entityManager, s.world, s.cfg, y, s.sequence)
	log.Printf("[ItemSpawnSystem] Spawned item #%d (entity %d) at y=%.1f", s.sequence, id, y)
	return id
}

// Spawned 返回累计生成数量
func (s *ItemSpawnSystem) Spawned() int {
	return s.sequence
}
