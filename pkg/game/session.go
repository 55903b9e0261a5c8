package game

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/gonewx/flappy/pkg/components"
	"github.com/gonewx/flappy/pkg/config"
	"github.com/gonewx/flappy/pkg/ecs"
	"github.com/gonewx/flappy/pkg/entities"
	"github.com/gonewx/flappy/pkg/physics"
	"github.com/gonewx/flappy/pkg/systems"
)

// Phase 会话阶段
type Phase int

const (
	// PhaseRunning 游戏进行中
	PhaseRunning Phase = iota
	// PhaseGameOver 撞墙或落地后，等待点击重新开始
	PhaseGameOver
)

func (p Phase) String() string {
	if p == PhaseGameOver {
		return "GameOver"
	}
	return "Running"
}

// Session 一局游戏的状态机
//
// Session 持有世界里的全部对象（实体、物理、各系统），
// 由前端每帧调用一次 Update。只能在同一个 goroutine 中使用。
type Session struct {
	cfg   *config.GameConfig
	em    *ecs.EntityManager
	world *physics.World

	scroll    *systems.ScrollSystem
	obstacles *systems.ObstacleSpawnSystem
	items     *systems.ItemSpawnSystem
	player    *systems.PlayerSystem
	lifetime  *systems.LifetimeSystem
	cleanup   *systems.CleanupSystem

	store   ScoreStore
	sound   SoundPlayer
	bestKey string

	phase      Phase
	score      int
	itemScore  int
	best       int
	tapPending bool
}

// NewSession 创建一局新游戏
//
// 参数：
//   - cfg: 游戏配置
//   - store: 最高分存储，不能为 nil
//   - sound: 提示音播放器，可为 nil（静音）
//   - rng: 随机数源，可为 nil（按时间播种）
//
// 返回：
//   - *Session: 处于 Running 阶段的会话，第一对墙壁在一个生成间隔后出现
//   - error: 参数缺失或玩家创建失败
func NewSession(cfg *config.GameConfig, store ScoreStore, sound SoundPlayer, rng *rand.Rand) (*Session, error) {
	if cfg == nil {
		return nil, fmt.Errorf("game config cannot be nil")
	}
	if store == nil {
		return nil, fmt.Errorf("score store cannot be nil")
	}

	em := ecs.NewEntityManager()
	world := physics.NewWorld(cfg.World.Gravity)

	entities.NewGround(em, world, cfg)
	entities.NewClouds(em, cfg)

	playerID, err := entities.NewPlayerEntity(em, world, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	player, err := systems.NewPlayerSystem(em, playerID, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create player system: %w", err)
	}

	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	scroll := systems.NewScrollSystem(em)

	s := &Session{
		cfg:       cfg,
		em:        em,
		world:     world,
		scroll:    scroll,
		obstacles: systems.NewObstacleSpawnSystem(em, world, scroll.Clock(), cfg, rng),
		items:     systems.NewItemSpawnSystem(em, world, scroll.Clock(), cfg, rng),
		player:    player,
		lifetime:  systems.NewLifetimeSystem(em),
		cleanup:   systems.NewCleanupSystem(em, world),
		store:     store,
		sound:     sound,
		bestKey:   cfg.Storage.BestScoreKey,
		phase:     PhaseRunning,
	}
	s.best = store.Get(s.bestKey)
	s.obstacles.Start()
	s.items.Start()

	log.Printf("[Session] Started, best=%d", s.best)
	return s, nil
}

// Tap 记录一次点击，在下一次 Update 开始时处理
func (s *Session) Tap() {
	s.tapPending = true
}

// Update 推进一帧
//
// 顺序：处理点击 → 推进滚动层与玩家时钟（生成、动画、翻滚）
// → 同步滚动速度并步进物理 → 处理接触 → 生命周期与清理
func (s *Session) Update(dt float64) {
	if s.tapPending {
		s.tapPending = false
		s.handleTap()
	}

	s.scroll.Advance(dt)
	s.player.Update(dt)

	s.scroll.Update(dt)
	s.world.Step(dt)

	for _, c := range s.world.DrainContacts() {
		s.HandleContact(c)
	}

	s.lifetime.Update(s.scroll.Scaled(dt))
	s.cleanup.Update()
}

// handleTap 进行中扇翅；结束后等翻滚结束（玩家速度为 0）才重新开始
func (s *Session) handleTap() {
	switch s.phase {
	case PhaseRunning:
		s.player.Flap()
	case PhaseGameOver:
		if s.player.Speed() == 0 {
			s.Restart()
		}
	}
}

// HandleContact 应用一次接触的效果
// 滚动停止后（游戏结束）所有接触都被忽略
func (s *Session) HandleContact(c physics.Contact) {
	if s.phase != PhaseRunning || s.scroll.Speed() <= 0 {
		return
	}

	switch ResolveContact(c.A.Category, c.B.Category) {
	case OutcomeScore:
		s.addScore()
	case OutcomeItemScore:
		owner := c.A.Owner
		if c.B.Category.Has(physics.CategoryItemScore) {
			owner = c.B.Owner
		}
		s.pickItem(owner)
	case OutcomeGameOver:
		log.Printf("[Session] Collision %v/%v, game over", c.A.Category, c.B.Category)
		s.gameOver()
	}
}

func (s *Session) addScore() {
	s.score++
	if s.score > s.best {
		s.best = s.score
		s.store.Set(s.bestKey, s.best)
	}
}

// pickItem 移除被碰到的那个道具
// 所有者不是道具或已被拾取时忽略
func (s *Session) pickItem(owner ecs.EntityID) {
	if !ecs.HasComponent[*components.ItemComponent](s.em, owner) || s.em.IsMarkedForDestroy(owner) {
		return
	}
	s.em.DestroyEntity(owner)
	if s.sound != nil {
		s.sound.PlaySound(SoundItem)
	}
	s.itemScore++
}

func (s *Session) gameOver() {
	s.phase = PhaseGameOver
	s.scroll.SetSpeed(0)
	s.player.StartDeathRoll()
}

// Restart 完全重置：清空墙壁和道具、分数归零、玩家回到出生点
// 最高分保留
func (s *Session) Restart() {
	for _, id := range ecs.GetEntitiesWith1[*components.ObstacleComponent](s.em) {
		s.em.DestroyEntity(id)
	}
	for _, id := range ecs.GetEntitiesWith1[*components.ItemComponent](s.em) {
		s.em.DestroyEntity(id)
	}
	s.cleanup.Update()
	s.world.DrainContacts()

	s.score = 0
	s.itemScore = 0
	s.player.Reset()
	s.scroll.SetSpeed(1)
	s.obstacles.Rearm()
	s.items.Rearm()
	s.phase = PhaseRunning

	log.Printf("[Session] Restarted, best=%d", s.best)
}

// Phase 当前阶段
func (s *Session) Phase() Phase {
	return s.phase
}

// Score 本局分数
func (s *Session) Score() int {
	return s.score
}

// ItemScore 本局拾取的道具数
func (s *Session) ItemScore() int {
	return s.itemScore
}

// Best 历史最高分
func (s *Session) Best() int {
	return s.best
}

// HUD 当前抬头显示内容
func (s *Session) HUD() HUD {
	return HUD{Score: s.score, ItemScore: s.itemScore, Best: s.best}
}

// ScrollSpeed 滚动层速度
func (s *Session) ScrollSpeed() float64 {
	return s.scroll.Speed()
}

// PlayerSpeed 玩家局部速度
func (s *Session) PlayerSpeed() float64 {
	return s.player.Speed()
}

// CanRestart 点击是否会重新开始
func (s *Session) CanRestart() bool {
	return s.phase == PhaseGameOver && s.player.Speed() == 0
}

// PlayerID 玩家实体ID
func (s *Session) PlayerID() ecs.EntityID {
	return s.player.PlayerID()
}

// PlayerPosition 玩家中心的世界坐标
func (s *Session) PlayerPosition() (x, y float64) {
	return s.player.Body().Position()
}

// PlayerVelocity 玩家速度
func (s *Session) PlayerVelocity() (vx, vy float64) {
	return s.player.Body().Velocity()
}

// PlayerRotation 玩家视觉旋转角
func (s *Session) PlayerRotation() float64 {
	return s.player.Rotation()
}

// ObstacleCount 场上的墙壁对数量
func (s *Session) ObstacleCount() int {
	return len(ecs.GetEntitiesWith1[*components.ObstacleComponent](s.em))
}

// ItemCount 场上的道具数量
func (s *Session) ItemCount() int {
	return len(ecs.GetEntitiesWith1[*components.ItemComponent](s.em))
}

// EntityManager 返回实体管理器，供渲染端读取
func (s *Session) EntityManager() *ecs.EntityManager {
	return s.em
}

// Config 返回游戏配置
func (s *Session) Config() *config.GameConfig {
	return s.cfg
}
