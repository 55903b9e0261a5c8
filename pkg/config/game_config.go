package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath 内置游戏配置在嵌入资源中的路径
const DefaultConfigPath = "data/game.yaml"

// GameConfig 游戏整体配置
// 坐标系与物理世界一致：原点在左下角，Y 轴向上
type GameConfig struct {
	World    WorldConfig    `yaml:"world"`    // 世界尺寸与重力
	Player   PlayerConfig   `yaml:"player"`   // 玩家（小鸟）参数
	Obstacle ObstacleConfig `yaml:"obstacle"` // 墙壁障碍参数
	Item     ItemConfig     `yaml:"item"`     // 道具参数
	Ground   ScrollerConfig `yaml:"ground"`   // 地面滚动参数
	Cloud    ScrollerConfig `yaml:"cloud"`    // 云层滚动参数
	Storage  StorageConfig  `yaml:"storage"`  // 持久化参数
}

// WorldConfig 世界配置
type WorldConfig struct {
	Width   float64 `yaml:"width"`   // 世界宽度（像素），等于逻辑屏幕宽度
	Height  float64 `yaml:"height"`  // 世界高度（像素）
	Gravity float64 `yaml:"gravity"` // 向下的重力加速度（像素/秒²），正值
}

// PlayerConfig 玩家配置
type PlayerConfig struct {
	Width        float64 `yaml:"width"`        // 贴图宽度
	Height       float64 `yaml:"height"`       // 贴图高度，障碍缝隙以此为单位
	StartXRatio  float64 `yaml:"startXRatio"`  // 出生点 X = 世界宽度 * 比例
	StartYRatio  float64 `yaml:"startYRatio"`  // 出生点 Y = 世界高度 * 比例
	Mass         float64 `yaml:"mass"`         // 刚体质量
	FlapImpulse  float64 `yaml:"flapImpulse"`  // 点击时施加的向上冲量
	FrameTime    float64 `yaml:"frameTime"`    // 扇翅动画每帧时长（秒）
	RollFactor   float64 `yaml:"rollFactor"`   // 死亡翻滚角度系数：π * y * rollFactor
	RollDuration float64 `yaml:"rollDuration"` // 死亡翻滚时长（秒）
}

// ObstacleConfig 墙壁障碍配置
type ObstacleConfig struct {
	WallWidth   float64 `yaml:"wallWidth"`   // 墙壁贴图宽度
	WallHeight  float64 `yaml:"wallHeight"`  // 墙壁贴图高度
	Interval    float64 `yaml:"interval"`    // 生成间隔（秒）
	TravelTime  float64 `yaml:"travelTime"`  // 从右边缘移出左边缘所需时间（秒）
	GapFactor   float64 `yaml:"gapFactor"`   // 缝隙高度 = 玩家高度 * GapFactor
	RangeFactor float64 `yaml:"rangeFactor"` // 缝隙随机上下浮动范围 = 玩家高度 * RangeFactor
}

// ItemConfig 道具配置
type ItemConfig struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	MinInterval float64 `yaml:"minInterval"` // 随机生成间隔下限（含）
	MaxInterval float64 `yaml:"maxInterval"` // 随机生成间隔上限（不含）
	TravelTime  float64 `yaml:"travelTime"`  // 移出屏幕所需时间（秒）
}

// ScrollerConfig 循环滚动的装饰层（地面、云）
type ScrollerConfig struct {
	TileWidth  float64 `yaml:"tileWidth"`  // 单块贴图宽度
	TileHeight float64 `yaml:"tileHeight"` // 单块贴图高度（地面高度即为地面带高度）
	Period     float64 `yaml:"period"`     // 滚动一块贴图宽度所需时间（秒）
}

// StorageConfig 持久化配置
type StorageConfig struct {
	AppName      string `yaml:"appName"`      // gdata 应用名（决定存储目录）
	BestScoreKey string `yaml:"bestScoreKey"` // 最高分键名
}

// DefaultGameConfig 返回内置默认配置
// 与 data/game.yaml 保持一致，用于测试和配置缺失时
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		World: WorldConfig{Width: 480, Height: 640, Gravity: 600},
		Player: PlayerConfig{
			Width:        34,
			Height:       24,
			StartXRatio:  0.2,
			StartYRatio:  0.7,
			Mass:         1,
			FlapImpulse:  200,
			FrameTime:    0.2,
			RollFactor:   0.01,
			RollDuration: 1,
		},
		Obstacle: ObstacleConfig{
			WallWidth:   60,
			WallHeight:  400,
			Interval:    2,
			TravelTime:  4,
			GapFactor:   3,
			RangeFactor: 3,
		},
		Item: ItemConfig{
			Width:       24,
			Height:      24,
			MinInterval: 1,
			MaxInterval: 5,
			TravelTime:  4.5,
		},
		Ground:  ScrollerConfig{TileWidth: 48, TileHeight: 100, Period: 5},
		Cloud:   ScrollerConfig{TileWidth: 160, TileHeight: 60, Period: 20},
		Storage: StorageConfig{AppName: "flappy", BestScoreKey: "BEST"},
	}
}

// LoadGameConfig 从 YAML 文件加载游戏配置
func LoadGameConfig(filePath string) (*GameConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config file: %w", err)
	}
	return ParseGameConfig(data)
}

// ParseGameConfig 解析 YAML 数据
// 未出现的字段保留默认值
func ParseGameConfig(data []byte) (*GameConfig, error) {
	cfg := DefaultGameConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config YAML: %w", err)
	}

	if err := validateGameConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}

	return cfg, nil
}

// validateGameConfig 验证配置的有效性
func validateGameConfig(cfg *GameConfig) error {
	positive := []struct {
		name  string
		value float64
	}{
		{"world.width", cfg.World.Width},
		{"world.height", cfg.World.Height},
		{"world.gravity", cfg.World.Gravity},
		{"player.width", cfg.Player.Width},
		{"player.height", cfg.Player.Height},
		{"player.mass", cfg.Player.Mass},
		{"player.flapImpulse", cfg.Player.FlapImpulse},
		{"player.frameTime", cfg.Player.FrameTime},
		{"player.rollDuration", cfg.Player.RollDuration},
		{"obstacle.wallWidth", cfg.Obstacle.WallWidth},
		{"obstacle.wallHeight", cfg.Obstacle.WallHeight},
		{"obstacle.interval", cfg.Obstacle.Interval},
		{"obstacle.travelTime", cfg.Obstacle.TravelTime},
		{"obstacle.gapFactor", cfg.Obstacle.GapFactor},
		{"item.width", cfg.Item.Width},
		{"item.height", cfg.Item.Height},
		{"item.minInterval", cfg.Item.MinInterval},
		{"item.maxInterval", cfg.Item.MaxInterval},
		{"item.travelTime", cfg.Item.TravelTime},
		{"ground.tileWidth", cfg.Ground.TileWidth},
		{"ground.tileHeight", cfg.Ground.TileHeight},
		{"ground.period", cfg.Ground.Period},
		{"cloud.tileWidth", cfg.Cloud.TileWidth},
		{"cloud.tileHeight", cfg.Cloud.TileHeight},
		{"cloud.period", cfg.Cloud.Period},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("%s must be > 0, got %v", p.name, p.value)
		}
	}

	if cfg.Obstacle.RangeFactor < 0 {
		return fmt.Errorf("obstacle.rangeFactor must be >= 0, got %v", cfg.Obstacle.RangeFactor)
	}
	if cfg.Item.MaxInterval <= cfg.Item.MinInterval {
		return fmt.Errorf("item.maxInterval (%v) must be greater than item.minInterval (%v)",
			cfg.Item.MaxInterval, cfg.Item.MinInterval)
	}
	if cfg.Ground.TileHeight >= cfg.World.Height {
		return fmt.Errorf("ground.tileHeight (%v) must be less than world.height (%v)",
			cfg.Ground.TileHeight, cfg.World.Height)
	}
	if cfg.Player.StartXRatio < 0 || cfg.Player.StartXRatio > 1 {
		return fmt.Errorf("player.startXRatio must be within [0, 1], got %v", cfg.Player.StartXRatio)
	}
	if cfg.Player.StartYRatio < 0 || cfg.Player.StartYRatio > 1 {
		return fmt.Errorf("player.startYRatio must be within [0, 1], got %v", cfg.Player.StartYRatio)
	}
	if cfg.Storage.BestScoreKey == "" {
		return fmt.Errorf("storage.bestScoreKey cannot be empty")
	}

	return nil
}

// GroundHeight 地面带高度
func (c *GameConfig) GroundHeight() float64 {
	return c.Ground.TileHeight
}

// PlayerStart 玩家出生点（世界坐标）
func (c *GameConfig) PlayerStart() (x, y float64) {
	return c.World.Width * c.Player.StartXRatio, c.World.Height * c.Player.StartYRatio
}
