// validate_config 检查游戏配置文件并打印推导出的关卡几何
//
// 用法：
//
//	go run ./cmd/validate_config [path]
//
// 默认检查 data/game.yaml。
package main

import (
	"fmt"
	"os"

	"github.com/gonewx/flappy/pkg/config"
	"github.com/gonewx/flappy/pkg/entities"
)

func main() {
	path := config.DefaultConfigPath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	cfg, err := config.LoadGameConfig(path)
	if err != nil {
		fmt.Printf("❌ 配置无效: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ %s 格式正确\n", path)

	layout := entities.NewObstacleLayout(cfg)
	fmt.Printf("✅ 世界尺寸: %.0f x %.0f, 地面高度 %.0f\n", cfg.World.Width, cfg.World.Height, cfg.GroundHeight())
	fmt.Printf("✅ 缝隙高度: %.1f, 下沿范围: [%.1f, %.1f)\n", layout.Slit, layout.Baseline(), layout.Baseline()+layout.Range)
	fmt.Printf("✅ 墙壁速度: %.1f px/s\n", -layout.TravelDistance()/cfg.Obstacle.TravelTime)

	minY, maxY := entities.ItemBand(cfg)
	fmt.Printf("✅ 道具高度范围: [%.1f, %.1f)\n", minY, maxY)

	// 缝隙必须完全落在地面以上、世界以内，否则玩家无法通过
	ok := true
	if layout.Baseline() < cfg.GroundHeight() {
		fmt.Printf("❌ 缝隙下沿 %.1f 低于地面 %.1f\n", layout.Baseline(), cfg.GroundHeight())
		ok = false
	}
	if top := layout.Baseline() + layout.Range + layout.Slit; top > cfg.World.Height {
		fmt.Printf("❌ 缝隙上沿 %.1f 超出世界高度 %.1f\n", top, cfg.World.Height)
		ok = false
	}
	if !ok {
		os.Exit(1)
	}
}
