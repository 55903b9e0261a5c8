package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/flappy/pkg/app"
	"github.com/gonewx/flappy/pkg/embedded"
)

func main() {
	// 定义命令行参数
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	configPath := flag.String("config", "", "游戏配置文件路径（默认使用内置 data/game.yaml）")
	resetBest := flag.Bool("reset-best", false, "启动时清除保存的最高分")
	flag.Parse()

	// 初始化嵌入资源（必须在任何资源加载之前）
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		ResetBest:  *resetBest,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	w, h := gameApp.WindowSize()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Flappy")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
