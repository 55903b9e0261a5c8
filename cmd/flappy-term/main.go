// flappy-term 在终端中运行 Flappy
//
// 用法：
//
//	go run ./cmd/flappy-term [-verbose] [-config path] [-mute]
//
// 空格、回车或鼠标左键扇翅（结束后重新开始），Esc 或 Ctrl-C 退出。
// 最高分与桌面版共用同一个 gdata 存储。
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/flappy/pkg/config"
	"github.com/gonewx/flappy/pkg/game"
	"github.com/gonewx/flappy/pkg/utils"
)

// tickRate 逻辑帧率，与桌面版 ebiten 默认 TPS 一致
const tickRate = 60

var hudStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)

type termGame struct {
	screen    tcell.Screen
	session   *game.Session
	sound     *beepSound
	mouseDown bool
}

func loadConfig(path string) (*config.GameConfig, error) {
	if path == "" {
		return config.DefaultGameConfig(), nil
	}
	return config.LoadGameConfig(path)
}

// openScoreStore 打开与桌面版共用的 gdata 存储
// 打开失败时退回内存存储，本次运行的最高分不会保存
func openScoreStore(appName string) game.ScoreStore {
	if err := utils.PrepareStorage(); err != nil {
		log.Printf("[Term] Warning: %v", err)
	}
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[Term] Warning: Failed to open gdata storage: %v (scores will not persist)", err)
		return game.NewMemoryScoreStore()
	}
	return game.NewGdataScoreStore(m)
}

func newTermGame(cfg *config.GameConfig, muted bool) (*termGame, error) {
	store := openScoreStore(cfg.Storage.AppName)

	sound := newBeepSound(muted)
	session, err := game.NewSession(cfg, store, sound, nil)
	if err != nil {
		sound.Close()
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		sound.Close()
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		sound.Close()
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()

	return &termGame{screen: screen, session: session, sound: sound}, nil
}

// handleInput 处理一个终端事件，返回 false 表示退出
func (g *termGame) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyEnter:
			g.session.Tap()
		case tcell.KeyRune:
			if ev.Rune() == ' ' {
				g.session.Tap()
			}
		}
	case *tcell.EventMouse:
		// 只在按下的那一刻算一次点击
		pressed := ev.Buttons()&tcell.Button1 != 0
		if pressed && !g.mouseDown {
			g.session.Tap()
		}
		g.mouseDown = pressed
	case *tcell.EventResize:
		g.screen.Sync()
	}
	return true
}

func (g *termGame) draw() {
	cfg := g.session.Config()
	cols, rows := g.screen.Size()
	canvas := NewCanvas(cols, rows, cfg.World.Width, cfg.World.Height)
	canvas.DrawEntities(g.session.EntityManager())

	for i, line := range g.session.HUD().Lines() {
		canvas.DrawText(1, i, line, hudStyle)
	}
	if g.session.CanRestart() {
		hint := "Press SPACE to restart"
		canvas.DrawText((cols-len(hint))/2, rows/2, hint, hudStyle)
	}

	g.screen.Clear()
	canvas.Blit(g.screen)
	g.screen.Show()
}

// run 主循环
// 会话只在本 goroutine 中访问，输入 goroutine 只负责转发事件
func (g *termGame) run() {
	ticker := time.NewTicker(time.Second / tickRate)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	dt := 1.0 / tickRate
	for {
		select {
		case ev := <-eventChan:
			if !g.handleInput(ev) {
				return
			}
		case <-ticker.C:
			g.session.Update(dt)
			g.draw()
		}
	}
}

func (g *termGame) cleanup() {
	g.sound.Close()
	g.screen.Fini()
}

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志输出（写到 stderr，会干扰画面，建议重定向）")
	configPath := flag.String("config", "", "游戏配置文件路径（默认使用内置配置）")
	mute := flag.Bool("mute", false, "关闭提示音")
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	g, err := newTermGame(cfg, *mute)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer g.cleanup()

	g.run()
}
