// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/flappy/pkg/config"
	"github.com/gonewx/flappy/pkg/embedded"
	"github.com/gonewx/flappy/pkg/game"
	"github.com/gonewx/flappy/pkg/scenes"
	"github.com/gonewx/flappy/pkg/utils"
)

// audioSampleRate 音频上下文采样率
const audioSampleRate = 48000

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 游戏配置文件路径，为空则使用内置的 data/game.yaml
	ConfigPath string
	// ResetBest 启动时清除保存的最高分
	ResetBest bool
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	scene           scenes.Scene
	settingsManager *game.SettingsManager
	gameConfig      *config.GameConfig

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// LoadGameConfig 加载游戏配置
// path 为空时读取内置配置，否则读取磁盘文件
func LoadGameConfig(path string) (*config.GameConfig, error) {
	if path != "" {
		return config.LoadGameConfig(path)
	}
	data, err := embedded.ReadFile(config.DefaultConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded game config: %w", err)
	}
	return config.ParseGameConfig(data)
}

// OpenStorage 打开 gdata 存储
// 失败时返回 nil，调用方进入降级模式（分数和设置只保存在内存）
func OpenStorage(appName string) *gdata.Manager {
	if err := utils.PrepareStorage(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[App] Warning: Failed to open gdata storage: %v (scores will not persist)", err)
		return nil
	}
	return m
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	gameConfig, err := LoadGameConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("游戏配置加载失败: %w", err)
	}

	gdataManager := OpenStorage(gameConfig.Storage.AppName)
	settingsManager, err := game.NewSettingsManager(gdataManager)
	if err != nil {
		return nil, fmt.Errorf("设置初始化失败: %w", err)
	}

	store := game.NewGdataScoreStore(gdataManager)
	if cfg.ResetBest {
		store.Set(gameConfig.Storage.BestScoreKey, 0)
		log.Printf("[App] Best score reset")
	}

	audioManager := game.NewAudioManager(audio.NewContext(audioSampleRate), settingsManager)
	log.Printf("[App] AudioManager initialized")

	session, err := game.NewSession(gameConfig, store, audioManager, nil)
	if err != nil {
		return nil, fmt.Errorf("会话创建失败: %w", err)
	}

	scene, err := scenes.NewGameScene(session)
	if err != nil {
		return nil, fmt.Errorf("场景创建失败: %w", err)
	}

	if settingsManager.GetSettings().Fullscreen && !utils.IsMobile() {
		ebiten.SetFullscreen(true)
	}

	return &App{
		scene:           scene,
		settingsManager: settingsManager,
		gameConfig:      gameConfig,
	}, nil
}

// WindowSize 逻辑屏幕尺寸（像素）
func (a *App) WindowSize() (int, int) {
	return int(a.gameConfig.World.Width), int(a.gameConfig.World.Height)
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if utils.IsQuitRequested() {
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			w, h := a.WindowSize()
			ebiten.SetWindowSize(w, h)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", w, h)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏并记住选择
	if utils.IsFullscreenToggle() {
		a.toggleFullscreen()
	}

	// M 静音，-/= 调整音量
	if a.applySoundKeys(utils.IsMuteToggle(), utils.VolumeKeyStep()) {
		a.saveSettings()
	}

	a.scene.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
	}

	a.settingsManager.SetFullscreen(!a.settingsManager.GetSettings().Fullscreen)
	a.saveSettings()
}

// applySoundKeys 应用静音与音量按键，返回设置是否改变
func (a *App) applySoundKeys(muteToggle bool, volumeStep int) bool {
	settings := a.settingsManager.GetSettings()
	changed := false

	if muteToggle {
		a.settingsManager.SetSoundEnabled(!settings.SoundEnabled)
		log.Printf("[App] Sound enabled: %v", settings.SoundEnabled)
		changed = true
	}
	if volumeStep != 0 {
		before := settings.SoundVolume
		a.settingsManager.SetSoundVolume(before + float64(volumeStep)*game.VolumeStep)
		changed = changed || settings.SoundVolume != before
	}
	return changed
}

func (a *App) saveSettings() {
	if err := a.settingsManager.Save(); err != nil {
		log.Printf("[App] Warning: Failed to save settings: %v", err)
	}
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.scene.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.WindowSize()
}
