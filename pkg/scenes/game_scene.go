package scenes

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/examples/resources/fonts"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/gonewx/flappy/pkg/game"
	"github.com/gonewx/flappy/pkg/systems"
	"github.com/gonewx/flappy/pkg/utils"
)

// HUD 排版
const (
	hudFontSize   = 14
	hudMargin     = 12
	hudLineHeight = 22
	hintFontSize  = 12
)

var (
	// skyColor 天空背景，即 (0.15, 0.75, 0.90)
	skyColor    = color.RGBA{R: 38, G: 191, B: 230, A: 255}
	shadowColor = color.RGBA{A: 160}
)

// GameScene 唯一的游戏场景：把输入交给会话，把会话画出来
type GameScene struct {
	session    *game.Session
	render     *systems.RenderSystem
	faceSource *text.GoTextFaceSource
}

// NewGameScene 创建游戏场景
//
// 参数：
//   - session: 游戏会话
//
// 返回：
//   - *GameScene: 场景实例
//   - error: 字体加载失败时返回错误
func NewGameScene(session *game.Session) (*GameScene, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(fonts.PressStart2P_ttf))
	if err != nil {
		return nil, fmt.Errorf("failed to load HUD font: %w", err)
	}

	return &GameScene{
		session:    session,
		render:     systems.NewRenderSystem(session.EntityManager(), session.Config()),
		faceSource: src,
	}, nil
}

// Update 读取点击并推进会话
func (s *GameScene) Update(deltaTime float64) {
	if utils.IsPrimaryTap() {
		s.session.Tap()
	}
	s.session.Update(deltaTime)
}

// Draw 绘制世界和 HUD
func (s *GameScene) Draw(screen *ebiten.Image) {
	screen.Fill(skyColor)
	s.render.Draw(screen)
	s.drawHUD(screen)
}

// drawHUD 左上角三行分数；可以重新开始时在屏幕中央提示
func (s *GameScene) drawHUD(screen *ebiten.Image) {
	face := &text.GoTextFace{Source: s.faceSource, Size: hudFontSize}
	for i, line := range s.session.HUD().Lines() {
		y := float64(hudMargin + i*hudLineHeight)
		drawShadowedText(screen, line, face, hudMargin, y, text.AlignStart)
	}

	if s.session.CanRestart() {
		cfg := s.session.Config()
		hint := &text.GoTextFace{Source: s.faceSource, Size: hintFontSize}
		drawShadowedText(screen, "Tap to restart", hint, cfg.World.Width/2, cfg.World.Height/2, text.AlignCenter)
	}
}

// drawShadowedText 带阴影的白色文字
func drawShadowedText(screen *ebiten.Image, msg string, face text.Face, x, y float64, align text.Align) {
	op := &text.DrawOptions{}
	op.PrimaryAlign = align
	op.GeoM.Translate(x+2, y+2)
	op.ColorScale.ScaleWithColor(shadowColor)
	text.Draw(screen, msg, face, op)

	op = &text.DrawOptions{}
	op.PrimaryAlign = align
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, msg, face, op)
}
