package utils

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 游戏不加载任何图片文件，所有贴图在启动时按尺寸程序化生成。

// NewFilledImage 创建纯色图像
func NewFilledImage(w, h int, clr color.Color) *ebiten.Image {
	img := ebiten.NewImage(max(w, 1), max(h, 1))
	img.Fill(clr)
	return img
}

// NewBirdImage 生成小鸟贴图
// wingUp 决定翅膀位置，两帧交替形成扇翅动画
func NewBirdImage(w, h int, wingUp bool) *ebiten.Image {
	img := ebiten.NewImage(max(w, 1), max(h, 1))
	fw, fh := float32(w), float32(h)

	// 身体
	vector.DrawFilledCircle(img, fw/2, fh/2, fh/2, color.RGBA{R: 250, G: 210, B: 50, A: 255}, true)
	// 眼睛
	vector.DrawFilledCircle(img, fw*0.68, fh*0.35, fh*0.14, color.White, true)
	vector.DrawFilledCircle(img, fw*0.72, fh*0.35, fh*0.06, color.Black, true)
	// 嘴
	vector.DrawFilledRect(img, fw*0.8, fh*0.5, fw*0.2, fh*0.16, color.RGBA{R: 240, G: 100, B: 40, A: 255}, false)
	// 翅膀
	wingY := fh * 0.55
	if wingUp {
		wingY = fh * 0.25
	}
	vector.DrawFilledRect(img, fw*0.15, wingY, fw*0.35, fh*0.2, color.RGBA{R: 255, G: 240, B: 200, A: 255}, false)
	return img
}

// NewWallImage 生成墙壁贴图（带深色边框）
func NewWallImage(w, h int) *ebiten.Image {
	img := NewFilledImage(w, h, color.RGBA{R: 90, G: 180, B: 60, A: 255})
	border := color.RGBA{R: 40, G: 90, B: 30, A: 255}
	fw, fh := float32(w), float32(h)
	vector.StrokeRect(img, 1, 1, fw-2, fh-2, 2, border, false)
	// 竖向高光
	vector.DrawFilledRect(img, fw*0.15, 2, fw*0.1, fh-4, color.RGBA{R: 150, G: 220, B: 110, A: 255}, false)
	return img
}

// NewGroundImage 生成地面贴图：上沿草皮 + 泥土
func NewGroundImage(w, h int) *ebiten.Image {
	img := NewFilledImage(w, h, color.RGBA{R: 220, G: 200, B: 140, A: 255})
	fw, fh := float32(w), float32(h)
	vector.DrawFilledRect(img, 0, 0, fw, fh*0.12, color.RGBA{R: 100, G: 190, B: 70, A: 255}, false)
	// 斜纹让滚动可见
	vector.DrawFilledRect(img, 0, fh*0.12, fw*0.5, fh*0.04, color.RGBA{R: 80, G: 160, B: 50, A: 255}, false)
	return img
}

// NewCloudImage 生成云朵贴图（透明背景）
func NewCloudImage(w, h int) *ebiten.Image {
	img := ebiten.NewImage(max(w, 1), max(h, 1))
	fw, fh := float32(w), float32(h)
	white := color.RGBA{R: 255, G: 255, B: 255, A: 220}
	vector.DrawFilledCircle(img, fw*0.3, fh*0.6, fh*0.35, white, true)
	vector.DrawFilledCircle(img, fw*0.5, fh*0.45, fh*0.42, white, true)
	vector.DrawFilledCircle(img, fw*0.7, fh*0.6, fh*0.33, white, true)
	return img
}

// NewItemImage 生成道具贴图（圆形金币）
func NewItemImage(w, h int) *ebiten.Image {
	img := ebiten.NewImage(max(w, 1), max(h, 1))
	r := float32(min(w, h)) / 2
	vector.DrawFilledCircle(img, float32(w)/2, float32(h)/2, r, color.RGBA{R: 255, G: 200, B: 0, A: 255}, true)
	vector.StrokeCircle(img, float32(w)/2, float32(h)/2, r*0.65, 2, color.RGBA{R: 200, G: 140, B: 0, A: 255}, true)
	return img
}
