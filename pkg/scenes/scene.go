// Package scenes 提供 Ebitengine 前端的场景
package scenes

import "github.com/hajimehoshi/ebiten/v2"

// Scene 场景接口
// App 每个 tick 调用一次 Update，每帧调用一次 Draw
type Scene interface {
	Update(deltaTime float64)
	Draw(screen *ebiten.Image)
}
