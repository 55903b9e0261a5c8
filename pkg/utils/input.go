// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// IsPrimaryTap 检查本帧是否发生"主点击"
// 新的触摸、鼠标左键按下或空格键按下都算一次点击
func IsPrimaryTap() bool {
	// 首先检查触摸输入（移动设备）
	if len(inpututil.AppendJustPressedTouchIDs(nil)) > 0 {
		return true
	}

	// 其次检查鼠标输入（桌面设备）
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return true
	}

	return inpututil.IsKeyJustPressed(ebiten.KeySpace)
}

// IsFullscreenToggle 检查本帧是否按下全屏切换键（F11）
// 移动端没有窗口，始终返回 false
func IsFullscreenToggle() bool {
	if IsMobile() {
		return false
	}
	return inpututil.IsKeyJustPressed(ebiten.KeyF11)
}

// IsQuitRequested 检查本帧是否按下退出键（Esc，仅桌面端）
func IsQuitRequested() bool {
	if IsMobile() {
		return false
	}
	return inpututil.IsKeyJustPressed(ebiten.KeyEscape)
}

// IsMuteToggle 检查本帧是否按下静音切换键（M，仅桌面端）
func IsMuteToggle() bool {
	if IsMobile() {
		return false
	}
	return inpututil.IsKeyJustPressed(ebiten.KeyM)
}

// VolumeKeyStep 返回本帧的音量调整方向
// "-" 返回 -1，"=" 返回 +1，否则返回 0
func VolumeKeyStep() int {
	if IsMobile() {
		return 0
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus):
		return -1
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual):
		return 1
	}
	return 0
}
