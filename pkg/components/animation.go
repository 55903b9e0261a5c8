package components

// AnimationComponent 管理基于贴图序列的帧动画
// 帧以贴图名称表示，由渲染端映射为实际图像
type AnimationComponent struct {
	Frames       []string // 动画的所有帧贴图名称
	FrameSpeed   float64  // 每帧之间的延迟时间(秒)
	CurrentFrame int      // 当前显示的帧索引(0-based)
}

// CurrentTexture 返回当前帧的贴图名称
func (a *AnimationComponent) CurrentTexture() string {
	if len(a.Frames) == 0 {
		return ""
	}
	return a.Frames[a.CurrentFrame%len(a.Frames)]
}
