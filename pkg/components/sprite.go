package components

// SpriteComponent 存储实体的视觉表现
// Texture 为贴图名称；同时拥有 AnimationComponent 时以动画当前帧为准
type SpriteComponent struct {
	Texture string
	Width   float64
	Height  float64
	Z       int // 绘制层级，越小越靠后
}
