package components

// PositionComponent 没有刚体的实体（装饰层）的中心位置，世界坐标
type PositionComponent struct {
	X, Y float64
}
