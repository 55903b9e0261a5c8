package components

// ObstacleComponent 一对上下墙壁及其计分感应区
// 所有偏移相对于刚体中心（X 方向墙壁居中）
type ObstacleComponent struct {
	LowerY     float64 // 下墙中心 Y（世界坐标）
	UpperY     float64 // 上墙中心 Y（世界坐标）
	GapLower   float64 // 缝隙下沿
	GapHeight  float64 // 缝隙高度
	WallWidth  float64
	WallHeight float64
}

// Gap 缝隙上下沿
type Gap struct {
	Lower float64
	Upper float64
}

// Height 缝隙高度
func (g Gap) Height() float64 {
	return g.Upper - g.Lower
}
