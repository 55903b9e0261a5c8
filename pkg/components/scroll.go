package components

// ScrollComponent 标记属于滚动层的实体
//
// 两种用法：
//   - 刚体实体（墙壁、道具）：每帧把刚体速度设为 VelocityX * 滚动速度
//   - 装饰实体（地面、云）：直接移动 PositionComponent，移动满 LoopWidth 后回到原位
type ScrollComponent struct {
	VelocityX float64 // 基础水平速度（像素/秒），向左为负
	LoopWidth float64 // 循环距离，0 表示不循环
	Traveled  float64 // 当前循环内已移动的距离
}
