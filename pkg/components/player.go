package components

// PlayerComponent 玩家（小鸟）状态
//
// Speed 是玩家的局部速度：死亡翻滚结束后置 0，动画停止，
// 此时点击才会触发重新开始。
type PlayerComponent struct {
	Speed    float64 // 局部速度，1 正常，0 冻结
	Rotation float64 // 视觉旋转角（弧度，逆时针为正），物理刚体本身不旋转
	Rolling  bool    // 是否正在播放死亡翻滚
}
