package utils

// 坐标系统
//
// 物理世界使用 Y 轴向上的坐标（原点在左下角，重力指向 -Y）；
// Ebitengine 屏幕使用 Y 轴向下的坐标（原点在左上角）。
// 世界宽高与逻辑屏幕宽高相同，因此只需翻转 Y 轴。

// WorldToScreen 世界坐标转换为屏幕坐标
//
// 参数：
//   - worldX, worldY: 世界坐标（Y 向上）
//   - worldHeight: 世界高度
//
// 返回：
//   - screenX, screenY: 屏幕坐标（Y 向下）
func WorldToScreen(worldX, worldY, worldHeight float64) (screenX, screenY float64) {
	return worldX, worldHeight - worldY
}

// ScreenToWorld 屏幕坐标转换为世界坐标
func ScreenToWorld(screenX, screenY, worldHeight float64) (worldX, worldY float64) {
	return screenX, worldHeight - screenY
}

// RotationToScreen 世界中的旋转角（逆时针为正）转换为屏幕绘制角度
// Y 轴翻转后旋转方向相反
func RotationToScreen(rotation float64) float64 {
	return -rotation
}
