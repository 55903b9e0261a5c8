package components

import "github.com/gonewx/flappy/pkg/physics"

// PhysicsBodyComponent 持有实体在物理世界中的刚体
// 实体销毁时由清理系统负责把刚体移出物理世界
type PhysicsBodyComponent struct {
	Body *physics.Body
}
