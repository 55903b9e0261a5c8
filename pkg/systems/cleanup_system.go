package systems

import (
	"github.com/gonewx/flappy/pkg/components"
	"github.com/gonewx/flappy/pkg/ecs"
	"github.com/gonewx/flappy/pkg/physics"
)

// CleanupSystem 真正删除被标记的实体
// 先把实体的刚体移出物理世界，再从实体管理器中删除。
// 必须在物理步进和接触处理之后调用，物理回调中从不删除形状。
type CleanupSystem struct {
	entityManager *ecs.EntityManager
	world         *physics.World
}

// NewCleanupSystem 创建清理系统
func NewCleanupSystem(em *ecs.EntityManager, world *physics.World) *CleanupSystem {
	return &CleanupSystem{
		entityManager: em,
		world:         world,
	}
}

// Update 清理本帧所有被标记删除的实体，返回清理数量
func (s *CleanupSystem) Update() int {
	marked := s.entityManager.MarkedEntities()
	for _, id := range marked {
		if pb, ok := ecs.GetComponent[*components.PhysicsBodyComponent](s.entityManager, id); ok {
			s.world.RemoveBody(pb.Body)
		}
	}
	s.entityManager.RemoveMarkedEntities()
	return len(marked)
}
