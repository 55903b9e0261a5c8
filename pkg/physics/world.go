// Package physics 封装 Chipmunk2D (github.com/jakecoffman/cp) 物理世界
//
// 坐标系：原点在左下角，Y 轴向上，重力指向 -Y。
// 所有形状都带有 ShapeTag（类别 + 所属实体），接触事件在 Step 期间
// 排队，由调用方在 Step 之后通过 DrainContacts 统一处理，
// 从而保证不会在物理回调中增删刚体。
package physics

import (
	"fmt"

	"github.com/gonewx/flappy/pkg/ecs"
	"github.com/jakecoffman/cp"
)

// collisionTypeBird 小鸟形状的碰撞类型，其通配处理器负责收集所有接触
const collisionTypeBird cp.CollisionType = 1

// BodyKind 刚体类型
type BodyKind int

const (
	// BodyDynamic 受力和重力影响（玩家）
	BodyDynamic BodyKind = iota
	// BodyKinematic 按速度移动，不受力（墙壁、道具）
	BodyKinematic
	// BodyStatic 静止（地面）
	BodyStatic
)

// ShapeTag 挂在 cp.Shape.UserData 上的标签
type ShapeTag struct {
	Category Category
	Owner    ecs.EntityID
}

// Contact 一次接触开始事件
type Contact struct {
	A ShapeTag
	B ShapeTag
}

// ShapeSpec 形状描述，偏移相对于刚体中心
type ShapeSpec struct {
	Category      Category // 所属类别
	CollisionMask Category // 产生物理碰撞的类别
	ContactMask   Category // 仅产生接触通知的类别
	Sensor        bool     // 感应区：只通知，不产生物理响应

	OffsetX, OffsetY float64
	Width, Height    float64 // 矩形尺寸（Radius 为 0 时使用）
	Radius           float64 // 圆形半径（> 0 时为圆形）
}

// BodySpec 刚体描述
type BodySpec struct {
	Kind   BodyKind
	X, Y   float64
	Mass   float64 // 仅动态刚体使用
	Owner  ecs.EntityID
	Shapes []ShapeSpec
}

// Body 物理世界中的一个刚体及其全部形状
type Body struct {
	kind   BodyKind
	body   *cp.Body
	shapes []*cp.Shape
	owner  ecs.EntityID
}

// World 物理世界
type World struct {
	space    *cp.Space
	bodies   map[*Body]struct{}
	contacts []Contact
}

// NewWorld 创建物理世界
//
// 参数：
//   - gravity: 向下的重力加速度（正值）
func NewWorld(gravity float64) *World {
	w := &World{
		space:    cp.NewSpace(),
		bodies:   make(map[*Body]struct{}),
		contacts: make([]Contact, 0, 4),
	}
	w.space.SetGravity(cp.Vector{X: 0, Y: -gravity})

	handler := w.space.NewWildcardCollisionHandler(collisionTypeBird)
	handler.BeginFunc = w.onBegin
	return w
}

// onBegin 接触开始回调：只记录，不修改世界
func (w *World) onBegin(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
	a, b := arb.Shapes()
	tagA, okA := a.UserData.(ShapeTag)
	tagB, okB := b.UserData.(ShapeTag)
	if okA && okB {
		w.contacts = append(w.contacts, Contact{A: tagA, B: tagB})
	}
	return true
}

// AddBody 按描述创建刚体并加入世界
func (w *World) AddBody(spec BodySpec) *Body {
	var body *cp.Body
	switch spec.Kind {
	case BodyDynamic:
		if spec.Mass <= 0 {
			panic(fmt.Sprintf("physics: dynamic body mass must be > 0, got %v", spec.Mass))
		}
		// 转动惯量无穷大：碰撞时不旋转
		body = cp.NewBody(spec.Mass, cp.INFINITY)
	case BodyKinematic:
		body = cp.NewKinematicBody()
	case BodyStatic:
		body = cp.NewStaticBody()
	default:
		panic(fmt.Sprintf("physics: unknown body kind %d", spec.Kind))
	}
	body.SetPosition(cp.Vector{X: spec.X, Y: spec.Y})
	w.space.AddBody(body)

	b := &Body{kind: spec.Kind, body: body, owner: spec.Owner}
	for _, ss := range spec.Shapes {
		b.shapes = append(b.shapes, w.space.AddShape(newShape(body, spec.Owner, ss)))
	}
	w.bodies[b] = struct{}{}
	return b
}

func newShape(body *cp.Body, owner ecs.EntityID, ss ShapeSpec) *cp.Shape {
	var shape *cp.Shape
	if ss.Radius > 0 {
		shape = cp.NewCircle(body, ss.Radius, cp.Vector{X: ss.OffsetX, Y: ss.OffsetY})
	} else {
		bb := cp.BB{
			L: ss.OffsetX - ss.Width/2,
			B: ss.OffsetY - ss.Height/2,
			R: ss.OffsetX + ss.Width/2,
			T: ss.OffsetY + ss.Height/2,
		}
		shape = cp.NewBox2(body, bb, 0)
	}

	shape.SetSensor(ss.Sensor)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, uint(ss.Category), uint(ss.CollisionMask|ss.ContactMask)))
	if ss.Category == CategoryBird {
		shape.SetCollisionType(collisionTypeBird)
	}
	shape.UserData = ShapeTag{Category: ss.Category, Owner: owner}
	return shape
}

// RemoveBody 从世界移除刚体及其形状，重复移除无副作用
func (w *World) RemoveBody(b *Body) {
	if b == nil {
		return
	}
	if _, ok := w.bodies[b]; !ok {
		return
	}
	for _, s := range b.shapes {
		w.space.RemoveShape(s)
	}
	w.space.RemoveBody(b.body)
	delete(w.bodies, b)
}

// BodyCount 返回世界中的刚体数量
func (w *World) BodyCount() int {
	return len(w.bodies)
}

// Step 推进物理模拟
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}
	w.space.Step(dt)
}

// DrainContacts 取出并清空本帧排队的接触事件
func (w *World) DrainContacts() []Contact {
	if len(w.contacts) == 0 {
		return nil
	}
	out := w.contacts
	w.contacts = make([]Contact, 0, 4)
	return out
}

// Owner 返回刚体所属实体
func (b *Body) Owner() ecs.EntityID {
	return b.owner
}

// Kind 返回刚体类型
func (b *Body) Kind() BodyKind {
	return b.kind
}

// Position 返回刚体中心的世界坐标
func (b *Body) Position() (x, y float64) {
	p := b.body.Position()
	return p.X, p.Y
}

// SetPosition 瞬移刚体
func (b *Body) SetPosition(x, y float64) {
	b.body.SetPosition(cp.Vector{X: x, Y: y})
}

// Velocity 返回刚体速度
func (b *Body) Velocity() (vx, vy float64) {
	v := b.body.Velocity()
	return v.X, v.Y
}

// SetVelocity 设置刚体速度
func (b *Body) SetVelocity(vx, vy float64) {
	b.body.SetVelocity(vx, vy)
}

// ApplyImpulse 在刚体中心施加冲量
func (b *Body) ApplyImpulse(ix, iy float64) {
	b.body.ApplyImpulseAtLocalPoint(cp.Vector{X: ix, Y: iy}, cp.Vector{})
}

// Mass 返回刚体质量
func (b *Body) Mass() float64 {
	return b.body.Mass()
}

// SetMask 重新设置指定类别形状的碰撞掩码
// 用于游戏结束后让小鸟只与地面发生作用
func (b *Body) SetMask(category Category, mask Category) {
	for _, s := range b.shapes {
		tag, ok := s.UserData.(ShapeTag)
		if !ok || tag.Category != category {
			continue
		}
		s.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, uint(category), uint(mask)))
	}
}

// ShapeCount 返回刚体拥有的形状数量
func (b *Body) ShapeCount() int {
	return len(b.shapes)
}
