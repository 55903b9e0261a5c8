package physics

import (
	"math"
	"testing"

	"github.com/gonewx/flappy/pkg/ecs"
)

const stepDt = 1.0 / 60.0

func birdSpec(x, y float64, mask Category) BodySpec {
	return BodySpec{
		Kind:  BodyDynamic,
		X:     x,
		Y:     y,
		Mass:  1,
		Owner: ecs.EntityID(1),
		Shapes: []ShapeSpec{{
			Category:      CategoryBird,
			CollisionMask: mask & (CategoryGround | CategoryWall),
			ContactMask:   mask,
			Radius:        12,
		}},
	}
}

func hasContact(contacts []Contact, a, b Category) bool {
	for _, c := range contacts {
		if (c.A.Category == a && c.B.Category == b) || (c.A.Category == b && c.B.Category == a) {
			return true
		}
	}
	return false
}

func TestImpulseReplacesVelocity(t *testing.T) {
	w := NewWorld(600)
	bird := w.AddBody(birdSpec(100, 300, CategoryGround))

	tests := []struct {
		name  string
		preVy float64
	}{
		{"falling", -420},
		{"rising", 180},
		{"at rest", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bird.SetVelocity(0, tt.preVy)

			bird.SetVelocity(0, 0)
			bird.ApplyImpulse(0, 250)

			_, vy := bird.Velocity()
			if math.Abs(vy-250/bird.Mass()) > 1e-9 {
				t.Errorf("vy after impulse: got %v, want %v", vy, 250/bird.Mass())
			}
		})
	}
}

func TestBirdFallsOntoGround(t *testing.T) {
	w := NewWorld(600)
	bird := w.AddBody(birdSpec(100, 140, CategoryGround|CategoryWall))
	w.AddBody(BodySpec{
		Kind:  BodyStatic,
		X:     240,
		Y:     50,
		Owner: ecs.EntityID(2),
		Shapes: []ShapeSpec{{
			Category:      CategoryGround,
			CollisionMask: CategoryBird,
			Width:         480,
			Height:        100,
		}},
	})

	var contacts []Contact
	for i := 0; i < 120; i++ {
		w.Step(stepDt)
		contacts = append(contacts, w.DrainContacts()...)
	}

	if !hasContact(contacts, CategoryBird, CategoryGround) {
		t.Fatal("expected bird/ground contact")
	}

	// 地面是实体碰撞：小鸟停在地面上方
	_, y := bird.Position()
	if y < 100 {
		t.Errorf("bird sank into ground: y=%v", y)
	}
}

func TestSensorNotifiesWithoutPushing(t *testing.T) {
	w := NewWorld(0)
	bird := w.AddBody(birdSpec(0, 0, CategoryScore))

	sensor := w.AddBody(BodySpec{
		Kind:  BodyKinematic,
		X:     200,
		Y:     0,
		Owner: ecs.EntityID(7),
		Shapes: []ShapeSpec{{
			Category:    CategoryScore,
			ContactMask: CategoryBird,
			Sensor:      true,
			Width:       60,
			Height:      640,
		}},
	})
	sensor.SetVelocity(-300, 0)

	var contacts []Contact
	for i := 0; i < 60; i++ {
		w.Step(stepDt)
		contacts = append(contacts, w.DrainContacts()...)
	}

	if !hasContact(contacts, CategoryBird, CategoryScore) {
		t.Fatal("expected bird/score contact")
	}
	count := 0
	for _, c := range contacts {
		if c.A.Category == CategoryScore || c.B.Category == CategoryScore {
			count++
			owner := c.A.Owner
			if c.B.Category == CategoryScore {
				owner = c.B.Owner
			}
			if owner != ecs.EntityID(7) {
				t.Errorf("sensor owner: got %d, want 7", owner)
			}
		}
	}
	if count != 1 {
		t.Errorf("score contact should begin exactly once, got %d", count)
	}

	vx, vy := bird.Velocity()
	if vx != 0 || vy != 0 {
		t.Errorf("sensor must not push the bird, velocity=(%v, %v)", vx, vy)
	}
}

func TestMaskedOutWallPassesThrough(t *testing.T) {
	w := NewWorld(0)
	bird := w.AddBody(birdSpec(0, 0, CategoryGround|CategoryWall))
	bird.SetMask(CategoryBird, CategoryGround)

	wall := w.AddBody(BodySpec{
		Kind:  BodyKinematic,
		X:     200,
		Y:     0,
		Owner: ecs.EntityID(3),
		Shapes: []ShapeSpec{{
			Category:      CategoryWall,
			CollisionMask: CategoryBird,
			Width:         60,
			Height:        400,
		}},
	})
	wall.SetVelocity(-300, 0)

	for i := 0; i < 90; i++ {
		w.Step(stepDt)
		if contacts := w.DrainContacts(); len(contacts) != 0 {
			t.Fatalf("masked wall produced contacts: %+v", contacts)
		}
	}

	x, _ := bird.Position()
	if x != 0 {
		t.Errorf("masked wall moved the bird to x=%v", x)
	}
}

func TestRemoveBody(t *testing.T) {
	w := NewWorld(600)
	b := w.AddBody(BodySpec{
		Kind: BodyKinematic,
		Shapes: []ShapeSpec{
			{Category: CategoryWall, CollisionMask: CategoryBird, Width: 10, Height: 10},
			{Category: CategoryScore, ContactMask: CategoryBird, Sensor: true, Width: 10, Height: 10},
		},
	})

	if b.ShapeCount() != 2 {
		t.Errorf("ShapeCount: got %d, want 2", b.ShapeCount())
	}
	if w.BodyCount() != 1 {
		t.Fatalf("BodyCount: got %d, want 1", w.BodyCount())
	}

	w.RemoveBody(b)
	w.RemoveBody(b)
	w.RemoveBody(nil)

	if w.BodyCount() != 0 {
		t.Errorf("BodyCount after remove: got %d, want 0", w.BodyCount())
	}
}

func TestDynamicBodyWithoutMassPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for zero mass dynamic body")
		}
	}()
	NewWorld(600).AddBody(BodySpec{Kind: BodyDynamic})
}

func TestCategoryString(t *testing.T) {
	tests := []struct {
		cat  Category
		want string
	}{
		{CategoryNone, "none"},
		{CategoryBird, "bird"},
		{CategoryGround | CategoryWall, "ground|wall"},
		{CategoryItemScore, "itemScore"},
	}
	for _, tt := range tests {
		if got := tt.cat.String(); got != tt.want {
			t.Errorf("Category(%d).String() = %q, want %q", tt.cat, got, tt.want)
		}
	}

	mask := CategoryGround | CategoryWall
	if !mask.Has(CategoryWall) || mask.Has(CategoryScore) || mask.Has(CategoryNone) {
		t.Error("Has() returned unexpected result")
	}
}
