package systems

import (
	"math/rand"
	"testing"

	"github.com/gonewx/flappy/pkg/config"
	"github.com/gonewx/flappy/pkg/ecs"
	"github.com/gonewx/flappy/pkg/physics"
)

// testFrame 测试使用的帧间隔：1/64 可以被二进制精确表示，
// 128 帧恰好是 2.0 秒，不会引入累加误差
const testFrame = 1.0 / 64.0

// testWorld 测试用的最小世界
type testWorld struct {
	cfg   *config.GameConfig
	em    *ecs.EntityManager
	world *physics.World
}

func newTestWorld(t *testing.T) *testWorld {
	t.Helper()
	cfg := config.DefaultGameConfig()
	return &testWorld{
		cfg:   cfg,
		em:    ecs.NewEntityManager(),
		world: physics.NewWorld(cfg.World.Gravity),
	}
}

// newTestRand 固定种子的随机源
func newTestRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

// advanceFrames 推进滚动层若干帧
func advanceFrames(scroll *ScrollSystem, frames int) {
	for i := 0; i < frames; i++ {
		scroll.Advance(testFrame)
	}
}

// expectPanic 断言 fn 会 panic
func expectPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}
