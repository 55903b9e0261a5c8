package game

import "github.com/gonewx/flappy/pkg/physics"

// ContactOutcome 一次接触的分类结果
type ContactOutcome int

const (
	// OutcomeGameOver 撞到地面或墙壁
	OutcomeGameOver ContactOutcome = iota
	// OutcomeScore 穿过墙壁缝隙
	OutcomeScore
	// OutcomeItemScore 拾取道具
	OutcomeItemScore
)

func (o ContactOutcome) String() string {
	switch o {
	case OutcomeScore:
		return "score"
	case OutcomeItemScore:
		return "itemScore"
	default:
		return "gameOver"
	}
}

// ResolveContact 根据接触双方的类别判断结果
//
// 规则按优先级：任一方为计分感应区 → 计分；任一方为道具感应区 → 拾取；
// 其余一律视为游戏结束。这里只做分类，不产生任何副作用。
func ResolveContact(a, b physics.Category) ContactOutcome {
	switch {
	case a.Has(physics.CategoryScore) || b.Has(physics.CategoryScore):
		return OutcomeScore
	case a.Has(physics.CategoryItemScore) || b.Has(physics.CategoryItemScore):
		return OutcomeItemScore
	default:
		return OutcomeGameOver
	}
}
