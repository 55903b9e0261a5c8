package physics

import "strings"

// Category 碰撞类别位掩码
// 每个形状只属于一个类别；掩码是多个类别的按位或
type Category uint

const (
	// CategoryBird 玩家（小鸟）
	CategoryBird Category = 1 << iota
	// CategoryGround 地面
	CategoryGround
	// CategoryWall 墙壁（上下两块）
	CategoryWall
	// CategoryScore 墙壁缝隙后方的计分感应区
	CategoryScore
	// CategoryItem 道具本体（仅用于分类，不产生任何接触）
	CategoryItem
	// CategoryItemScore 道具的拾取感应区
	CategoryItemScore
)

// CategoryNone 空掩码
const CategoryNone Category = 0

var categoryNames = []struct {
	cat  Category
	name string
}{
	{CategoryBird, "bird"},
	{CategoryGround, "ground"},
	{CategoryWall, "wall"},
	{CategoryScore, "score"},
	{CategoryItem, "item"},
	{CategoryItemScore, "itemScore"},
}

// Has 检查掩码是否包含指定类别
func (c Category) Has(other Category) bool {
	return c&other == other && other != CategoryNone
}

// String 返回可读的类别名称，组合掩码用 "|" 连接
func (c Category) String() string {
	if c == CategoryNone {
		return "none"
	}
	parts := make([]string, 0, 2)
	for _, cn := range categoryNames {
		if c&cn.cat != 0 {
			parts = append(parts, cn.name)
		}
	}
	if len(parts) == 0 {
		return "unknown"
	}
	return strings.Join(parts, "|")
}
