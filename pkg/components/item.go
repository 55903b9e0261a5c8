package components

// ItemComponent 可拾取道具
type ItemComponent struct {
	Sequence int // 生成序号（从 1 开始），用于日志和测试
}
