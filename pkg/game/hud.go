package game

import "fmt"

// HUD 抬头显示的文本内容
// 渲染端（Ebitengine 或终端）只负责把这几行画出来
type HUD struct {
	Score     int
	ItemScore int
	Best      int
}

// Lines 返回按显示顺序排列的文本行
func (h HUD) Lines() []string {
	return []string{
		fmt.Sprintf("Score:%d", h.Score),
		fmt.Sprintf("ItemScore:%d", h.ItemScore),
		fmt.Sprintf("BEST Score:%d", h.Best),
	}
}
