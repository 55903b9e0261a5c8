package main

import (
	"math"
	"sort"

	"github.com/gdamore/tcell/v2"

	"github.com/gonewx/flappy/pkg/components"
	"github.com/gonewx/flappy/pkg/ecs"
	"github.com/gonewx/flappy/pkg/entities"
)

// Cell 终端中的一个字符格
type Cell struct {
	Rune  rune
	Style tcell.Style
}

// glyphs 贴图到字符的映射
var glyphs = map[string]Cell{
	entities.TextureBirdA:  {'▲', tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)},
	entities.TextureBirdB:  {'▼', tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)},
	entities.TextureWall:   {'█', tcell.StyleDefault.Foreground(tcell.ColorGreen)},
	entities.TextureGround: {'▒', tcell.StyleDefault.Foreground(tcell.ColorOlive)},
	entities.TextureCloud:  {'░', tcell.StyleDefault.Foreground(tcell.ColorWhite)},
	entities.TextureItem:   {'◆', tcell.StyleDefault.Foreground(tcell.ColorFuchsia)},
}

// Canvas 把世界坐标（Y 轴向上）按比例栅格化到 cols×rows 字符格
type Canvas struct {
	cols, rows     int
	worldW, worldH float64
	cells          []Cell
}

// NewCanvas 创建空画布
func NewCanvas(cols, rows int, worldW, worldH float64) *Canvas {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return &Canvas{
		cols:   cols,
		rows:   rows,
		worldW: worldW,
		worldH: worldH,
		cells:  make([]Cell, cols*rows),
	}
}

// Size 画布尺寸（列，行）
func (c *Canvas) Size() (int, int) {
	return c.cols, c.rows
}

// At 返回 (col, row) 处的字符格，越界返回零值
func (c *Canvas) At(col, row int) Cell {
	if col < 0 || col >= c.cols || row < 0 || row >= c.rows {
		return Cell{}
	}
	return c.cells[row*c.cols+col]
}

// FillRect 填充以 (cx, cy) 为中心、w×h 的世界矩形
// 至少占一个字符格，超出画布的部分被裁掉
func (c *Canvas) FillRect(cx, cy, w, h float64, cell Cell) {
	sx := float64(c.cols) / c.worldW
	sy := float64(c.rows) / c.worldH

	c0 := int(math.Floor((cx - w/2) * sx))
	c1 := int(math.Ceil((cx+w/2)*sx)) - 1
	r0 := int(math.Floor((c.worldH - (cy + h/2)) * sy))
	r1 := int(math.Ceil((c.worldH-(cy-h/2))*sy)) - 1
	if c1 < c0 {
		c1 = c0
	}
	if r1 < r0 {
		r1 = r0
	}

	for row := max(r0, 0); row <= min(r1, c.rows-1); row++ {
		for col := max(c0, 0); col <= min(c1, c.cols-1); col++ {
			c.cells[row*c.cols+col] = cell
		}
	}
}

// DrawText 在指定行从 col 开始写一行文字
func (c *Canvas) DrawText(col, row int, s string, style tcell.Style) {
	for _, r := range s {
		if col >= c.cols {
			return
		}
		if col >= 0 && row >= 0 && row < c.rows {
			c.cells[row*c.cols+col] = Cell{Rune: r, Style: style}
		}
		col++
	}
}

// DrawEntities 按 SpriteComponent.Z 从小到大栅格化所有可见实体
func (c *Canvas) DrawEntities(em *ecs.EntityManager) {
	ids := ecs.GetEntitiesWith1[*components.SpriteComponent](em)
	sprites := make(map[ecs.EntityID]*components.SpriteComponent, len(ids))
	for _, id := range ids {
		sprites[id], _ = ecs.GetComponent[*components.SpriteComponent](em, id)
	}
	sort.SliceStable(ids, func(i, j int) bool {
		return sprites[ids[i]].Z < sprites[ids[j]].Z
	})

	for _, id := range ids {
		sprite := sprites[id]
		glyph, ok := glyphs[sprite.Texture]
		if !ok {
			continue
		}

		var x, y float64
		if pb, ok := ecs.GetComponent[*components.PhysicsBodyComponent](em, id); ok && pb.Body != nil {
			x, y = pb.Body.Position()
		} else if pos, ok := ecs.GetComponent[*components.PositionComponent](em, id); ok {
			x, y = pos.X, pos.Y
		} else {
			continue
		}

		if obstacle, ok := ecs.GetComponent[*components.ObstacleComponent](em, id); ok {
			c.FillRect(x, y+obstacle.LowerY, obstacle.WallWidth, obstacle.WallHeight, glyph)
			c.FillRect(x, y+obstacle.UpperY, obstacle.WallWidth, obstacle.WallHeight, glyph)
			continue
		}
		c.FillRect(x, y, sprite.Width, sprite.Height, glyph)
	}
}

// Blit 把画布写到 tcell 屏幕
func (c *Canvas) Blit(screen tcell.Screen) {
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			cell := c.cells[row*c.cols+col]
			if cell.Rune == 0 {
				continue
			}
			screen.SetContent(col, row, cell.Rune, nil, cell.Style)
		}
	}
}
