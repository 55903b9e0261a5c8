package systems

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/flappy/pkg/components"
	"github.com/gonewx/flappy/pkg/config"
	"github.com/gonewx/flappy/pkg/ecs"
	"github.com/gonewx/flappy/pkg/entities"
	"github.com/gonewx/flappy/pkg/utils"
)

// RenderSystem 绘制游戏世界实体
//
// 实体按 SpriteComponent.Z 从小到大绘制（同层按创建顺序）。
// 位置来源：有刚体的实体取刚体位置，装饰实体取 PositionComponent。
// 墙壁对一个实体画两块墙，上墙垂直翻转。
// HUD 文字不在这里绘制，由场景负责。
type RenderSystem struct {
	entityManager *ecs.EntityManager
	worldHeight   float64
	textures      map[string]*ebiten.Image
}

// NewRenderSystem 创建渲染系统并生成全部贴图
func NewRenderSystem(em *ecs.EntityManager, cfg *config.GameConfig) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
		worldHeight:   cfg.World.Height,
		textures:      newTextureSet(cfg),
	}
}

// newTextureSet 按配置尺寸生成贴图
func newTextureSet(cfg *config.GameConfig) map[string]*ebiten.Image {
	pw, ph := int(cfg.Player.Width), int(cfg.Player.Height)
	return map[string]*ebiten.Image{
		entities.TextureBirdA:  utils.NewBirdImage(pw, ph, true),
		entities.TextureBirdB:  utils.NewBirdImage(pw, ph, false),
		entities.TextureWall:   utils.NewWallImage(int(cfg.Obstacle.WallWidth), int(cfg.Obstacle.WallHeight)),
		entities.TextureGround: utils.NewGroundImage(int(cfg.Ground.TileWidth), int(cfg.GroundHeight())),
		entities.TextureCloud:  utils.NewCloudImage(int(cfg.Cloud.TileWidth), int(cfg.Cloud.TileHeight)),
		entities.TextureItem:   utils.NewItemImage(int(cfg.Item.Width), int(cfg.Item.Height)),
	}
}

// Draw 绘制所有拥有 SpriteComponent 的实体
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	ids := ecs.GetEntitiesWith1[*components.SpriteComponent](s.entityManager)
	sprites := make(map[ecs.EntityID]*components.SpriteComponent, len(ids))
	for _, id := range ids {
		sprites[id], _ = ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)
	}

	// GetEntitiesWith 已按ID排序，稳定排序保持同层的创建顺序
	sort.SliceStable(ids, func(i, j int) bool {
		return sprites[ids[i]].Z < sprites[ids[j]].Z
	})

	for _, id := range ids {
		s.drawEntity(screen, id, sprites[id])
	}
}

func (s *RenderSystem) drawEntity(screen *ebiten.Image, id ecs.EntityID, sprite *components.SpriteComponent) {
	img, ok := s.textures[sprite.Texture]
	if !ok {
		return
	}

	var x, y float64
	if pb, ok := ecs.GetComponent[*components.PhysicsBodyComponent](s.entityManager, id); ok && pb.Body != nil {
		x, y = pb.Body.Position()
	} else if pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id); ok {
		x, y = pos.X, pos.Y
	} else {
		return
	}

	if obstacle, ok := ecs.GetComponent[*components.ObstacleComponent](s.entityManager, id); ok {
		// 刚体位于 (x, 0)，墙壁的 Y 偏移即世界 Y
		s.drawImage(screen, img, x, y+obstacle.LowerY, obstacle.WallWidth, obstacle.WallHeight, 0, false)
		s.drawImage(screen, img, x, y+obstacle.UpperY, obstacle.WallWidth, obstacle.WallHeight, 0, true)
		return
	}

	rotation := 0.0
	if player, ok := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id); ok {
		rotation = player.Rotation
	}
	s.drawImage(screen, img, x, y, sprite.Width, sprite.Height, rotation, false)
}

// drawImage 以 (cx, cy) 为中心把图像缩放到 w×h 绘制
func (s *RenderSystem) drawImage(screen, img *ebiten.Image, cx, cy, w, h, rotation float64, flipY bool) {
	bounds := img.Bounds()
	iw, ih := float64(bounds.Dx()), float64(bounds.Dy())

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-iw/2, -ih/2)
	sy := h / ih
	if flipY {
		sy = -sy
	}
	op.GeoM.Scale(w/iw, sy)
	op.GeoM.Rotate(utils.RotationToScreen(rotation))
	sx, screenY := utils.WorldToScreen(cx, cy, s.worldHeight)
	op.GeoM.Translate(sx, screenY)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}
