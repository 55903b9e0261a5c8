package entities

// 贴图名称，渲染端据此生成/查找图像
const (
	TextureBirdA  = "bird_a"
	TextureBirdB  = "bird_b"
	TextureWall   = "wall"
	TextureGround = "ground"
	TextureCloud  = "cloud"
	TextureItem   = "item"
)

// 绘制层级
const (
	ZCloud    = -100
	ZObstacle = -50
	ZItem     = -40
	ZGround   = 0
	ZPlayer   = 10
)
