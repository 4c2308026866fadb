package layout

import "boxLayout/models"

// Clamp 把拖拽目标位置限制在容器内。
// 箱子比容器大时该方向结果为 0，箱子会超出容器，这是允许的。
func Clamp(p models.Point, s models.Size, c models.Container) models.Point {
	return models.Point{
		X: max(0, min(p.X, c.Width-s.Width)),
		Y: max(0, min(p.Y, c.Height-s.Height)),
	}
}
