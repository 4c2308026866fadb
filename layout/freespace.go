package layout

import "boxLayout/models"

// GridStep 自动摆放时候选位置的网格步长
const GridStep = 10

// FindFreeSpace 按网格扫描容器，返回第一个不与已有箱子占位重叠的左上角坐标。
// 扫描顺序固定：x 外层，y 内层。候选矩形必须完整落在容器内。
// 找不到时返回 false。
func FindFreeSpace(size models.Size, boxes []models.Box, c models.Container) (models.Point, bool) {
	return findFreeSpace(size, boxes, c, GridStep)
}

func findFreeSpace(size models.Size, boxes []models.Box, c models.Container, step int) (models.Point, bool) {
	if step <= 0 {
		step = GridStep
	}
	if size.Width > c.Width || size.Height > c.Height {
		return models.Point{}, false
	}
	footprints := make([]models.Rect, len(boxes))
	for i, b := range boxes {
		footprints[i] = Footprint(b)
	}

	for x := 0; x+size.Width <= c.Width; x += step {
		for y := 0; y+size.Height <= c.Height; y += step {
			candidate := models.Rect{X: x, Y: y, Width: size.Width, Height: size.Height}
			if !overlapsAny(candidate, footprints) {
				return models.Point{X: x, Y: y}, true
			}
		}
	}
	return models.Point{}, false
}

// Footprint 箱子的近似占位：旋转过的箱子把存储的宽高再交换回来。
// 这不是箱子真实的宽高，摆放结果依赖这个近似。
func Footprint(b models.Box) models.Rect {
	r := b.Rect()
	if b.Rotated {
		r.Width, r.Height = r.Height, r.Width
	}
	return r
}

func overlapsAny(r models.Rect, others []models.Rect) bool {
	for _, o := range others {
		if r.Overlaps(o) {
			return true
		}
	}
	return false
}
