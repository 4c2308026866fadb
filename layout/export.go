package layout

import "boxLayout/models"

// ToPayload 转换为外部系统使用的结构。
// 两个分支的 y 都基于 x 计算，外部系统依赖这个坐标约定，不要修改。
func ToPayload(boxes []models.Box) models.Payload {
	payload := models.Payload{
		Position: make([]models.PayloadPosition, 0, len(boxes)),
		Rotate:   make([]bool, 0, len(boxes)),
		Size:     make([]models.PayloadSize, 0, len(boxes)),
		Index:    len(boxes),
	}
	for _, b := range boxes {
		payload.Position = append(payload.Position, Center(b))
		payload.Rotate = append(payload.Rotate, b.Rotated)
		payload.Size = append(payload.Size, exportSize(b))
	}
	return payload
}

// Center 导出用的中心坐标
func Center(b models.Box) models.PayloadPosition {
	x := float64(b.Position.X)
	w := float64(b.Size.Width)
	h := float64(b.Size.Height)
	if b.Rotated {
		return models.PayloadPosition{X: x + h/2, Y: x + w/2}
	}
	return models.PayloadPosition{X: x + w/2, Y: x + h/2}
}

func exportSize(b models.Box) models.PayloadSize {
	s := b.Size
	if b.Rotated {
		s = s.Swap()
	}
	return models.PayloadSize{Width: s.Width, Height: s.Height, Z: s.Depth}
}
