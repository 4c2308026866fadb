package layout

import "boxLayout/models"

// ProbeSize 碰撞检测使用固定边长的探测矩形，与箱子实际尺寸无关
const ProbeSize = 100

// Overlaps 两个箱子的探测矩形是否相交
func Overlaps(a, b models.Box) bool {
	return overlapsProbe(a, b, ProbeSize)
}

// Recompute 两两比较所有箱子，重叠的箱子标记为选中；
// 没有重叠的箱子只有在它是 selectedID 时才保持选中。复杂度 O(n²)。
func Recompute(boxes []models.Box, selectedID int) []models.Box {
	return recompute(boxes, selectedID, ProbeSize)
}

func recompute(boxes []models.Box, selectedID, probe int) []models.Box {
	out := markSelected(boxes, selectedID)
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if overlapsProbe(out[i], out[j], probe) {
				out[i].Selected = true
				out[j].Selected = true
			}
		}
	}
	return out
}

func overlapsProbe(a, b models.Box, probe int) bool {
	return probeRect(a, probe).Overlaps(probeRect(b, probe))
}

func probeRect(b models.Box, probe int) models.Rect {
	return models.Rect{X: b.Position.X, Y: b.Position.Y, Width: probe, Height: probe}
}

// markSelected 不做碰撞检测时只标记当前选中的箱子
func markSelected(boxes []models.Box, selectedID int) []models.Box {
	out := make([]models.Box, len(boxes))
	for i, b := range boxes {
		b.Selected = b.ID == selectedID
		out[i] = b
	}
	return out
}
