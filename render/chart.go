// Package render 用 go-echarts 画出容器和箱子的预览图。
package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"boxLayout/models"
)

const (
	colorNormal   = "#d9534f"
	colorSelected = "#337ab7"
)

// Chart 每个箱子画成一个方形散点，左上角为坐标，y 轴反向与屏幕坐标一致。
// 选中和重叠的箱子单独一个系列。
func Chart(boxes []models.Box, c models.Container) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Box Layout",
			Width:     fmt.Sprintf("%dpx", c.Width+120),
			Height:    fmt.Sprintf("%dpx", c.Height+120),
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Box Layout",
			Subtitle: fmt.Sprintf("container %dx%d, %d boxes", c.Width, c.Height, len(boxes)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "x", Min: 0, Max: c.Width}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "y", Min: 0, Max: c.Height, Inverse: opts.Bool(true)}),
	)

	var normal, selected []opts.ScatterData
	for _, b := range boxes {
		item := opts.ScatterData{
			Name:       fmt.Sprintf("Box %d", b.ID),
			Value:      []int{b.Position.X, b.Position.Y},
			Symbol:     "rect",
			SymbolSize: max(b.Size.Width, b.Size.Height),
		}
		if b.Selected {
			selected = append(selected, item)
		} else {
			normal = append(normal, item)
		}
	}

	scatter.AddSeries("boxes", normal, charts.WithItemStyleOpts(opts.ItemStyle{Color: colorNormal}))
	scatter.AddSeries("selected", selected, charts.WithItemStyleOpts(opts.ItemStyle{Color: colorSelected}))
	return scatter
}

// Render 输出完整 HTML 页面
func Render(w io.Writer, boxes []models.Box, c models.Container) error {
	return Chart(boxes, c).Render(w)
}
