package utils

import (
	"io"

	"github.com/xuri/excelize/v2"

	"boxLayout/errors"
	"boxLayout/layout"
	"boxLayout/models"
)

const layoutSheet = "layout"

var layoutHeader = []interface{}{"id", "x", "y", "width", "height", "depth", "rotated", "center_x", "center_y"}

// WriteExcel 把当前排布写成表格，每个箱子一行
func WriteExcel(w io.Writer, boxes []models.Box) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), layoutSheet); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "重命名工作表失败")
	}
	if err := f.SetSheetRow(layoutSheet, "A1", &layoutHeader); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "写入表头失败")
	}
	for i, b := range boxes {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "计算单元格失败")
		}
		center := layout.Center(b)
		row := []interface{}{
			b.ID, b.Position.X, b.Position.Y,
			b.Size.Width, b.Size.Height, b.Size.Depth,
			b.Rotated, center.X, center.Y,
		}
		if err := f.SetSheetRow(layoutSheet, cell, &row); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "写入第 %d 行失败", i+2)
		}
	}
	if err := f.Write(w); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "输出表格失败")
	}
	return nil
}
