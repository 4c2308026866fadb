package utils

import (
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"boxLayout/errors"
	"boxLayout/models"
)

// 支持 30*60、30-60、30×60、30 x 60 x 10 等格式，第三段为深度
var sizePattern = regexp.MustCompile(`(\d+)\s*[×xX*-]\s*(\d+)(?:\s*[×xX*-]\s*(\d+))?`)

func extractSize(text string) (models.Size, bool) {
	match := sizePattern.FindStringSubmatch(text)
	if len(match) < 3 {
		return models.Size{}, false
	}
	width, err := strconv.Atoi(match[1])
	if err != nil {
		return models.Size{}, false
	}
	height, err := strconv.Atoi(match[2])
	if err != nil {
		return models.Size{}, false
	}
	size := models.Size{Width: width, Height: height}
	if match[3] != "" {
		if depth, err := strconv.Atoi(match[3]); err == nil {
			size.Depth = depth
		}
	}
	if size.Width <= 0 || size.Height <= 0 {
		return models.Size{}, false
	}
	return size, true
}

func isRotated(text string) bool {
	return strings.Contains(strings.ToLower(text), "rotate") || strings.Contains(text, "旋转")
}

// ReadExcel 读取第一个工作表，在表头中找到 column 列，逐行解析箱子尺寸。
// 解析不出尺寸的行跳过；scale 大于 1 时尺寸按比例缩小（毫米输入时为 5）。
func ReadExcel(r io.Reader, column string, scale int) ([]models.BoxSpec, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "无法打开表格")
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "无法读取工作表 %s", sheet)
	}
	if len(rows) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "工作表 %s 为空", sheet)
	}

	// 找出指定列位置
	colIndex := -1
	for i, val := range rows[0] {
		if strings.EqualFold(strings.TrimSpace(val), column) {
			colIndex = i
			break
		}
	}
	if colIndex == -1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "找不到尺寸列：%s", column)
	}

	var result []models.BoxSpec
	for _, row := range rows[1:] {
		if len(row) <= colIndex {
			continue
		}
		text := row[colIndex]
		size, ok := extractSize(text)
		if !ok {
			continue
		}
		size, ok = applyScale(size, scale)
		if !ok {
			continue
		}
		result = append(result, models.BoxSpec{
			Remark:  text,
			Size:    size,
			Rotated: isRotated(text),
		})
	}
	return result, nil
}
