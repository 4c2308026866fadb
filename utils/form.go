package utils

import (
	"strconv"
	"strings"

	"boxLayout/errors"
	"boxLayout/models"
)

// SizeForm 全局箱子尺寸表单，字段保持字符串，由 ParseSizeForm 校验
type SizeForm struct {
	Width   string `json:"width" form:"width"`
	Height  string `json:"height" form:"height"`
	Depth   string `json:"depth" form:"depth"`
	Rotated bool   `json:"rotated" form:"rotated"`
}

type ContainerForm struct {
	Width  string `json:"width" form:"width"`
	Height string `json:"height" form:"height"`
}

// ParseDimension 解析一个正整数输入，非数字、非正数或超过 models.MaxDimension 返回 INVALID_INPUT
func ParseDimension(field, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "%s 不是整数: %q", field, value)
	}
	if n <= 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s 必须大于 0: %d", field, n)
	}
	if n > models.MaxDimension {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s 不能超过 %d: %d", field, models.MaxDimension, n)
	}
	return n, nil
}

// ParseSizeForm 深度可以为空
func ParseSizeForm(form SizeForm, scale int) (models.Size, error) {
	w, err := ParseDimension("width", form.Width)
	if err != nil {
		return models.Size{}, err
	}
	h, err := ParseDimension("height", form.Height)
	if err != nil {
		return models.Size{}, err
	}
	size := models.Size{Width: w, Height: h}
	if strings.TrimSpace(form.Depth) != "" {
		if size.Depth, err = ParseDimension("depth", form.Depth); err != nil {
			return models.Size{}, err
		}
	}
	size, ok := applyScale(size, scale)
	if !ok {
		return models.Size{}, errors.New(errors.ErrCodeInvalidInput, "尺寸 %dx%d 按 1:%d 缩放后为 0", w, h, scale)
	}
	return size, nil
}

// ParseContainerForm 容器尺寸不缩放，直接使用容器坐标单位
func ParseContainerForm(form ContainerForm) (models.Container, error) {
	w, err := ParseDimension("container width", form.Width)
	if err != nil {
		return models.Container{}, err
	}
	h, err := ParseDimension("container height", form.Height)
	if err != nil {
		return models.Container{}, err
	}
	return models.Container{Width: w, Height: h}, nil
}

// applyScale 按 1:scale 缩小，scale <= 1 时不变
func applyScale(s models.Size, scale int) (models.Size, bool) {
	if scale <= 1 {
		return s, true
	}
	s.Width /= scale
	s.Height /= scale
	s.Depth /= scale
	return s, s.Width > 0 && s.Height > 0
}
