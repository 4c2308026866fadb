// Package layout 箱子排布引擎：注册表、拖拽约束、碰撞检测、自动摆放和导出。
//
// Editor 不是并发安全的，调用方需要自己串行化访问。
package layout

import (
	"boxLayout/errors"
	"boxLayout/models"
)

type Options struct {
	// 新增箱子时在空闲位置自动摆放，否则放在 (0,0)
	AutoPlace bool `toml:"auto_place" json:"autoPlace"`
	// 每次修改后重新计算重叠并标记
	DetectOverlaps bool `toml:"detect_overlaps" json:"detectOverlaps"`
	// 容器缩小时把箱子拉回容器内
	ReclampOnResize bool `toml:"reclamp_on_resize" json:"reclampOnResize"`
	// 按 len(list)+1 分配 ID
	LegacyIDs bool `toml:"legacy_ids" json:"legacyIds"`
	GridStep  int  `toml:"grid_step" json:"gridStep"`
	ProbeSize int  `toml:"probe_size" json:"probeSize"`
}

func DefaultOptions() Options {
	return Options{GridStep: GridStep, ProbeSize: ProbeSize}
}

type Editor struct {
	opts      Options
	reg       *Registry
	drag      DragController
	container models.Container
	// 新箱子的尺寸（用户输入方向）和旋转
	boxSize    models.Size
	rotated    bool
	selectedID int
}

func NewEditor(c models.Container, boxSize models.Size, opts Options) *Editor {
	if opts.GridStep <= 0 {
		opts.GridStep = GridStep
	}
	if opts.ProbeSize <= 0 {
		opts.ProbeSize = ProbeSize
	}
	return &Editor{
		opts:      opts,
		reg:       NewRegistry(opts.LegacyIDs),
		container: c,
		boxSize:   boxSize,
	}
}

func (e *Editor) Options() Options {
	return e.opts
}

func (e *Editor) Boxes() []models.Box {
	return e.reg.List()
}

func (e *Editor) Box(id int) (models.Box, bool) {
	return e.reg.Find(id)
}

func (e *Editor) Container() models.Container {
	return e.container
}

func (e *Editor) BoxSize() models.Size {
	return e.boxSize
}

func (e *Editor) Rotated() bool {
	return e.rotated
}

// SelectedID 没有选中时为 0
func (e *Editor) SelectedID() int {
	return e.selectedID
}

func (e *Editor) DragSession() DragSession {
	return e.drag.Session()
}

func (e *Editor) Payload() models.Payload {
	return ToPayload(e.reg.List())
}

// ====== 新增 / 删除 ======

// AddBox 用当前全局尺寸和旋转新增一个箱子
func (e *Editor) AddBox() (models.Box, error) {
	return e.AddBoxSized(e.boxSize, e.rotated)
}

// AddBoxSized size 为用户输入方向的尺寸，rotated 时交换宽高后存储。
// 开启自动摆放且找不到空位时返回 NO_FREE_SPACE，不创建箱子。
func (e *Editor) AddBoxSized(size models.Size, rotated bool) (models.Box, error) {
	if err := validSize(size); err != nil {
		return models.Box{}, err
	}
	stored := size
	if rotated {
		stored = stored.Swap()
	}

	var pos models.Point
	if e.opts.AutoPlace {
		p, ok := findFreeSpace(stored, e.reg.List(), e.container, e.opts.GridStep)
		if !ok {
			return models.Box{}, errors.New(errors.ErrCodeNoFreeSpace,
				"容器 %dx%d 内没有放得下 %dx%d 的空位", e.container.Width, e.container.Height, stored.Width, stored.Height)
		}
		pos = p
	}

	id := e.reg.Add(models.Box{Position: pos, Size: stored, Rotated: rotated})
	e.refresh()
	box, _ := e.reg.Find(id)
	return box, nil
}

// DeleteSelected 删除当前选中的箱子，没有选中或已被删除时不做任何事
func (e *Editor) DeleteSelected() bool {
	if e.selectedID == 0 {
		return false
	}
	id := e.selectedID
	e.selectedID = 0
	e.drag.cancelIfTarget(id)
	removed := e.reg.Remove(id)
	e.refresh()
	return removed
}

// DeleteAllSelected 删除所有被标记为选中的箱子（包括重叠的箱子），返回删除数量
func (e *Editor) DeleteAllSelected() int {
	var ids []int
	for _, b := range e.reg.List() {
		if b.Selected {
			ids = append(ids, b.ID)
		}
	}
	for _, id := range ids {
		e.reg.Remove(id)
		e.drag.cancelIfTarget(id)
		if id == e.selectedID {
			e.selectedID = 0
		}
	}
	e.refresh()
	return len(ids)
}

// ====== 尺寸 ======

// SetGlobalSize 修改新箱子的默认尺寸，并同步修改所有已有箱子：
// 旋转过的箱子存储 (h,w)，其余存储 (w,h)。
func (e *Editor) SetGlobalSize(size models.Size) error {
	if err := validSize(size); err != nil {
		return err
	}
	e.boxSize = size
	e.reg.UpdateAll(func(box *models.Box) {
		box.Size = size
		if box.Rotated {
			box.Size = size.Swap()
		}
	})
	e.refresh()
	return nil
}

// SetRotated 只影响之后新增的箱子
func (e *Editor) SetRotated(rotated bool) {
	e.rotated = rotated
}

// SetContainerSize 默认不移动已有箱子，缩小后箱子可能落在容器外
func (e *Editor) SetContainerSize(c models.Container) error {
	if !c.Valid() {
		return errors.New(errors.ErrCodeInvalidInput, "容器尺寸必须在 1 到 %d 之间: %dx%d", models.MaxDimension, c.Width, c.Height)
	}
	e.container = c
	if e.opts.ReclampOnResize {
		e.reg.UpdateAll(func(box *models.Box) {
			box.Position = Clamp(box.Position, box.Size, c)
		})
		e.refresh()
	}
	return nil
}

// ====== 拖拽 ======

// Pointer 处理一次指针事件，返回的 bool 表示箱子状态是否发生变化
func (e *Editor) Pointer(ev PointerEvent) (bool, error) {
	kind, err := ev.Kind()
	if err != nil {
		return false, err
	}
	switch kind {
	case EventDown:
		if !e.drag.Down(e.reg, ev.BoxID, ev.Point()) {
			return false, nil
		}
		e.selectedID = ev.BoxID
		e.refresh()
		return true, nil
	case EventMove:
		if _, ok := e.drag.Move(e.reg, e.container, ev.BoxID, ev.Point()); !ok {
			return false, nil
		}
		e.refresh()
		return true, nil
	default:
		active := e.drag.Session().Active
		e.drag.Up()
		if active && e.opts.DetectOverlaps {
			e.refresh()
			return true, nil
		}
		return false, nil
	}
}

// refresh 每次修改后同步选中标记。
// 开启重叠检测时只高亮正在拖拽的箱子和重叠的箱子，否则高亮最后按下的箱子。
func (e *Editor) refresh() {
	boxes := e.reg.List()
	if e.opts.DetectOverlaps {
		var dragging int
		if s := e.drag.Session(); s.Active {
			dragging = s.Target
		}
		e.reg.replace(recompute(boxes, dragging, e.opts.ProbeSize))
		return
	}
	e.reg.replace(markSelected(boxes, e.selectedID))
}

func validSize(s models.Size) error {
	if !s.Valid() {
		return errors.New(errors.ErrCodeInvalidInput, "箱子尺寸必须在 1 到 %d 之间: %dx%d", models.MaxDimension, s.Width, s.Height)
	}
	return nil
}
