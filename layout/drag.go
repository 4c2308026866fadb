package layout

import (
	"boxLayout/errors"
	"boxLayout/models"
)

type EventKind int

const (
	EventDown EventKind = iota
	EventMove
	EventUp
)

// PointerEvent 渲染端回传的鼠标/触摸事件
type PointerEvent struct {
	BoxID   int    `json:"boxId"`
	ClientX int    `json:"clientX"`
	ClientY int    `json:"clientY"`
	Type    string `json:"eventType"`
}

func (e PointerEvent) Point() models.Point {
	return models.Point{X: e.ClientX, Y: e.ClientY}
}

// Kind 把浏览器事件名映射为按下/移动/抬起
func (e PointerEvent) Kind() (EventKind, error) {
	switch e.Type {
	case "mousedown", "touchstart", "pointerdown":
		return EventDown, nil
	case "mousemove", "touchmove", "pointermove":
		return EventMove, nil
	case "mouseup", "touchend", "touchcancel", "pointerup":
		return EventUp, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "未知事件类型: %q", e.Type)
}

// DragSession 拖拽会话。Offset 是按下时指针相对箱子左上角的偏移。
type DragSession struct {
	Active bool         `json:"active"`
	Target int          `json:"target"`
	Offset models.Point `json:"offset"`
}

// DragController 两个状态：空闲、拖拽中。同一时间只有一个拖拽会话。
type DragController struct {
	session DragSession
}

func (d *DragController) Session() DragSession {
	return d.session
}

// Down 在箱子 id 上按下，箱子不存在时忽略
func (d *DragController) Down(reg *Registry, id int, p models.Point) bool {
	box, ok := reg.Find(id)
	if !ok {
		return false
	}
	d.session = DragSession{Active: true, Target: id, Offset: p.Sub(box.Position)}
	return true
}

// Move 只处理落在拖拽目标上的移动事件，其它箱子上的事件忽略
func (d *DragController) Move(reg *Registry, c models.Container, id int, p models.Point) (models.Box, bool) {
	if !d.session.Active || d.session.Target != id {
		return models.Box{}, false
	}
	box, ok := reg.Find(id)
	if !ok {
		return models.Box{}, false
	}
	next := Clamp(p.Sub(d.session.Offset), box.Size, c)
	updated, err := reg.Update(id, func(b *models.Box) {
		b.Position = next
	})
	if err != nil {
		return models.Box{}, false
	}
	return updated, true
}

// Up 无论落在哪个箱子上都结束拖拽
func (d *DragController) Up() {
	d.session = DragSession{}
}

// cancelIfTarget 目标箱子被删除时结束会话
func (d *DragController) cancelIfTarget(id int) {
	if d.session.Active && d.session.Target == id {
		d.Up()
	}
}
