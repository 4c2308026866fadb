package layout

import (
	"boxLayout/errors"
	"boxLayout/models"
)

// Registry 按创建顺序保存箱子，负责分配 ID。
// 所有修改都是写时复制：返回给调用方的切片不会被后续修改影响。
type Registry struct {
	boxes     []models.Box
	nextID    int
	legacyIDs bool
}

// NewRegistry legacyIDs 为 true 时按 len(list)+1 分配 ID，删除后可能出现重复 ID
func NewRegistry(legacyIDs bool) *Registry {
	return &Registry{nextID: 1, legacyIDs: legacyIDs}
}

func (r *Registry) Add(box models.Box) int {
	id := r.nextID
	if r.legacyIDs {
		id = len(r.boxes) + 1
	} else {
		r.nextID++
	}
	box.ID = id

	next := make([]models.Box, len(r.boxes), len(r.boxes)+1)
	copy(next, r.boxes)
	r.boxes = append(next, box)
	return id
}

// Remove 删除所有该 ID 的箱子，返回是否删除了任何箱子
func (r *Registry) Remove(id int) bool {
	next := make([]models.Box, 0, len(r.boxes))
	for _, b := range r.boxes {
		if b.ID != id {
			next = append(next, b)
		}
	}
	removed := len(next) != len(r.boxes)
	r.boxes = next
	return removed
}

// Update 对第一个匹配的箱子执行 mutate，ID 不可被修改
func (r *Registry) Update(id int, mutate func(*models.Box)) (models.Box, error) {
	idx := r.index(id)
	if idx == -1 {
		return models.Box{}, errors.New(errors.ErrCodeNotFound, "箱子 %d 不存在", id)
	}
	next := make([]models.Box, len(r.boxes))
	copy(next, r.boxes)

	box := next[idx]
	mutate(&box)
	box.ID = id
	next[idx] = box
	r.boxes = next
	return box, nil
}

// UpdateAll 按位置对每个箱子执行 mutate，重复 ID 的箱子也都会被修改
func (r *Registry) UpdateAll(mutate func(*models.Box)) {
	next := make([]models.Box, len(r.boxes))
	copy(next, r.boxes)
	for i := range next {
		id := next[i].ID
		mutate(&next[i])
		next[i].ID = id
	}
	r.boxes = next
}

func (r *Registry) Find(id int) (models.Box, bool) {
	if idx := r.index(id); idx != -1 {
		return r.boxes[idx], true
	}
	return models.Box{}, false
}

func (r *Registry) List() []models.Box {
	out := make([]models.Box, len(r.boxes))
	copy(out, r.boxes)
	return out
}

func (r *Registry) Len() int {
	return len(r.boxes)
}

// replace 整体替换，用于碰撞检测回写标记。长度和顺序必须与当前一致。
func (r *Registry) replace(boxes []models.Box) {
	next := make([]models.Box, len(boxes))
	copy(next, boxes)
	r.boxes = next
}

func (r *Registry) index(id int) int {
	for i, b := range r.boxes {
		if b.ID == id {
			return i
		}
	}
	return -1
}
