package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxLayout/errors"
	"boxLayout/models"
)

func container(w, h int) models.Container {
	return models.Container{Width: w, Height: h}
}

func boxAt(id, x, y, w, h int) models.Box {
	return models.Box{ID: id, Position: models.Point{X: x, Y: y}, Size: models.Size{Width: w, Height: h}}
}

// ========== Registry ==========

func TestRegistry_IDsAreMonotonic(t *testing.T) {
	reg := NewRegistry(false)
	for i := 0; i < 5; i++ {
		reg.Add(models.Box{})
	}
	var ids []int
	for _, b := range reg.List() {
		ids = append(ids, b.ID)
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids)
}

func TestRegistry_IDsNotReusedAfterRemove(t *testing.T) {
	reg := NewRegistry(false)
	reg.Add(models.Box{})
	reg.Add(models.Box{})
	require.True(t, reg.Remove(1))

	assert.Equal(t, 3, reg.Add(models.Box{}))
	assert.Equal(t, 4, reg.Add(models.Box{}))
}

func TestRegistry_LegacyIDsCollide(t *testing.T) {
	reg := NewRegistry(true)
	reg.Add(models.Box{})
	reg.Add(models.Box{})
	reg.Remove(1)

	// len+1 重新分配出 2，与现有箱子冲突
	assert.Equal(t, 2, reg.Add(models.Box{}))
	assert.Equal(t, 3, reg.Add(models.Box{}))
	assert.Equal(t, 3, reg.Len())
}

func TestRegistry_UpdateAllTouchesDuplicateIDs(t *testing.T) {
	reg := NewRegistry(true)
	reg.Add(boxAt(0, 0, 0, 10, 10))
	reg.Add(boxAt(0, 0, 0, 10, 10))
	reg.Remove(1)
	reg.Add(boxAt(0, 0, 0, 10, 10))
	before := reg.List()

	reg.UpdateAll(func(b *models.Box) {
		b.Size = models.Size{Width: 7, Height: 8}
		b.ID = 99
	})

	boxes := reg.List()
	require.Len(t, boxes, 2)
	for _, b := range boxes {
		assert.Equal(t, 2, b.ID, "id cannot be changed")
		assert.Equal(t, models.Size{Width: 7, Height: 8}, b.Size)
	}
	assert.Equal(t, models.Size{Width: 10, Height: 10}, before[0].Size, "earlier snapshot untouched")
}

func TestRegistry_UpdateIsCopyOnWrite(t *testing.T) {
	reg := NewRegistry(false)
	reg.Add(boxAt(0, 0, 0, 10, 10))
	reg.Add(boxAt(0, 5, 5, 10, 10))
	reg.Add(boxAt(0, 9, 9, 10, 10))
	before := reg.List()

	updated, err := reg.Update(2, func(b *models.Box) {
		b.Position = models.Point{X: 42, Y: 43}
		b.ID = 99
	})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.ID)
	assert.Equal(t, models.Point{X: 42, Y: 43}, updated.Position)

	assert.Equal(t, models.Point{X: 5, Y: 5}, before[1].Position, "earlier snapshot must not change")
	after := reg.List()
	assert.Equal(t, before[0], after[0])
	assert.Equal(t, before[2], after[2])
	assert.Equal(t, []int{1, 2, 3}, []int{after[0].ID, after[1].ID, after[2].ID})
}

func TestRegistry_UpdateMissing(t *testing.T) {
	reg := NewRegistry(false)
	_, err := reg.Update(7, func(*models.Box) {})
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))

	_, ok := reg.Find(7)
	assert.False(t, ok)
	assert.False(t, reg.Remove(7))
}

// ========== Clamp ==========

func TestClamp(t *testing.T) {
	c := container(500, 500)
	s := models.Size{Width: 50, Height: 50}
	tests := []struct {
		name string
		in   models.Point
		want models.Point
	}{
		{"inside", models.Point{X: 10, Y: 20}, models.Point{X: 10, Y: 20}},
		{"past bottom right", models.Point{X: 600, Y: 600}, models.Point{X: 450, Y: 450}},
		{"negative", models.Point{X: -5, Y: -30}, models.Point{X: 0, Y: 0}},
		{"mixed", models.Point{X: -5, Y: 470}, models.Point{X: 0, Y: 450}},
		{"exact edge", models.Point{X: 450, Y: 0}, models.Point{X: 450, Y: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clamp(tt.in, s, c))
		})
	}
}

func TestClamp_IdempotentAndBounded(t *testing.T) {
	c := container(300, 200)
	sizes := []models.Size{{Width: 1, Height: 1}, {Width: 50, Height: 80}, {Width: 300, Height: 200}}
	for _, s := range sizes {
		for x := -400; x <= 700; x += 37 {
			for y := -400; y <= 700; y += 41 {
				once := Clamp(models.Point{X: x, Y: y}, s, c)
				assert.Equal(t, once, Clamp(once, s, c))
				assert.GreaterOrEqual(t, once.X, 0)
				assert.GreaterOrEqual(t, once.Y, 0)
				assert.LessOrEqual(t, once.X, c.Width-s.Width)
				assert.LessOrEqual(t, once.Y, c.Height-s.Height)
			}
		}
	}
}

func TestClamp_BoxLargerThanContainer(t *testing.T) {
	got := Clamp(models.Point{X: 40, Y: 40}, models.Size{Width: 600, Height: 10}, container(500, 500))
	assert.Equal(t, models.Point{X: 0, Y: 40}, got)
}

// ========== Collision ==========

func TestOverlaps_Symmetric(t *testing.T) {
	positions := []models.Point{{X: 0, Y: 0}, {X: 50, Y: 50}, {X: 100, Y: 0}, {X: 99, Y: 99}, {X: 200, Y: 200}, {X: 0, Y: 100}}
	for i, p := range positions {
		for j, q := range positions {
			a := boxAt(i+1, p.X, p.Y, 10, 10)
			b := boxAt(j+1, q.X, q.Y, 10, 10)
			assert.Equal(t, Overlaps(a, b), Overlaps(b, a), "%v vs %v", p, q)
		}
	}
}

func TestOverlaps_UsesFixedProbe(t *testing.T) {
	// 实际尺寸很小，但探测矩形是 100x100
	a := boxAt(1, 0, 0, 5, 5)
	b := boxAt(2, 99, 99, 5, 5)
	assert.True(t, Overlaps(a, b))

	// 边贴边不算重叠
	c := boxAt(3, 100, 0, 5, 5)
	assert.False(t, Overlaps(a, c))
}

func TestRecompute_FlagsAndClears(t *testing.T) {
	boxes := []models.Box{boxAt(1, 0, 0, 50, 50), boxAt(2, 50, 50, 50, 50)}
	got := Recompute(boxes, 0)
	assert.True(t, got[0].Selected)
	assert.True(t, got[1].Selected)

	got[1].Position = models.Point{X: 200, Y: 200}
	got = Recompute(got, 0)
	assert.False(t, got[0].Selected)
	assert.False(t, got[1].Selected)
}

func TestRecompute_NoPartnerMeansUnselected(t *testing.T) {
	boxes := []models.Box{
		boxAt(1, 0, 0, 10, 10),
		boxAt(2, 60, 60, 10, 10),
		boxAt(3, 400, 400, 10, 10),
	}
	boxes[2].Selected = true
	got := Recompute(boxes, 0)
	assert.True(t, got[0].Selected)
	assert.True(t, got[1].Selected)
	assert.False(t, got[2].Selected)

	got = Recompute(boxes, 3)
	assert.True(t, got[2].Selected, "highlighted box stays selected")
	assert.False(t, boxes[0].Selected, "input must not be mutated")
}

// ========== Free space ==========

func TestFindFreeSpace_EmptyContainer(t *testing.T) {
	p, ok := FindFreeSpace(models.Size{Width: 50, Height: 50}, nil, container(500, 500))
	require.True(t, ok)
	assert.Equal(t, models.Point{X: 0, Y: 0}, p)
}

func TestFindFreeSpace_ScansYInner(t *testing.T) {
	boxes := []models.Box{boxAt(1, 0, 0, 50, 50)}
	p, ok := FindFreeSpace(models.Size{Width: 50, Height: 50}, boxes, container(500, 500))
	require.True(t, ok)
	// x=0 列继续向下找，先于 x=50
	assert.Equal(t, models.Point{X: 0, Y: 50}, p)
}

func TestFindFreeSpace_Deterministic(t *testing.T) {
	boxes := []models.Box{boxAt(1, 0, 0, 50, 200), boxAt(2, 30, 210, 40, 40)}
	size := models.Size{Width: 60, Height: 60}
	first, ok := FindFreeSpace(size, boxes, container(300, 300))
	require.True(t, ok)
	for i := 0; i < 5; i++ {
		again, ok := FindFreeSpace(size, boxes, container(300, 300))
		require.True(t, ok)
		assert.Equal(t, first, again)
	}
}

func TestFindFreeSpace_RotatedFootprintSwapsBack(t *testing.T) {
	// 存储尺寸 30x60，占位按 60x30 计算
	rotated := boxAt(1, 0, 0, 30, 60)
	rotated.Rotated = true
	assert.Equal(t, models.Rect{X: 0, Y: 0, Width: 60, Height: 30}, Footprint(rotated))

	p, ok := FindFreeSpace(models.Size{Width: 10, Height: 10}, []models.Box{rotated}, container(100, 100))
	require.True(t, ok)
	assert.Equal(t, models.Point{X: 0, Y: 30}, p)
}

func TestFindFreeSpace_Full(t *testing.T) {
	boxes := []models.Box{boxAt(1, 0, 0, 100, 100)}
	_, ok := FindFreeSpace(models.Size{Width: 10, Height: 10}, boxes, container(100, 100))
	assert.False(t, ok)

	_, ok = FindFreeSpace(models.Size{Width: 200, Height: 10}, nil, container(100, 100))
	assert.False(t, ok, "box wider than container never fits")
}

func TestFindFreeSpace_BoxLargerThanContainer(t *testing.T) {
	// 高度超出时直接返回，不按列扫描 MaxDimension/step 次
	_, ok := findFreeSpace(models.Size{Width: 1, Height: 101}, nil, container(models.MaxDimension, 100), 1)
	assert.False(t, ok)
}

// ========== Export ==========

func TestToPayload_RotatedBox(t *testing.T) {
	b := boxAt(1, 10, 20, 30, 60)
	b.Rotated = true
	payload := ToPayload([]models.Box{b})

	require.Equal(t, 1, payload.Index)
	assert.Equal(t, models.PayloadSize{Width: 60, Height: 30}, payload.Size[0])
	assert.Equal(t, models.PayloadPosition{X: 40, Y: 25}, payload.Position[0])
	assert.Equal(t, []bool{true}, payload.Rotate)
}

func TestToPayload_PlainBoxReusesX(t *testing.T) {
	b := boxAt(1, 10, 20, 30, 60)
	b.Size.Depth = 7
	payload := ToPayload([]models.Box{b, boxAt(2, 0, 0, 5, 5)})

	assert.Equal(t, 2, payload.Index)
	assert.Equal(t, models.PayloadPosition{X: 25, Y: 40}, payload.Position[0])
	assert.Equal(t, models.PayloadSize{Width: 30, Height: 60, Z: 7}, payload.Size[0])
	assert.Equal(t, models.PayloadPosition{X: 2.5, Y: 2.5}, payload.Position[1])
	assert.Equal(t, []bool{false, false}, payload.Rotate)
}

func TestToPayload_Empty(t *testing.T) {
	payload := ToPayload(nil)
	assert.Equal(t, 0, payload.Index)
	assert.NotNil(t, payload.Position)
	assert.NotNil(t, payload.Rotate)
	assert.NotNil(t, payload.Size)
}
