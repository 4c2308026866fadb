package models

// 坐标点，容器内坐标，左上角为原点
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// 尺寸，Depth 为 0 表示未设置
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	Depth  int `json:"depth,omitempty"`
}

// Swap 交换宽高，深度不变
func (s Size) Swap() Size {
	return Size{Width: s.Height, Height: s.Width, Depth: s.Depth}
}

// Valid 宽高在 (0, MaxDimension] 内，深度在 [0, MaxDimension] 内
func (s Size) Valid() bool {
	return s.Width > 0 && s.Height > 0 && s.Depth >= 0 &&
		s.Width <= MaxDimension && s.Height <= MaxDimension && s.Depth <= MaxDimension
}

// 矩形区域
type Rect struct {
	X, Y          int
	Width, Height int
}

func (r Rect) Right() int {
	return r.X + r.Width
}

func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// Overlaps 开区间相交判断，边贴边不算重叠
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && r.Right() > o.X &&
		r.Y < o.Bottom() && r.Bottom() > o.Y
}

// 箱子
type Box struct {
	ID       int   `json:"id"`
	Position Point `json:"position"`
	Size     Size  `json:"size"`
	Rotated  bool  `json:"rotated"`
	Selected bool  `json:"selected"`
}

// Rect 按存储尺寸返回箱子占据的矩形
func (b Box) Rect() Rect {
	return Rect{X: b.Position.X, Y: b.Position.Y, Width: b.Size.Width, Height: b.Size.Height}
}

// MaxDimension 容器和箱子单边尺寸上限
const MaxDimension = 100000

// 容器
type Container struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Valid 两边都在 (0, MaxDimension] 内
func (c Container) Valid() bool {
	return c.Width > 0 && c.Height > 0 && c.Width <= MaxDimension && c.Height <= MaxDimension
}

// ====== 导出结构 ======

type PayloadPosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type PayloadSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	Z      int `json:"z,omitempty"`
}

// Payload 提交给外部系统的数据，按字段分组的平行数组
type Payload struct {
	Position []PayloadPosition `json:"position"`
	Rotate   []bool            `json:"rotate"`
	Size     []PayloadSize     `json:"size"`
	Index    int               `json:"index"`
}

// 从表格导入的一行箱子数据，Size 为用户输入方向
type BoxSpec struct {
	Remark  string `json:"remark"`
	Size    Size   `json:"size"`
	Rotated bool   `json:"rotated"`
}
