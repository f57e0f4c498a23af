package layout

// 该文件定义排版结果的数据模型，供排版计算、渲染与调试 JSON 共用。
// 坐标单位统一为 pt，原点位于页面左下角，Y 轴向上。

// Result 保存排版后的页面与文档元信息。
type Result struct {
	Pages []Page       `json:"pages"`
	Meta  DocumentMeta `json:"meta"`
}

// Page 是一页已经定位好的绘制指令，按渲染顺序排列。
type Page struct {
	Index    int           `json:"index"`
	Width    float64       `json:"width"`
	Height   float64       `json:"height"`
	Commands []DrawCommand `json:"commands"`
}

// DrawCommand 表示在 (X, Y) 处以 Font 绘制一行文本，Y 为基线位置。
type DrawCommand struct {
	Text  string   `json:"text"`
	X     float64  `json:"x"`
	Y     float64  `json:"y"`
	Font  FontSpec `json:"font"`
	Color Color    `json:"color"`
}

// FontSpec 同时用于测量与绘制，两者必须一致，否则折行位置会错位。
type FontSpec struct {
	Family string  `json:"family"`
	Size   float64 `json:"size"` // pt
	Weight string  `json:"weight"`
}

// 常用字重。
const (
	WeightRegular = "regular"
	WeightBold    = "bold"
)

// Bold 判断字重是否为粗体。
func (f FontSpec) Bold() bool { return f.Weight == WeightBold }

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// DocumentMeta 保存 PDF 元信息。
type DocumentMeta struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords"`
}

// LineCount 返回所有页面上的绘制指令数量。
func (r *Result) LineCount() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, p := range r.Pages {
		n += len(p.Commands)
	}
	return n
}
