package layout

import (
	"fmt"
	"math"
)

// Measurer 负责在给定字体下测量文本宽度（pt）。实现必须是确定性的纯函数。
// 渲染器同时实现该接口，保证测量与绘制使用同一套字体度量。
type Measurer interface {
	MeasureText(text string, font FontSpec) (float64, error)
}

// Config 描述页面几何与文字样式，单位均为 pt。
// 纵向位置（TitleTop、BodyTop、MarginTop、MarginBottom）都是距离页面对应边缘的距离。
type Config struct {
	PageWidth  float64 `json:"pageWidth"`
	PageHeight float64 `json:"pageHeight"`

	MarginLeft   float64 `json:"marginLeft"`
	MarginRight  float64 `json:"marginRight"`
	MarginTop    float64 `json:"marginTop"`    // 换页后正文的起始位置
	MarginBottom float64 `json:"marginBottom"` // 低于该高度的行会触发换页

	TitleTop      float64  `json:"titleTop"`
	TitleFont     FontSpec `json:"titleFont"`
	TitleColor    Color    `json:"titleColor"`
	TitleMaxChars int      `json:"titleMaxChars"`
	FallbackTitle string   `json:"fallbackTitle"`

	BodyTop      float64  `json:"bodyTop"`
	BodyFont     FontSpec `json:"bodyFont"`
	BodyColor    Color    `json:"bodyColor"`
	LineHeight   float64  `json:"lineHeight"`
	ParagraphGap float64  `json:"paragraphGap"`

	// Meta 是写入 PDF 的文档信息，Title 由每次排版的标题覆盖。
	Meta DocumentMeta `json:"meta"`
}

// DefaultConfig 返回 A4、2cm 边距、Helvetica 16/11 的默认排版参数。
func DefaultConfig() Config {
	w, h, _ := PageSize("A4", false)
	return Config{
		PageWidth:     w,
		PageHeight:    h,
		MarginLeft:    2 * CM,
		MarginRight:   2 * CM,
		MarginTop:     2 * CM,
		MarginBottom:  2 * CM,
		TitleTop:      2 * CM,
		TitleFont:     FontSpec{Family: "Helvetica", Size: 16, Weight: WeightBold},
		TitleColor:    Color{R: 0x22, G: 0x22, B: 0x22},
		TitleMaxChars: 100,
		FallbackTitle: "Note",
		BodyTop:       3 * CM,
		BodyFont:      FontSpec{Family: "Helvetica", Size: 11, Weight: WeightRegular},
		BodyColor:     Color{},
		LineHeight:    14,
		ParagraphGap:  10,
		Meta:          DocumentMeta{Creator: "notepress"},
	}
}

// ContentWidth 是正文可用宽度，即折行边界。
func (c Config) ContentWidth() float64 {
	return c.PageWidth - c.MarginLeft - c.MarginRight
}

// Validate 检查参数是否可以用于排版。
func (c Config) Validate() error {
	if !(c.PageWidth > 0) || !(c.PageHeight > 0) {
		return fmt.Errorf("layout: 页面尺寸无效 %gx%g", c.PageWidth, c.PageHeight)
	}
	if !(c.ContentWidth() > 0) {
		return fmt.Errorf("layout: 左右边距过大，可用宽度为 %g", c.ContentWidth())
	}
	if !(c.LineHeight > 0) {
		return fmt.Errorf("layout: 行高必须为正数，当前 %g", c.LineHeight)
	}
	if c.ParagraphGap < 0 || math.IsNaN(c.ParagraphGap) {
		return fmt.Errorf("layout: 段落间距不能为负数，当前 %g", c.ParagraphGap)
	}
	if !(c.TitleFont.Size > 0) || !(c.BodyFont.Size > 0) {
		return fmt.Errorf("layout: 字号必须为正数（标题 %g，正文 %g）", c.TitleFont.Size, c.BodyFont.Size)
	}
	if c.TitleMaxChars <= 0 {
		return fmt.Errorf("layout: 标题最大字符数必须为正数，当前 %d", c.TitleMaxChars)
	}
	return nil
}
