package fpdfrenderer

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"codeberg.org/go-pdf/fpdf"

	"github.com/ByLCY/notepress/layout"
	"github.com/ByLCY/notepress/renderer"
)

// Renderer 使用 PDF 标准 14 字体（Helvetica/Times/Courier）输出，无需嵌入字体文件。
// 测量与绘制共用 fpdf 内置的字宽表，结果与其他使用核心字体的 PDF 工具一致。
// 文本按 cp1252 编码，超出该字符集的字符会被替换而不会报错；多语言文本请使用 canvas 后端。
type Renderer struct {
	mu      sync.Mutex
	measure *fpdf.Fpdf // 仅用于测量，SetFont 有状态，需加锁
	tr      func(string) string
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ renderer.PageSink = (*Sink)(nil)
	_ layout.Measurer   = (*Renderer)(nil)
)

// NewRenderer creates a core-font renderer.
func NewRenderer() *Renderer {
	m := fpdf.New("P", "pt", "A4", "")
	return &Renderer{
		measure: m,
		tr:      m.UnicodeTranslatorFromDescriptor(""), // cp1252
	}
}

// MeasureText 实现 layout.Measurer，返回 pt 宽度。
func (r *Renderer) MeasureText(text string, font layout.FontSpec) (float64, error) {
	family, style := coreFont(font)
	r.mu.Lock()
	defer r.mu.Unlock()

	r.measure.SetFont(family, style, font.Size)
	w := r.measure.GetStringWidth(r.tr(text))
	if r.measure.Err() {
		err := r.measure.Error()
		r.measure.ClearError()
		return 0, fmt.Errorf("测量文本失败: %w", err)
	}
	return w, nil
}

// Render renders the result into a PDF byte slice.
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	var buf bytes.Buffer
	if err := renderer.Stream(result, r.NewSink(&buf, result.Meta)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Sink writes pages into an fpdf document and serializes it on Close.
type Sink struct {
	w    io.Writer
	meta layout.DocumentMeta
	doc  *fpdf.Fpdf
	tr   func(string) string
}

// NewSink returns a PageSink writing a PDF document to w.
func (r *Renderer) NewSink(w io.Writer, meta layout.DocumentMeta) *Sink {
	return &Sink{w: w, meta: meta}
}

// WritePage adds one page. fpdf 的 Y 轴向下，这里按页面高度翻转。
func (s *Sink) WritePage(page layout.Page) error {
	size := fpdf.SizeType{Wd: page.Width, Ht: page.Height}
	if s.doc == nil {
		s.doc = fpdf.NewCustom(&fpdf.InitType{OrientationStr: "P", UnitStr: "pt", Size: size})
		s.doc.SetAutoPageBreak(false, 0)
		s.doc.SetMargins(0, 0, 0)
		s.tr = s.doc.UnicodeTranslatorFromDescriptor("")
		applyMeta(s.doc, s.meta)
	}
	s.doc.AddPageFormat("P", size)
	for _, cmd := range page.Commands {
		if cmd.Text == "" {
			continue
		}
		family, style := coreFont(cmd.Font)
		s.doc.SetFont(family, style, cmd.Font.Size)
		s.doc.SetTextColor(cmd.Color.R, cmd.Color.G, cmd.Color.B)
		s.doc.Text(cmd.X, page.Height-cmd.Y, s.tr(cmd.Text))
	}
	if s.doc.Err() {
		return fmt.Errorf("绘制页面失败: %w", s.doc.Error())
	}
	return nil
}

// Close serializes the document.
func (s *Sink) Close() error {
	if s.doc == nil {
		return fmt.Errorf("缺少可渲染的页面")
	}
	if err := s.doc.Output(s.w); err != nil {
		return fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return nil
}

func applyMeta(doc *fpdf.Fpdf, meta layout.DocumentMeta) {
	doc.SetTitle(meta.Title, true)
	doc.SetAuthor(meta.Author, true)
	doc.SetSubject(meta.Subject, true)
	doc.SetCreator(meta.Creator, true)
	doc.SetKeywords(strings.Join(meta.Keywords, ", "), true)
}

// coreFont 将 FontSpec 映射到核心字体名与 fpdf 样式；未识别的字体族按 Helvetica 处理。
func coreFont(font layout.FontSpec) (string, string) {
	family := "Helvetica"
	switch strings.ToLower(font.Family) {
	case "times", "times-roman", "serif":
		family = "Times"
	case "courier", "mono", "monospace":
		family = "Courier"
	}
	style := ""
	if font.Bold() {
		style = "B"
	}
	return family, style
}
