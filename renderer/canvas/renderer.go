package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/notepress/fonts"
	"github.com/ByLCY/notepress/layout"
	"github.com/ByLCY/notepress/renderer"
)

// Renderer draws layout results via github.com/tdewolff/canvas.
// 排版坐标为 pt，canvas 使用 mm，两者在绘制与测量的边界处换算。
type Renderer struct {
	// injected resources, keyed by lower-case family name ("family" / "family-bold")
	fontBlobs map[string][]byte

	fontMu         sync.Mutex
	fontFamilies   map[string]*fontFamilyEntry
	fallbackFamily *canvas.FontFamily
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ renderer.PageSink = (*Sink)(nil)
	_ layout.Measurer   = (*Renderer)(nil)
)

type fontFamilyEntry struct {
	family *canvas.FontFamily
	style  canvas.FontStyle
}

// Options configures the canvas renderer.
type Options struct {
	// Fonts overrides the built-in faces, eg: {"Helvetica": ..., "Helvetica-Bold": ...}.
	Fonts map[string]Resource
}

// Resource can be provided either by Bytes or by Path.
type Resource struct {
	Bytes []byte
	Path  string
}

// NewRenderer creates a canvas-based renderer using the built-in fonts.
func NewRenderer() *Renderer { return NewRendererWithOptions(Options{}) }

// NewRendererWithOptions creates a renderer with injected font resources.
func NewRendererWithOptions(opts Options) *Renderer {
	r := &Renderer{
		fontBlobs:    map[string][]byte{},
		fontFamilies: map[string]*fontFamilyEntry{},
	}
	for name, res := range opts.Fonts {
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if len(res.Bytes) > 0 {
			r.fontBlobs[key] = res.Bytes
			continue
		}
		if res.Path != "" {
			data, _ := os.ReadFile(res.Path) // a missing file falls back to the built-in face when used
			if len(data) > 0 {
				r.fontBlobs[key] = data
			}
		}
	}
	return r
}

// MeasureText 实现 layout.Measurer，返回 pt 宽度。
func (r *Renderer) MeasureText(text string, font layout.FontSpec) (float64, error) {
	face, err := r.fontFace(font, layout.Color{})
	if err != nil {
		return 0, err
	}
	return toPt(face.TextWidth(text)), nil
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

// Sink writes pages to a PDF stream one at a time.
type Sink struct {
	r      *Renderer
	w      io.Writer
	meta   layout.DocumentMeta
	writer *pdf.PDF
}

// NewSink returns a PageSink writing a PDF document to w.
func (r *Renderer) NewSink(w io.Writer, meta layout.DocumentMeta) *Sink {
	return &Sink{r: r, w: w, meta: meta}
}

// WritePage draws one page. The PDF writer is created lazily with the first page size.
func (s *Sink) WritePage(page layout.Page) error {
	width, height := toMm(page.Width), toMm(page.Height)
	if s.writer == nil {
		s.writer = pdf.New(s.w, width, height, nil)
		applyMeta(s.writer, s.meta)
	} else {
		s.writer.NewPage(width, height)
	}

	c := canvas.New(width, height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianI) // 原点位于左下角，与排版坐标一致
	if err := s.r.drawPage(ctx, page); err != nil {
		return err
	}
	c.RenderTo(s.writer)
	return nil
}

// Close finishes the PDF document.
func (s *Sink) Close() error {
	if s.writer == nil {
		return fmt.Errorf("缺少可渲染的页面")
	}
	if err := s.writer.Close(); err != nil {
		return fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return nil
}

func applyMeta(writer *pdf.PDF, meta layout.DocumentMeta) {
	keywords := strings.Join(meta.Keywords, ", ")
	writer.SetInfo(meta.Title, meta.Subject, keywords, meta.Author, meta.Creator)
}

func (r *Renderer) drawPage(ctx *canvas.Context, page layout.Page) error {
	for _, cmd := range page.Commands {
		if cmd.Text == "" {
			continue
		}
		face, err := r.fontFace(cmd.Font, cmd.Color)
		if err != nil {
			return err
		}
		// DrawCommand.Y 即基线位置
		ctx.DrawText(toMm(cmd.X), toMm(cmd.Y), canvas.NewTextLine(face, cmd.Text, canvas.Left))
	}
	return nil
}

func (r *Renderer) fontFace(font layout.FontSpec, col layout.Color) (*canvas.FontFace, error) {
	family, style, err := r.ensureFontFamily(font)
	if err != nil {
		return nil, err
	}
	return family.Face(font.Size, colorFromLayout(col), style, canvas.FontNormal), nil
}

func (r *Renderer) ensureFontFamily(font layout.FontSpec) (*canvas.FontFamily, canvas.FontStyle, error) {
	key := fontCacheKey(font)
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if entry, ok := r.fontFamilies[key]; ok {
		return entry.family, entry.style, nil
	}

	style := parseFontStyle(font.Weight)
	family := canvas.NewFontFamily(key)
	if err := r.loadFontIntoFamily(family, font, style); err != nil {
		fallback, fbErr := r.fallback()
		if fbErr != nil {
			return nil, canvas.FontRegular, err
		}
		r.fontFamilies[key] = &fontFamilyEntry{family: fallback, style: canvas.FontRegular}
		return fallback, canvas.FontRegular, nil
	}

	r.fontFamilies[key] = &fontFamilyEntry{family: family, style: style}
	return family, style, nil
}

func (r *Renderer) loadFontIntoFamily(family *canvas.FontFamily, font layout.FontSpec, style canvas.FontStyle) error {
	data, err := r.loadFontBytes(font)
	if err != nil {
		return err
	}
	return family.LoadFont(data, 0, style)
}

func (r *Renderer) loadFontBytes(font layout.FontSpec) ([]byte, error) {
	name := strings.ToLower(font.Family)
	if font.Bold() {
		if blob, ok := r.fontBlobs[name+"-bold"]; ok {
			return blob, nil
		}
	} else if blob, ok := r.fontBlobs[name]; ok {
		return blob, nil
	}
	return fonts.Load(font.Family, font.Bold())
}

func (r *Renderer) fallback() (*canvas.FontFamily, error) {
	if r.fallbackFamily != nil {
		return r.fallbackFamily, nil
	}
	data, err := fonts.Load(fonts.DefaultFamily, false)
	if err != nil {
		return nil, err
	}
	family := canvas.NewFontFamily("notepress-fallback")
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, err
	}
	r.fallbackFamily = family
	return family, nil
}

func parseFontStyle(weight string) canvas.FontStyle {
	if strings.EqualFold(weight, layout.WeightBold) {
		return canvas.FontBold
	}
	return canvas.FontRegular
}

func fontCacheKey(font layout.FontSpec) string {
	return fmt.Sprintf("%s|%s", strings.ToLower(font.Family), strings.ToLower(font.Weight))
}

func colorFromLayout(c layout.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}

// toPt 将毫米(mm)转换为点(pt)。
func toPt(mm float64) float64 { return mm * layout.MmToPt }

// toMm 将点(pt)转换为毫米(mm)。
func toMm(pt float64) float64 { return pt * layout.PtToMm }
