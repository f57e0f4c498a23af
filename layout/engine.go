package layout

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// paragraphSeparator 是正文中的段落分隔符（空行）。
const paragraphSeparator = "\n\n"

// fallbackAdvance 是无法测量时每个字符按字号折算的宽度比例。
const fallbackAdvance = 0.5

// Engine 将标题与正文排版为固定尺寸的页面。Engine 本身不持有可变状态，
// 只要 Measurer 可重入即可并发调用 Generate。
type Engine struct {
	cfg      Config
	measurer Measurer
}

// NewEngine 校验配置并创建排版引擎。
func NewEngine(cfg Config, m Measurer) (*Engine, error) {
	if m == nil {
		return nil, fmt.Errorf("layout: 缺少字体度量 Measurer")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg, measurer: m}, nil
}

// Config 返回引擎使用的排版参数。
func (e *Engine) Config() Config { return e.cfg }

// Generate 排版一篇笔记。结果至少包含一页，且对任意字符串输入都不会失败。
func (e *Engine) Generate(title, body string) *Result {
	cfg := e.cfg
	collector := newPageCollector(cfg.PageWidth, cfg.PageHeight)

	title = e.resolveTitle(title)
	collector.curr().draw(DrawCommand{
		Text:  title,
		X:     cfg.MarginLeft,
		Y:     cfg.PageHeight - cfg.TitleTop,
		Font:  cfg.TitleFont,
		Color: cfg.TitleColor,
	})

	cur := &cursor{
		y:         cfg.PageHeight - cfg.BodyTop,
		font:      cfg.BodyFont,
		collector: collector,
		cfg:       &cfg,
	}
	for _, paragraph := range splitParagraphs(body) {
		for _, line := range WrapParagraph(paragraph, cfg.BodyFont, cfg.ContentWidth(), e.measurer) {
			cur.ensureSpace()
			cur.place(line, cfg.BodyColor)
		}
		// 段落间距不做换页检查，由下一段首行自行判断。
		cur.y -= cfg.ParagraphGap
	}

	meta := cfg.Meta
	meta.Title = title
	meta.Keywords = append([]string(nil), cfg.Meta.Keywords...)
	return &Result{
		Pages: collector.pages(),
		Meta:  meta,
	}
}

func (e *Engine) resolveTitle(title string) string {
	if title == "" {
		return e.cfg.FallbackTitle
	}
	return truncateRunes(title, e.cfg.TitleMaxChars)
}

// WrapParagraph 按空白分词并贪心填充行：候选行宽度不超过 maxWidth 时接受，
// 否则结束当前行（即使为空）并另起一行。单个超宽的词独占一行，不做断字或截断；
// 段首即超宽时会先产生一个空行，只占用纵向空间。
func WrapParagraph(text string, font FontSpec, maxWidth float64, m Measurer) []string {
	words := strings.Fields(text)
	var lines []string
	line := ""
	for _, w := range words {
		candidate := strings.TrimSpace(line + " " + w)
		if MeasureWidth(m, candidate, font) <= maxWidth {
			line = candidate
			continue
		}
		lines = append(lines, line)
		line = w
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// MeasureWidth 调用 Measurer 测量宽度；测量失败、panic 或返回非法值时使用按字符估算的宽度。
func MeasureWidth(m Measurer, text string, font FontSpec) (width float64) {
	if m == nil {
		return fallbackWidth(text, font)
	}
	defer func() {
		if recover() != nil {
			width = fallbackWidth(text, font)
		}
	}()
	w, err := m.MeasureText(text, font)
	if err != nil || math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
		return fallbackWidth(text, font)
	}
	return w
}

func fallbackWidth(text string, font FontSpec) float64 {
	return float64(utf8.RuneCountInString(text)) * font.Size * fallbackAdvance
}

func splitParagraphs(body string) []string {
	if body == "" {
		return nil
	}
	return strings.Split(body, paragraphSeparator)
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// cursor 记录一次 Generate 调用中的纵向位置与当前字体，调用结束即丢弃。
type cursor struct {
	y         float64
	font      FontSpec
	collector *pageCollector
	cfg       *Config
}

// ensureSpace 在当前位置已低于下边距时换页；只看当前 y，不预判后续行。
func (c *cursor) ensureSpace() {
	if c.y >= c.cfg.MarginBottom {
		return
	}
	c.pageBreak()
}

func (c *cursor) pageBreak() {
	c.collector.newPage()
	c.y = c.cfg.PageHeight - c.cfg.MarginTop
	c.font = c.cfg.BodyFont
}

func (c *cursor) place(text string, col Color) {
	c.collector.curr().draw(DrawCommand{
		Text:  text,
		X:     c.cfg.MarginLeft,
		Y:     c.y,
		Font:  c.font,
		Color: col,
	})
	c.y -= c.cfg.LineHeight
}

type pageAccumulator struct {
	commands []DrawCommand
}

func (p *pageAccumulator) draw(cmd DrawCommand) {
	p.commands = append(p.commands, cmd)
}

type pageCollector struct {
	width  float64
	height float64
	accs   []*pageAccumulator
}

func newPageCollector(width, height float64) *pageCollector {
	pc := &pageCollector{width: width, height: height}
	pc.newPage()
	return pc
}

func (pc *pageCollector) newPage() *pageAccumulator {
	acc := &pageAccumulator{}
	pc.accs = append(pc.accs, acc)
	return acc
}

func (pc *pageCollector) curr() *pageAccumulator {
	return pc.accs[len(pc.accs)-1]
}

func (pc *pageCollector) pages() []Page {
	out := make([]Page, len(pc.accs))
	for i, acc := range pc.accs {
		out[i] = Page{
			Index:    i,
			Width:    pc.width,
			Height:   pc.height,
			Commands: acc.commands,
		}
	}
	return out
}
