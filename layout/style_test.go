package layout

import (
	"math"
	"os"
	"strings"
	"testing"
)

func TestLoadStyleOverridesDefaults(t *testing.T) {
	src := `style Compact v1 {
  meta { author: "EduNova"; keywords: ["notes", "pdf"] }
  page A5 landscape margin 1cm 15mm
  title { font: Courier; weight: regular; size: 20pt; color: #f00; max-chars: 40; fallback: "Untitled" }
  body {
    size: 9pt
    line-height: 12
    paragraph-gap: 4mm
    top: 25mm
  }
}`
	cfg, err := LoadStyle(strings.NewReader(src))
	if err != nil {
		t.Fatalf("加载样式失败: %v", err)
	}
	w, h, _ := PageSize("A5", true)
	if cfg.PageWidth != w || cfg.PageHeight != h {
		t.Fatalf("纸张尺寸错误: %gx%g", cfg.PageWidth, cfg.PageHeight)
	}
	if !near(cfg.MarginTop, CM) || !near(cfg.MarginBottom, CM) || !near(cfg.MarginLeft, 15*MmToPt) || !near(cfg.MarginRight, 15*MmToPt) {
		t.Fatalf("边距错误: %+v", cfg)
	}
	if cfg.TitleFont != (FontSpec{Family: "Courier", Size: 20, Weight: WeightRegular}) {
		t.Fatalf("标题字体错误: %+v", cfg.TitleFont)
	}
	if cfg.TitleColor != (Color{R: 255}) || cfg.TitleMaxChars != 40 || cfg.FallbackTitle != "Untitled" {
		t.Fatalf("标题样式错误: %+v", cfg)
	}
	if cfg.BodyFont.Size != 9 || cfg.BodyFont.Family != "Helvetica" || cfg.LineHeight != 12 {
		t.Fatalf("正文样式错误: %+v", cfg.BodyFont)
	}
	if math.Abs(cfg.ParagraphGap-4*MmToPt) > 1e-9 || math.Abs(cfg.BodyTop-25*MmToPt) > 1e-9 {
		t.Fatalf("正文间距错误: gap=%g top=%g", cfg.ParagraphGap, cfg.BodyTop)
	}
	if cfg.Meta.Author != "EduNova" || len(cfg.Meta.Keywords) != 2 || cfg.Meta.Creator != "notepress" {
		t.Fatalf("元信息错误: %+v", cfg.Meta)
	}
}

func TestApplyNilStyleKeepsBase(t *testing.T) {
	base := DefaultConfig()
	cfg, err := ApplyStyle(base, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LineHeight != 14 || cfg.ParagraphGap != 10 || cfg.TitleMaxChars != 100 {
		t.Fatalf("默认值被修改: %+v", cfg)
	}
}

func TestLoadStyleErrors(t *testing.T) {
	cases := map[string]string{
		"unknown key":   `style S v1 { body { leading: 3pt } }`,
		"bad page":      `style S v1 { page B9 }`,
		"bad weight":    `style S v1 { title { weight: heavy } }`,
		"bad length":    `style S v1 { body { size: big } }`,
		"bad max-chars": `style S v1 { title { max-chars: 0 } }`,
		"huge margin":   `style S v1 { page A4 margin 12cm }`,
		"syntax":        `style S v1 { body { size 9pt } }`,
	}
	for name, src := range cases {
		if _, err := LoadStyle(strings.NewReader(src)); err == nil {
			t.Fatalf("%s: 期望报错", name)
		}
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#222222")
	if err != nil || c != (Color{R: 0x22, G: 0x22, B: 0x22}) {
		t.Fatalf("ParseColor(#222222) = %+v, %v", c, err)
	}
	c, err = ParseColor("#0af")
	if err != nil || c != (Color{R: 0x00, G: 0xaa, B: 0xff}) {
		t.Fatalf("ParseColor(#0af) = %+v, %v", c, err)
	}
	if _, err := ParseColor("#12"); err == nil {
		t.Fatalf("非法颜色应报错")
	}
}

// TestDefaultStyleFileMatchesDefaults 确保示例样式表与 DefaultConfig 保持一致。
func TestDefaultStyleFileMatchesDefaults(t *testing.T) {
	f, err := os.Open("../examples/default.style")
	if err != nil {
		t.Fatalf("打开示例样式失败: %v", err)
	}
	defer f.Close()
	cfg, err := LoadStyle(f)
	if err != nil {
		t.Fatalf("加载示例样式失败: %v", err)
	}
	def := DefaultConfig()
	for name, pair := range map[string][2]float64{
		"width":  {cfg.PageWidth, def.PageWidth},
		"height": {cfg.PageHeight, def.PageHeight},
		"left":   {cfg.MarginLeft, def.MarginLeft},
		"bottom": {cfg.MarginBottom, def.MarginBottom},
		"title":  {cfg.TitleTop, def.TitleTop},
		"body":   {cfg.BodyTop, def.BodyTop},
		"line":   {cfg.LineHeight, def.LineHeight},
		"gap":    {cfg.ParagraphGap, def.ParagraphGap},
	} {
		if math.Abs(pair[0]-pair[1]) > 1e-9 {
			t.Fatalf("%s 不一致: style=%g default=%g", name, pair[0], pair[1])
		}
	}
	if cfg.TitleFont != def.TitleFont || cfg.BodyFont != def.BodyFont || cfg.TitleColor != def.TitleColor {
		t.Fatalf("字体或颜色不一致: %+v", cfg)
	}
}
