package layout

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ByLCY/notepress/dsl"
)

// LoadStyle 解析样式表并在 DefaultConfig 的基础上覆盖对应参数。
func LoadStyle(r io.Reader) (Config, error) {
	doc, err := dsl.Parse(r)
	if err != nil {
		return Config{}, fmt.Errorf("解析样式表失败: %w", err)
	}
	return ApplyStyle(DefaultConfig(), doc)
}

// ApplyStyle 将样式表 AST 应用到 base 上，返回新的配置。
// 未出现的属性保持 base 中的值；未知属性视为错误，避免拼写错误被静默忽略。
func ApplyStyle(base Config, doc *dsl.Document) (Config, error) {
	if doc == nil {
		return base, nil
	}
	cfg := base
	for _, section := range doc.Sections {
		var err error
		switch {
		case section.Page != nil:
			err = applyPage(&cfg, section.Page)
		case section.Named != nil:
			err = applyNamed(&cfg, section.Named)
		}
		if err != nil {
			return Config{}, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyPage(cfg *Config, page *dsl.PageSection) error {
	landscape := false
	for _, p := range page.Params {
		if p.Value == "landscape" {
			landscape = true
		}
	}
	w, h, ok := PageSize(page.Size, landscape)
	if !ok {
		return fmt.Errorf("%s: 暂不支持的纸张尺寸：%s", page.Pos, page.Size)
	}
	cfg.PageWidth, cfg.PageHeight = w, h

	for i, p := range page.Params {
		if p.Value != "margin" {
			continue
		}
		var vals []float64
		for j := i + 1; j < len(page.Params) && len(vals) < 4; j++ {
			l, ok := ParseLength(page.Params[j].Value)
			if !ok {
				break
			}
			vals = append(vals, l.ToPT())
		}
		// CSS 语义：上 右 下 左
		switch len(vals) {
		case 0:
			return fmt.Errorf("%s: margin 缺少数值", p.Pos)
		case 1:
			cfg.MarginTop, cfg.MarginRight, cfg.MarginBottom, cfg.MarginLeft = vals[0], vals[0], vals[0], vals[0]
		case 2:
			cfg.MarginTop, cfg.MarginRight, cfg.MarginBottom, cfg.MarginLeft = vals[0], vals[1], vals[0], vals[1]
		case 3:
			cfg.MarginTop, cfg.MarginRight, cfg.MarginBottom, cfg.MarginLeft = vals[0], vals[1], vals[2], vals[1]
		default:
			cfg.MarginTop, cfg.MarginRight, cfg.MarginBottom, cfg.MarginLeft = vals[0], vals[1], vals[2], vals[3]
		}
	}
	return nil
}

func applyNamed(cfg *Config, section *dsl.NamedSection) error {
	if section.Block == nil {
		return nil
	}
	for _, a := range section.Block.Assignments {
		var err error
		switch section.Name {
		case "title":
			err = applyTitle(cfg, a)
		case "body":
			err = applyBody(cfg, a)
		case "meta":
			err = applyMeta(&cfg.Meta, a)
		}
		if err != nil {
			return fmt.Errorf("%s: %s.%s: %w", a.Pos, section.Name, a.Key, err)
		}
	}
	return nil
}

func applyTitle(cfg *Config, a *dsl.Assignment) error {
	v := a.Value.Text()
	switch a.Key {
	case "font", "size", "weight":
		return applyFont(&cfg.TitleFont, a.Key, v)
	case "color":
		return assignColor(&cfg.TitleColor, v)
	case "top":
		return assignLength(&cfg.TitleTop, v)
	case "max-chars":
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("需要正整数，实际为 %q", v)
		}
		cfg.TitleMaxChars = n
	case "fallback":
		cfg.FallbackTitle = v
	default:
		return fmt.Errorf("未知属性")
	}
	return nil
}

func applyBody(cfg *Config, a *dsl.Assignment) error {
	v := a.Value.Text()
	switch a.Key {
	case "font", "size", "weight":
		return applyFont(&cfg.BodyFont, a.Key, v)
	case "color":
		return assignColor(&cfg.BodyColor, v)
	case "top":
		return assignLength(&cfg.BodyTop, v)
	case "line-height":
		return assignLength(&cfg.LineHeight, v)
	case "paragraph-gap":
		return assignLength(&cfg.ParagraphGap, v)
	default:
		return fmt.Errorf("未知属性")
	}
}

func applyMeta(meta *DocumentMeta, a *dsl.Assignment) error {
	switch a.Key {
	case "author":
		meta.Author = a.Value.Text()
	case "subject":
		meta.Subject = a.Value.Text()
	case "creator":
		meta.Creator = a.Value.Text()
	case "keywords":
		meta.Keywords = a.Value.Strings()
	default:
		return fmt.Errorf("未知属性")
	}
	return nil
}

func applyFont(font *FontSpec, key, v string) error {
	switch key {
	case "font":
		if v == "" {
			return fmt.Errorf("字体名称不能为空")
		}
		font.Family = v
	case "size":
		return assignLength(&font.Size, v)
	case "weight":
		switch w := strings.ToLower(v); w {
		case WeightRegular, "normal":
			font.Weight = WeightRegular
		case WeightBold:
			font.Weight = WeightBold
		default:
			return fmt.Errorf("不支持的字重 %q", v)
		}
	}
	return nil
}

func assignLength(dst *float64, v string) error {
	l, ok := ParseLength(v)
	if !ok {
		return fmt.Errorf("无法解析长度 %q", v)
	}
	*dst = l.ToPT()
	return nil
}

func assignColor(dst *Color, v string) error {
	c, err := ParseColor(v)
	if err != nil {
		return err
	}
	*dst = c
	return nil
}

// ParseColor 解析 #rgb 或 #rrggbb 形式的颜色。
func ParseColor(value string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("颜色值 %s 无法解析", value)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("颜色值 %s 无法解析", value)
	}
	return Color{R: int(n >> 16 & 0xff), G: int(n >> 8 & 0xff), B: int(n & 0xff)}, nil
}
