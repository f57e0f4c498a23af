package layout

import (
	"strconv"
	"strings"
)

// This file defines unit-safe lengths used by the style sheet. Layout itself works in pt.

// Unit represents the original unit of a length value as written in a style sheet.
type Unit int

const (
	UnitNone Unit = iota // unit-less numbers like counts
	UnitMM               // millimeters
	UnitCM               // centimeters
	UnitIN               // inches
	UnitPT               // points
)

// Conversion constants between pt and mm (1in = 72pt = 25.4mm).
const (
	PtToMm = 25.4 / 72
	MmToPt = 72 / 25.4
	// CM is one centimeter in pt.
	CM = 10 * MmToPt
)

// UnitToString returns a short string for a Unit value.
func UnitToString(u Unit) string {
	switch u {
	case UnitMM:
		return "mm"
	case UnitCM:
		return "cm"
	case UnitIN:
		return "in"
	case UnitPT:
		return "pt"
	default:
		return ""
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

func (l Length) IsZero() bool { return l.Value == 0 }

// ToPT converts the length to points. Unit-less values are taken as pt.
func (l Length) ToPT() float64 {
	switch l.Unit {
	case UnitMM:
		return l.Value * MmToPt
	case UnitCM:
		return l.Value * 10 * MmToPt
	case UnitIN:
		return l.Value * 72
	default:
		return l.Value
	}
}

// ToMM converts the length to millimeters. Unit-less values are taken as pt.
func (l Length) ToMM() float64 {
	switch l.Unit {
	case UnitMM:
		return l.Value
	case UnitCM:
		return l.Value * 10
	case UnitIN:
		return l.Value * 25.4
	default:
		return l.Value * PtToMm
	}
}

// ParseLength parses a length such as "2cm", "11pt" or "14" preserving its unit.
// ok is false when the numeric part cannot be parsed.
func ParseLength(value string) (Length, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Length{}, false
	}
	unit := UnitNone
	num := v
	for _, suf := range []struct {
		s string
		u Unit
	}{{"mm", UnitMM}, {"cm", UnitCM}, {"in", UnitIN}, {"pt", UnitPT}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, false
	}
	return Length{Value: f, Unit: unit}, true
}

// pagePresets 以 mm 记录常用纸张尺寸（纵向）。
var pagePresets = map[string][2]float64{
	"A4":     {210, 297},
	"A5":     {148, 210},
	"LETTER": {215.9, 279.4},
	"LEGAL":  {215.9, 355.6},
}

// PageSize 返回纸张预设的宽高（pt）；landscape 为 true 时交换宽高。
func PageSize(name string, landscape bool) (float64, float64, bool) {
	base, ok := pagePresets[strings.ToUpper(name)]
	if !ok {
		return 0, 0, false
	}
	w, h := base[0]*MmToPt, base[1]*MmToPt
	if landscape {
		w, h = h, w
	}
	return w, h, true
}
