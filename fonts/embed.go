package fonts

import (
	"fmt"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultFamily 是无法识别字体族时使用的内置字体。
const DefaultFamily = "sans"

// 内置字体以 TTF 字节提供，按字体族与是否粗体索引。
var builtin = map[string][2][]byte{
	"sans": {goregular.TTF, gobold.TTF},
	"mono": {gomono.TTF, gomonobold.TTF},
}

// aliases 把常见的 PDF 核心字体名映射到内置字体族。
var aliases = map[string]string{
	"helvetica": "sans",
	"arial":     "sans",
	"go":        "sans",
	"sans":      "sans",
	"times":     "sans",
	"serif":     "sans",
	"courier":   "mono",
	"go-mono":   "mono",
	"mono":      "mono",
}

// Resolve 返回字体名对应的内置字体族，ok 为 false 表示未识别。
func Resolve(family string) (string, bool) {
	name, ok := aliases[strings.ToLower(strings.TrimSpace(family))]
	return name, ok
}

// Load 返回内置字体的字节数据。family 可写为 "Helvetica"、"Courier" 或 "sans"、"mono"。
func Load(family string, bold bool) ([]byte, error) {
	name, ok := Resolve(family)
	if !ok {
		return nil, fmt.Errorf("未找到内置字体 %s", family)
	}
	faces := builtin[name]
	if bold {
		return faces[1], nil
	}
	return faces[0], nil
}
