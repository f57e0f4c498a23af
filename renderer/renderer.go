package renderer

import (
	"fmt"

	"github.com/ByLCY/notepress/layout"
)

// Renderer 将排版结果输出为最终文件，例如 PDF。
// Render 返回生成的二进制数据（例如 PDF 字节切片）以及可能的错误。
type Renderer interface {
	Render(result *layout.Result) ([]byte, error)
}

// PageSink 按顺序接收页面并负责将其写成最终产物；Close 完成整个文档。
type PageSink interface {
	WritePage(page layout.Page) error
	Close() error
}

// Stream 将结果中的页面依次写入 sink 并关闭它。写入失败时不会调用 Close。
func Stream(result *layout.Result, sink PageSink) error {
	if result == nil {
		return fmt.Errorf("渲染结果为空")
	}
	if len(result.Pages) == 0 {
		return fmt.Errorf("缺少可渲染的页面")
	}
	for _, page := range result.Pages {
		if err := sink.WritePage(page); err != nil {
			return fmt.Errorf("写入第 %d 页失败: %w", page.Index+1, err)
		}
	}
	return sink.Close()
}
