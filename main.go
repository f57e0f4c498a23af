package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/ByLCY/notepress/binding"
	"github.com/ByLCY/notepress/layout"
	"github.com/ByLCY/notepress/renderer"
	canvasrenderer "github.com/ByLCY/notepress/renderer/canvas"
	fpdfrenderer "github.com/ByLCY/notepress/renderer/fpdf"
)

// options 汇总一次生成所需的输入。
type options struct {
	inputPath  string
	title      string
	outputPath string
	stylePath  string
	debugPath  string
	data       any
}

func main() {
	input := flag.String("in", "-", "正文文本文件路径，- 表示标准输入")
	title := flag.String("title", "", "笔记标题，留空时显示 Note")
	output := flag.String("out", "", "PDF 输出路径，默认 output/<标题>.pdf")
	style := flag.String("style", "", "样式表路径")
	backend := flag.String("backend", "canvas", "渲染后端：canvas 或 fpdf")
	debug := flag.String("debug", "", "排版调试 JSON 输出路径")
	dataJSON := flag.String("data", "", "绑定到标题与正文的 JSON 数据")
	flag.Parse()

	var inputData any
	if *dataJSON != "" {
		if err := json.Unmarshal([]byte(*dataJSON), &inputData); err != nil {
			log.Fatalf("解析 data JSON 失败: %v", err)
		}
	}

	r, err := newRenderer(*backend)
	if err != nil {
		log.Fatal(err)
	}
	out, err := run(options{
		inputPath:  *input,
		title:      *title,
		outputPath: *output,
		stylePath:  *style,
		debugPath:  *debug,
		data:       inputData,
	}, r)
	if err != nil {
		log.Fatalf("生成 PDF 失败: %v", err)
	}
	fmt.Printf("已生成 PDF：%s\n", out)
}

func newRenderer(backend string) (renderer.Renderer, error) {
	switch strings.ToLower(backend) {
	case "", "canvas":
		return canvasrenderer.NewRenderer(), nil
	case "fpdf", "core":
		return fpdfrenderer.NewRenderer(), nil
	default:
		return nil, fmt.Errorf("未知的渲染后端 %q（可选 canvas、fpdf）", backend)
	}
}

// run 串联读取、插值、排版与渲染，返回实际写入的 PDF 路径。
func run(opts options, r renderer.Renderer) (string, error) {
	if r == nil {
		return "", fmt.Errorf("renderer 不能为空")
	}
	m, ok := r.(layout.Measurer)
	if !ok {
		return "", fmt.Errorf("renderer 未实现字体度量接口")
	}

	body, err := readBody(opts.inputPath)
	if err != nil {
		return "", err
	}
	title, body := binding.Note(opts.title, body, opts.data)

	cfg, err := loadConfig(opts.stylePath)
	if err != nil {
		return "", err
	}
	engine, err := layout.NewEngine(cfg, m)
	if err != nil {
		return "", fmt.Errorf("排版参数无效: %w", err)
	}
	result := engine.Generate(title, body)

	if opts.debugPath != "" {
		if err := writeDebug(result, opts.debugPath); err != nil {
			return "", err
		}
	}

	outputPath := opts.outputPath
	if outputPath == "" {
		outputPath = defaultOutput(title)
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return "", fmt.Errorf("创建输出目录失败: %w", err)
	}
	pdfBytes, err := r.Render(result)
	if err != nil {
		return "", fmt.Errorf("渲染 PDF 失败: %w", err)
	}
	if err := os.WriteFile(outputPath, pdfBytes, 0o644); err != nil {
		return "", fmt.Errorf("写入 PDF 文件失败: %w", err)
	}
	return outputPath, nil
}

func readBody(path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("无法读取正文 %s: %w", path, err)
	}
	return string(data), nil
}

func loadConfig(stylePath string) (layout.Config, error) {
	if stylePath == "" {
		return layout.DefaultConfig(), nil
	}
	file, err := os.Open(stylePath)
	if err != nil {
		return layout.Config{}, fmt.Errorf("无法打开样式表 %s: %w", stylePath, err)
	}
	defer file.Close()
	return layout.LoadStyle(file)
}

func writeDebug(result *layout.Result, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(result, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}

// defaultOutput 由标题生成文件名；标题中没有可用字符时使用 note.pdf。
func defaultOutput(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range title {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
		if b.Len() >= 80 {
			break
		}
	}
	name := strings.TrimRight(b.String(), "-")
	if name == "" {
		name = "note"
	}
	return filepath.Join("output", name+".pdf")
}
