package canvasrenderer

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/ByLCY/notepress/layout"
)

func TestMeasureTextUsesFontMetrics(t *testing.T) {
	r := NewRenderer()
	font := layout.FontSpec{Family: "Helvetica", Size: 11, Weight: layout.WeightRegular}

	short, err := r.MeasureText("hello", font)
	if err != nil {
		t.Fatalf("MeasureText: %v", err)
	}
	long, err := r.MeasureText("hello world", font)
	if err != nil {
		t.Fatalf("MeasureText: %v", err)
	}
	if short <= 0 || long <= short {
		t.Fatalf("unexpected widths: short=%g long=%g", short, long)
	}

	big, _ := r.MeasureText("hello", layout.FontSpec{Family: "Helvetica", Size: 22})
	if diff := big - 2*short; diff > 1e-6 || diff < -1e-6 {
		t.Fatalf("width should scale with size: 11pt=%g 22pt=%g", short, big)
	}
}

func TestMeasureUnknownFamilyFallsBack(t *testing.T) {
	r := NewRenderer()
	w, err := r.MeasureText("fallback", layout.FontSpec{Family: "NoSuchFont", Size: 11})
	if err != nil {
		t.Fatalf("unknown family should use the fallback face: %v", err)
	}
	if w <= 0 {
		t.Fatalf("invalid width %g", w)
	}
}

// TestWrapWithRealMetrics 验证使用真实字体度量折行时每行宽度不超过限制。
func TestWrapWithRealMetrics(t *testing.T) {
	r := NewRenderer()
	font := layout.DefaultConfig().BodyFont
	limit := 150.0
	text := strings.Repeat("lorem ipsum dolor sit amet ", 20)
	lines := layout.WrapParagraph(text, font, limit, r)
	if len(lines) < 3 {
		t.Fatalf("expected several lines, got %d", len(lines))
	}
	for i, ln := range lines {
		w, err := r.MeasureText(ln, font)
		if err != nil {
			t.Fatalf("MeasureText: %v", err)
		}
		if w-limit > 1e-6 {
			t.Fatalf("line %d width exceeds limit: width=%g limit=%g", i, w, limit)
		}
	}
}

func TestRenderProducesPDF(t *testing.T) {
	r := NewRenderer()
	e, err := layout.NewEngine(layout.DefaultConfig(), r)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	body := strings.Repeat("Paragraph text that keeps going for a while. ", 40)
	body = strings.Repeat(body+"\n\n", 6)
	res := e.Generate("Render test", body)
	if len(res.Pages) < 2 {
		t.Fatalf("expected multiple pages, got %d", len(res.Pages))
	}
	out, err := r.Render(res)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("output is not a PDF: %q", out[:min(len(out), 16)])
	}
}

func TestRenderRejectsEmptyResult(t *testing.T) {
	r := NewRenderer()
	if _, err := r.Render(nil); err == nil {
		t.Fatalf("expected error for nil result")
	}
	if _, err := r.Render(&layout.Result{}); err == nil {
		t.Fatalf("expected error for result without pages")
	}
}

func TestMeasureTextConcurrent(t *testing.T) {
	r := NewRenderer()
	font := layout.FontSpec{Family: "Helvetica", Size: 11}
	want, _ := r.MeasureText("concurrent", font)

	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := r.MeasureText("concurrent", font)
			if err != nil || got != want {
				errs <- "mismatch"
			}
		}()
	}
	wg.Wait()
	close(errs)
	if len(errs) > 0 {
		t.Fatalf("concurrent measurement is not deterministic")
	}
}
