package dsl_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/ByLCY/notepress/dsl"
)

const sampleStyle = `
// 默认笔记样式
style Notes v1 {
  meta {
    author: "EduNova"
    keywords: [
      "notes"
      "export"
    ]
  }

  page A4 portrait margin 2cm

  title {
    font: Helvetica
    weight: bold
    size: 16pt
    color: #222222   # 深灰
    top: 2cm
    max-chars: 100
    fallback: "Note"
  }

  body { font: Helvetica; size: 11pt; line-height: 14pt; paragraph-gap: 10 }
}
`

func TestParseStyle(t *testing.T) {
	doc, err := dsl.ParseString(sampleStyle)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if doc.Name != "Notes" || doc.Version != "v1" {
		t.Fatalf("unexpected header: %s %s", doc.Name, doc.Version)
	}
	if len(doc.Sections) != 4 {
		t.Fatalf("expected 4 sections, got %d", len(doc.Sections))
	}

	kinds := make([]string, len(doc.Sections))
	for i, s := range doc.Sections {
		kinds[i] = s.Kind()
	}
	if want := []string{"meta", "page", "title", "body"}; !reflect.DeepEqual(kinds, want) {
		t.Fatalf("section kinds = %v, want %v", kinds, want)
	}

	meta := doc.Sections[0].Named.Block.Assignments
	if len(meta) != 2 || meta[0].Key != "author" || meta[0].Value.Text() != "EduNova" {
		t.Fatalf("meta assignments mismatch: %+v", meta)
	}
	if got := meta[1].Value.Strings(); !reflect.DeepEqual(got, []string{"notes", "export"}) {
		t.Fatalf("keywords mismatch: %v", got)
	}

	page := doc.Sections[1].Page
	if page.Size != "A4" {
		t.Fatalf("expected A4, got %s", page.Size)
	}
	var params []string
	for _, p := range page.Params {
		params = append(params, p.Value)
	}
	if want := []string{"portrait", "margin", "2cm"}; !reflect.DeepEqual(params, want) {
		t.Fatalf("page params = %v, want %v", params, want)
	}

	title := doc.Sections[2].Named.Block.Assignments
	got := map[string]string{}
	for _, a := range title {
		got[a.Key] = a.Value.Text()
	}
	want := map[string]string{
		"font":      "Helvetica",
		"weight":    "bold",
		"size":      "16pt",
		"color":     "#222222",
		"top":       "2cm",
		"max-chars": "100",
		"fallback":  "Note",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("title assignments = %v, want %v", got, want)
	}

	body := doc.Sections[3].Named.Block.Assignments
	if len(body) != 4 || body[3].Key != "paragraph-gap" || body[3].Value.Text() != "10" {
		t.Fatalf("body assignments mismatch: %+v", body)
	}
}

func TestParseRejectsUnknownSection(t *testing.T) {
	_, err := dsl.Parse(strings.NewReader(`style S v1 { footer { size: 9pt } }`))
	if err == nil {
		t.Fatalf("expected error for unknown section")
	}
}

func TestParseEmptyStyle(t *testing.T) {
	doc, err := dsl.ParseString("style Empty v1 {}")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(doc.Sections) != 0 {
		t.Fatalf("expected no sections, got %d", len(doc.Sections))
	}
}
