//go:build bench

package mdstyle

import (
	"fmt"
	"strings"
	"testing"
)

func newBenchService(b *testing.B, opts ...Option) *Service {
	b.Helper()
	s, err := New(opts...)
	if err != nil {
		b.Fatal(err)
	}
	return s
}

// BenchmarkServiceConvert benchmarks the full parse, style and render pipeline.
func BenchmarkServiceConvert(b *testing.B) {
	inputs := []struct {
		name string
		text string
		opts []Option
	}{
		{name: "minimal", text: "# Hello\n\nWorld"},
		{name: "document", text: generateBenchmarkMarkdown(10)},
		{name: "highlighted", text: generateBenchmarkMarkdown(10), opts: []Option{WithHighlighting("")}},
		{name: "plain", text: generateBenchmarkMarkdown(10), opts: []Option{WithTypographer(false), WithLinkify(false)}},
	}

	for _, tc := range inputs {
		b.Run(tc.name, func(b *testing.B) {
			service := newBenchService(b, tc.opts...)
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := service.Convert(tc.text); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkServiceConvertBySize benchmarks conversion scaling with document size.
func BenchmarkServiceConvertBySize(b *testing.B) {
	service := newBenchService(b)

	for _, size := range []int{5, 10, 25, 50, 100} {
		text := generateBenchmarkMarkdown(size)

		b.Run(fmt.Sprintf("sections_%d", size), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(text)))
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				_ = service.Render(text)
			}
		})
	}
}

// BenchmarkServiceRenderParallel benchmarks concurrent use of one Service.
func BenchmarkServiceRenderParallel(b *testing.B) {
	service := newBenchService(b)
	text := generateBenchmarkMarkdown(20)

	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_ = service.Render(text)
		}
	})
}

func generateBenchmarkMarkdown(sections int) string {
	var sb strings.Builder
	sb.WriteString("---\ntitle: Bench\n---\n\n")
	sb.WriteString("# Document Title\n\n")
	sb.WriteString("Introduction paragraph with **bold**, *italic* and \"quoted\" text.\n\n")

	for i := 0; i < sections; i++ {
		level := (i % 3) + 1
		sb.WriteString(strings.Repeat("#", level+1))
		sb.WriteString(" Section ")
		sb.WriteString(string(rune('A' + (i % 26))))
		sb.WriteString("\n\n")
		sb.WriteString("This is a paragraph with some content. ")
		sb.WriteString("It includes [links](https://example.com), [anchors](#top) and `inline code`.\n\n")

		sb.WriteString("- [x] Item one\n")
		sb.WriteString("- [ ] Item two\n")
		sb.WriteString("- Item three\n\n")

		if i%3 == 0 {
			sb.WriteString("```go\nfunc main() {\n    fmt.Println(\"Hello\")\n}\n```\n\n")
		}

		if i%5 == 0 {
			sb.WriteString("| A | B | C |\n|---|---|---|\n| 1 | 2 | 3 |\n\n")
		}
	}

	return sb.String()
}
