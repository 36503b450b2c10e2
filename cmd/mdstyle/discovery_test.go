package main

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// ---------------------------------------------------------------------------
// TestResolveOutputPath - HTML destination for a Markdown source
// ---------------------------------------------------------------------------

func TestResolveOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		outputDir string
		baseDir   string
		want      string
	}{
		{
			name:  "alongside source",
			input: filepath.Join("docs", "post.md"),
			want:  filepath.Join("docs", "post.html"),
		},
		{
			name:      "explicit html file",
			input:     "post.md",
			outputDir: filepath.Join("out", "index.HTML"),
			want:      filepath.Join("out", "index.HTML"),
		},
		{
			name:      "into output directory",
			input:     filepath.Join("docs", "post.markdown"),
			outputDir: "site",
			want:      filepath.Join("site", "post.html"),
		},
		{
			name:      "tree layout preserved",
			input:     filepath.Join("docs", "a", "b", "post.md"),
			outputDir: "site",
			baseDir:   "docs",
			want:      filepath.Join("site", "a", "b", "post.html"),
		},
		{
			name:      "html-looking dir in tree mode is a directory",
			input:     filepath.Join("docs", "post.md"),
			outputDir: "site.html",
			baseDir:   "docs",
			want:      filepath.Join("site.html", "post.html"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveOutputPath(tt.input, tt.outputDir, tt.baseDir)
			if err != nil {
				t.Fatalf("resolveOutputPath() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveOutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestDiscoverFiles - Walking inputs
// ---------------------------------------------------------------------------

func TestDiscoverFiles(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	writeFile(t, filepath.Join(src, "a.md"), "a")
	writeFile(t, filepath.Join(src, "B.MD"), "b")
	writeFile(t, filepath.Join(src, "x", "c.markdown"), "c")
	writeFile(t, filepath.Join(src, "x", "skip.txt"), "")
	writeFile(t, filepath.Join(src, ".hidden", "d.md"), "d")

	files, err := discoverFiles(src, "out")
	if err != nil {
		t.Fatalf("discoverFiles() error = %v", err)
	}

	var outputs []string
	for _, f := range files {
		outputs = append(outputs, f.OutputPath)
	}
	sort.Strings(outputs)
	want := []string{
		filepath.Join("out", "B.html"),
		filepath.Join("out", "a.html"),
		filepath.Join("out", "x", "c.html"),
	}
	if len(outputs) != len(want) {
		t.Fatalf("outputs = %v, want %v", outputs, want)
	}
	for i := range want {
		if outputs[i] != want[i] {
			t.Errorf("outputs[%d] = %q, want %q", i, outputs[i], want[i])
		}
	}
}

func TestDiscoverFiles_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	txt := filepath.Join(dir, "a.txt")
	writeFile(t, txt, "")
	empty := filepath.Join(dir, "empty")
	if err := os.Mkdir(empty, 0o750); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"missing", filepath.Join(dir, "nope.md"), os.ErrNotExist},
		{"wrong extension", txt, ErrInvalidExtension},
		{"no markdown", empty, ErrNoMarkdownFiles},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := discoverFiles(tt.input, "")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("discoverFiles() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
