package token

import "testing"

func TestType_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		typ  Type
		want string
	}{
		{ParagraphOpen, "paragraph_open"},
		{HeadingClose, "heading_close"},
		{StrikeOpen, "s_open"},
		{Fence, "fence"},
		{FootnoteRefMark, "footnote_ref"},
		{Invalid, "invalid"},
		{typeCount + 3, "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			if got := tt.typ.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestType_Closer(t *testing.T) {
	t.Parallel()

	// Every opener must be immediately followed by its closer with a matching name.
	for typ := Type(1); typ < typeCount; typ++ {
		if typ.Nesting() != Open {
			if typ.Closer() != Invalid {
				t.Errorf("%s.Closer() = %s, want invalid", typ, typ.Closer())
			}
			continue
		}
		closer := typ.Closer()
		if closer.Nesting() != Close {
			t.Errorf("%s.Closer() = %s, which is not a close type", typ, closer)
		}
		openName := typ.String()
		wantName := openName[:len(openName)-len("open")] + "close"
		if closer.String() != wantName {
			t.Errorf("%s.Closer() = %s, want %s", typ, closer, wantName)
		}
	}
}

func TestType_Valid(t *testing.T) {
	t.Parallel()

	if Invalid.Valid() {
		t.Error("Invalid.Valid() = true, want false")
	}
	if !Text.Valid() {
		t.Error("Text.Valid() = false, want true")
	}
	if (typeCount).Valid() {
		t.Error("typeCount.Valid() = true, want false")
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	tok := New(BulletListOpen, "ul")
	if tok.Nesting != Open {
		t.Errorf("Nesting = %s, want open", tok.Nesting)
	}
	if !tok.Block {
		t.Error("Block = false, want true")
	}

	inline := New(EmClose, "em")
	if inline.Nesting != Close {
		t.Errorf("Nesting = %s, want close", inline.Nesting)
	}
	if inline.Block {
		t.Error("Block = true, want false for inline token")
	}
}

func TestAttrs(t *testing.T) {
	t.Parallel()

	t.Run("set keeps insertion order and replaces in place", func(t *testing.T) {
		t.Parallel()

		var a Attrs
		a.Set("href", "/a")
		a.Set("class", "x")
		a.Set("href", "/b")

		if len(a) != 2 {
			t.Fatalf("len = %d, want 2", len(a))
		}
		if a[0].Name != "href" || a[0].Value != "/b" {
			t.Errorf("a[0] = %+v, want href=/b", a[0])
		}
		if a[1].Name != "class" {
			t.Errorf("a[1].Name = %q, want class", a[1].Name)
		}
	})

	t.Run("join appends with space", func(t *testing.T) {
		t.Parallel()

		tok := New(ParagraphOpen, "p")
		tok.AttrJoin("class", "a")
		tok.AttrJoin("class", "b c")

		got, ok := tok.AttrGet("class")
		if !ok || got != "a b c" {
			t.Errorf("class = %q (%v), want %q", got, ok, "a b c")
		}
	})

	t.Run("join onto empty value does not lead with space", func(t *testing.T) {
		t.Parallel()

		a := Attrs{{Name: "class", Value: ""}}
		a.Join("class", "x")
		if got, _ := a.Get("class"); got != "x" {
			t.Errorf("class = %q, want %q", got, "x")
		}
	})

	t.Run("get on missing attribute", func(t *testing.T) {
		t.Parallel()

		var a Attrs
		if v, ok := a.Get("target"); ok || v != "" {
			t.Errorf("Get(target) = %q, %v; want empty, false", v, ok)
		}
	})
}
