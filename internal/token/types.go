package token

// Type is the semantic role of a token. The set is closed: the parser only
// emits these values and every consumer switches over them.
type Type uint8

const (
	Invalid Type = iota

	ParagraphOpen
	ParagraphClose
	HeadingOpen
	HeadingClose
	BlockquoteOpen
	BlockquoteClose
	BulletListOpen
	BulletListClose
	OrderedListOpen
	OrderedListClose
	ListItemOpen
	ListItemClose
	TableOpen
	TableClose
	TheadOpen
	TheadClose
	TbodyOpen
	TbodyClose
	TrOpen
	TrClose
	ThOpen
	ThClose
	TdOpen
	TdClose
	DlOpen
	DlClose
	DtOpen
	DtClose
	DdOpen
	DdClose
	FootnoteBlockOpen
	FootnoteBlockClose
	FootnoteOpen
	FootnoteClose
	LinkOpen
	LinkClose
	StrongOpen
	StrongClose
	EmOpen
	EmClose
	StrikeOpen
	StrikeClose

	Text
	Softbreak
	Hardbreak
	CodeInline
	CodeBlock
	Fence
	Image
	HTMLBlock
	HTMLInline
	Hr
	FrontMatter
	TaskCheckbox
	FootnoteRefMark
	FootnoteAnchor

	typeCount
)

type typeInfo struct {
	name    string
	nesting Nesting
	block   bool
}

var types = [typeCount]typeInfo{
	Invalid: {"invalid", Leaf, false},

	ParagraphOpen:      {"paragraph_open", Open, true},
	ParagraphClose:     {"paragraph_close", Close, true},
	HeadingOpen:        {"heading_open", Open, true},
	HeadingClose:       {"heading_close", Close, true},
	BlockquoteOpen:     {"blockquote_open", Open, true},
	BlockquoteClose:    {"blockquote_close", Close, true},
	BulletListOpen:     {"bullet_list_open", Open, true},
	BulletListClose:    {"bullet_list_close", Close, true},
	OrderedListOpen:    {"ordered_list_open", Open, true},
	OrderedListClose:   {"ordered_list_close", Close, true},
	ListItemOpen:       {"list_item_open", Open, true},
	ListItemClose:      {"list_item_close", Close, true},
	TableOpen:          {"table_open", Open, true},
	TableClose:         {"table_close", Close, true},
	TheadOpen:          {"thead_open", Open, true},
	TheadClose:         {"thead_close", Close, true},
	TbodyOpen:          {"tbody_open", Open, true},
	TbodyClose:         {"tbody_close", Close, true},
	TrOpen:             {"tr_open", Open, true},
	TrClose:            {"tr_close", Close, true},
	ThOpen:             {"th_open", Open, true},
	ThClose:            {"th_close", Close, true},
	TdOpen:             {"td_open", Open, true},
	TdClose:            {"td_close", Close, true},
	DlOpen:             {"dl_open", Open, true},
	DlClose:            {"dl_close", Close, true},
	DtOpen:             {"dt_open", Open, true},
	DtClose:            {"dt_close", Close, true},
	DdOpen:             {"dd_open", Open, true},
	DdClose:            {"dd_close", Close, true},
	FootnoteBlockOpen:  {"footnote_block_open", Open, true},
	FootnoteBlockClose: {"footnote_block_close", Close, true},
	FootnoteOpen:       {"footnote_open", Open, true},
	FootnoteClose:      {"footnote_close", Close, true},
	LinkOpen:           {"link_open", Open, false},
	LinkClose:          {"link_close", Close, false},
	StrongOpen:         {"strong_open", Open, false},
	StrongClose:        {"strong_close", Close, false},
	EmOpen:             {"em_open", Open, false},
	EmClose:            {"em_close", Close, false},
	StrikeOpen:         {"s_open", Open, false},
	StrikeClose:        {"s_close", Close, false},

	Text:            {"text", Leaf, false},
	Softbreak:       {"softbreak", Leaf, false},
	Hardbreak:       {"hardbreak", Leaf, false},
	CodeInline:      {"code_inline", Leaf, false},
	CodeBlock:       {"code_block", Leaf, true},
	Fence:           {"fence", Leaf, true},
	Image:           {"image", Leaf, false},
	HTMLBlock:       {"html_block", Leaf, true},
	HTMLInline:      {"html_inline", Leaf, false},
	Hr:              {"hr", Leaf, true},
	FrontMatter:     {"front_matter", Leaf, true},
	TaskCheckbox:    {"task_checkbox", Leaf, false},
	FootnoteRefMark: {"footnote_ref", Leaf, false},
	FootnoteAnchor:  {"footnote_anchor", Leaf, false},
}

// String returns the markdown-it style name, e.g. "paragraph_open".
func (t Type) String() string {
	if t >= typeCount {
		return "invalid"
	}
	return types[t].name
}

// Valid reports whether t is a known token type other than Invalid.
func (t Type) Valid() bool {
	return t > Invalid && t < typeCount
}

// Nesting returns whether tokens of this type open, close or are leaves.
func (t Type) Nesting() Nesting {
	if t >= typeCount {
		return Leaf
	}
	return types[t].nesting
}

// IsBlock reports whether tokens of this type are block-level.
func (t Type) IsBlock() bool {
	return t < typeCount && types[t].block
}

// Closer returns the close type paired with an open type.
// It returns Invalid for types that are not openers.
func (t Type) Closer() Type {
	if t.Nesting() != Open {
		return Invalid
	}
	// Open and close constants are declared pairwise.
	return t + 1
}
