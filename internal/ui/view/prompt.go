package view

// PromptKind selects what a submitted prompt does.
type PromptKind int

const (
	PromptNone PromptKind = iota
	PromptSearch
	PromptSymbol
	PromptQuestion
)

// Label is the prefix shown before the input.
func (k PromptKind) Label() string {
	switch k {
	case PromptSearch:
		return "Search"
	case PromptSymbol:
		return "Definition"
	case PromptQuestion:
		return "Ask"
	default:
		return ""
	}
}

// Prompt is a single-line text input on the status row.
type Prompt struct {
	Kind   PromptKind
	text   []rune
	cursor int
}

// Active reports whether the prompt is capturing keys.
func (p *Prompt) Active() bool {
	return p.Kind != PromptNone
}

// Open starts editing with initial text and the cursor at the end.
func (p *Prompt) Open(kind PromptKind, initial string) {
	p.Kind = kind
	p.text = []rune(initial)
	p.cursor = len(p.text)
}

// Close stops editing and drops the text.
func (p *Prompt) Close() {
	p.Kind = PromptNone
	p.text = nil
	p.cursor = 0
}

func (p *Prompt) Value() string { return string(p.text) }
func (p *Prompt) Cursor() int   { return p.cursor }

func (p *Prompt) Insert(r rune) {
	p.text = append(p.text, 0)
	copy(p.text[p.cursor+1:], p.text[p.cursor:])
	p.text[p.cursor] = r
	p.cursor++
}

func (p *Prompt) Backspace() {
	if p.cursor == 0 {
		return
	}
	p.text = append(p.text[:p.cursor-1], p.text[p.cursor:]...)
	p.cursor--
}

func (p *Prompt) Delete() {
	if p.cursor >= len(p.text) {
		return
	}
	p.text = append(p.text[:p.cursor], p.text[p.cursor+1:]...)
}

// DeleteWord removes the word before the cursor (Ctrl+W).
func (p *Prompt) DeleteWord() {
	end := p.cursor
	start := end
	for start > 0 && p.text[start-1] == ' ' {
		start--
	}
	for start > 0 && p.text[start-1] != ' ' {
		start--
	}
	p.text = append(p.text[:start], p.text[end:]...)
	p.cursor = start
}

func (p *Prompt) Left() {
	if p.cursor > 0 {
		p.cursor--
	}
}

func (p *Prompt) Right() {
	if p.cursor < len(p.text) {
		p.cursor++
	}
}

func (p *Prompt) Home() { p.cursor = 0 }
func (p *Prompt) End()  { p.cursor = len(p.text) }
