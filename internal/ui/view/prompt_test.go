package view

import "testing"

func TestPromptEditing(t *testing.T) {
	var p Prompt
	if p.Active() {
		t.Fatal("zero prompt should be inactive")
	}
	p.Open(PromptSearch, "load")
	if !p.Active() || p.Cursor() != 4 {
		t.Fatalf("open: active=%v cursor=%d", p.Active(), p.Cursor())
	}

	p.Insert('C')
	p.Home()
	p.Insert('_')
	if got := p.Value(); got != "_loadC" {
		t.Fatalf("value = %q", got)
	}
	p.Delete()
	p.End()
	p.Backspace()
	if got := p.Value(); got != "_oad" {
		t.Fatalf("after deletes = %q", got)
	}
	p.Left()
	p.Left()
	p.Right()
	if p.Cursor() != 3 {
		t.Fatalf("cursor = %d, want 3", p.Cursor())
	}

	p.Close()
	if p.Active() || p.Value() != "" || p.Cursor() != 0 {
		t.Fatal("close should reset the prompt")
	}
}

func TestPromptDeleteWord(t *testing.T) {
	var p Prompt
	p.Open(PromptQuestion, "where is  config")
	p.DeleteWord()
	if got := p.Value(); got != "where is  " {
		t.Fatalf("value = %q", got)
	}
	p.DeleteWord()
	if got := p.Value(); got != "where " {
		t.Fatalf("value = %q", got)
	}
}

func TestPromptHandlesMultibyteRunes(t *testing.T) {
	var p Prompt
	p.Open(PromptSymbol, "zażółć")
	p.Backspace()
	if got := p.Value(); got != "zażół" {
		t.Fatalf("value = %q", got)
	}
	if p.Cursor() != 5 {
		t.Fatalf("cursor counts runes, got %d", p.Cursor())
	}
}

func TestPromptKindLabels(t *testing.T) {
	for kind, want := range map[PromptKind]string{
		PromptSearch:   "Search",
		PromptSymbol:   "Definition",
		PromptQuestion: "Ask",
		PromptNone:     "",
	} {
		if got := kind.Label(); got != want {
			t.Fatalf("%d label = %q, want %q", kind, got, want)
		}
	}
}
