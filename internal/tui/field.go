package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// field is a single-line text input with a cursor. accept filters the runes
// that may be typed into it.
type field struct {
	label       string
	placeholder string
	value       string
	cursor      int
	accept      func(r rune, f field) bool
}

func newField(label, placeholder string, accept func(rune, field) bool) field {
	return field{label: label, placeholder: placeholder, accept: accept}
}

// SetValue replaces the content and moves the cursor to the end.
func (f *field) SetValue(s string) {
	f.value = s
	f.cursor = len(s)
}

// insert types r at the cursor when the field accepts it.
func (f *field) insert(r rune) {
	if f.accept != nil && !f.accept(r, *f) {
		return
	}
	f.value = f.value[:f.cursor] + string(r) + f.value[f.cursor:]
	f.cursor++
}

// update applies an editing key. Values are ASCII, so byte offsets are
// cursor positions.
func (f *field) update(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyBackspace:
		if f.cursor > 0 {
			f.value = f.value[:f.cursor-1] + f.value[f.cursor:]
			f.cursor--
		}
	case tea.KeyDelete:
		if f.cursor < len(f.value) {
			f.value = f.value[:f.cursor] + f.value[f.cursor+1:]
		}
	case tea.KeyLeft:
		if f.cursor > 0 {
			f.cursor--
		}
	case tea.KeyRight:
		if f.cursor < len(f.value) {
			f.cursor++
		}
	case tea.KeyHome, tea.KeyCtrlA:
		f.cursor = 0
	case tea.KeyEnd:
		f.cursor = len(f.value)
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			f.insert(r)
		}
	}
}

// view renders the field, with a '|' cursor when focused.
func (f field) view(focused bool) string {
	label := labelStyle.Render(f.label + ":")
	if !focused {
		if f.value == "" {
			return label + dimStyle.Render(f.placeholder)
		}
		return label + inputStyle.Render(f.value)
	}
	display := f.value[:f.cursor] + "|" + f.value[f.cursor:]
	return label + inputFocusedStyle.Render(display)
}

func acceptDigit(r rune, _ field) bool { return r >= '0' && r <= '9' }

func acceptRule(r rune, _ field) bool {
	return (r >= 'a' && r <= 'z') || r == '{' || r == '}' || r == ','
}

// acceptOperand takes lowercase letters and a single leading '-'.
func acceptOperand(r rune, f field) bool {
	if r == '-' {
		return f.cursor == 0 && (f.value == "" || f.value[0] != '-')
	}
	return r >= 'a' && r <= 'z'
}
