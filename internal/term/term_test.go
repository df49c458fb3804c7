package term

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"console/internal/editor"
	"console/internal/screen"
)

func TestRendererMirrorsScreen(t *testing.T) {
	r := NewRenderer()
	scr := screen.New(screen.WithPainter(r))
	scr.Put('h')
	scr.Put('i')

	frame := r.Render()
	lines := strings.SplitN(frame, "\n", 2)
	if !strings.HasPrefix(lines[0], "hi") {
		t.Fatalf("expected frame to start with \"hi\", got %q", lines[0][:2])
	}
}

func TestDecodeKeyRunesPassThrough(t *testing.T) {
	codes := decodeKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ab")})
	if len(codes) != 2 || codes[0] != 'a' || codes[1] != 'b' {
		t.Fatalf("got %v, want [97 98]", codes)
	}
}

func TestDecodeKeyControlCodes(t *testing.T) {
	codes := decodeKey(tea.KeyMsg{Type: tea.KeyCtrlU})
	if len(codes) != 1 || codes[0] != int(editor.KeyKillLine) {
		t.Fatalf("got %v, want [%d]", codes, editor.KeyKillLine)
	}
}

func TestDecodeKeyArrows(t *testing.T) {
	if codes := decodeKey(tea.KeyMsg{Type: tea.KeyLeft}); len(codes) != 1 || codes[0] != editor.KeyLeft {
		t.Fatalf("got %v, want [%d]", codes, editor.KeyLeft)
	}
	if codes := decodeKey(tea.KeyMsg{Type: tea.KeyRight}); len(codes) != 1 || codes[0] != editor.KeyRight {
		t.Fatalf("got %v, want [%d]", codes, editor.KeyRight)
	}
}

func TestModelUpdateDispatchesDecodedCodes(t *testing.T) {
	var got []int
	m := NewModel(NewRenderer(), func(code int) { got = append(got, code) })
	m2, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if cmd != nil {
		t.Fatal("expected no command")
	}
	if _, ok := m2.(Model); !ok {
		t.Fatal("expected Update to return a Model")
	}
	if len(got) != 1 || got[0] != 'x' {
		t.Fatalf("got %v, want ['x']", got)
	}
}
