// Package term is the real-terminal front end: it puts the host terminal
// into raw mode, decodes keystrokes into the console's key-code encoding,
// and renders the abstract 25x80 framebuffer onto an actual terminal.
package term

import (
	"fmt"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"console/internal/editor"
	"console/internal/screen"
)

// EnterRaw puts fd into raw mode and returns the prior state so it can be
// restored on exit.
func EnterRaw(fd int) (*term.State, error) {
	st, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("term: enter raw mode: %w", err)
	}
	return st, nil
}

// Restore returns fd to the state captured by EnterRaw.
func Restore(fd int, st *term.State) error {
	if err := term.Restore(fd, st); err != nil {
		return fmt.Errorf("term: restore terminal state: %w", err)
	}
	return nil
}

var (
	normalStyle    = lipgloss.NewStyle()
	highlightStyle = lipgloss.NewStyle().Reverse(true)
)

// Renderer implements screen.Painter, mirroring every cell write and
// cursor move onto an in-memory copy that Render turns into a terminal
// frame. It is safe to attach to a Screen that is mutated under the
// console lock from one goroutine while bubbletea renders from another.
type Renderer struct {
	mu     sync.Mutex
	cells  [screen.Size]uint16
	cursor int
}

// NewRenderer returns a blank Renderer.
func NewRenderer() *Renderer { return &Renderer{} }

// PaintCell records a single cell write.
func (r *Renderer) PaintCell(pos int, cell uint16) {
	if pos < 0 || pos >= screen.Size {
		return
	}
	r.mu.Lock()
	r.cells[pos] = cell
	r.mu.Unlock()
}

// PaintCursor records the hardware cursor position.
func (r *Renderer) PaintCursor(pos int) {
	r.mu.Lock()
	r.cursor = pos
	r.mu.Unlock()
}

// Render produces one terminal frame: Rows lines of Cols styled runes,
// with the highlight attribute rendered as reversed video.
func (r *Renderer) Render() string {
	r.mu.Lock()
	cells := r.cells
	r.mu.Unlock()

	var b strings.Builder
	for row := 0; row < screen.Rows; row++ {
		for col := 0; col < screen.Cols; col++ {
			cell := cells[row*screen.Cols+col]
			ch := byte(cell & 0xff)
			if ch == 0 {
				ch = ' '
			}
			style := normalStyle
			if byte(cell>>8) == screen.AttrHighlight {
				style = highlightStyle
			}
			b.WriteString(style.Render(string(rune(ch))))
		}
		if row < screen.Rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Model is the bubbletea program driving consoleintr from decoded
// keystrokes and rendering the console's framebuffer every frame.
type Model struct {
	renderer *Renderer
	dispatch func(code int)
}

// NewModel builds a Model. dispatch is called once per decoded key code,
// normally console.Console.ConsoleIntr wired to a one-shot getc_fn.
func NewModel(renderer *Renderer, dispatch func(code int)) Model {
	return Model{renderer: renderer, dispatch: dispatch}
}

// Init satisfies tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update decodes one bubbletea key message into zero or more console key
// codes and dispatches each in turn.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	for _, code := range decodeKey(keyMsg) {
		m.dispatch(code)
	}
	return m, nil
}

// View satisfies tea.Model.
func (m Model) View() string { return m.renderer.Render() }

// decodeKey translates one bubbletea key event into the console's key-code
// encoding (spec.md §6): control codes as C(x) = x-'@', the two arrow-key
// sentinels, and plain runes passed through unchanged.
func decodeKey(msg tea.KeyMsg) []int {
	switch msg.Type {
	case tea.KeyTab:
		return []int{int(editor.KeyTabByte)}
	case tea.KeyCtrlS:
		return []int{int(editor.KeySelect)}
	case tea.KeyCtrlC:
		return []int{int(editor.KeyCopy)}
	case tea.KeyCtrlV:
		return []int{int(editor.KeyPaste)}
	case tea.KeyCtrlA:
		return []int{int(editor.KeyWordLeft)}
	case tea.KeyCtrlD:
		return []int{int(editor.KeyEOF)}
	case tea.KeyCtrlP:
		return []int{int(editor.KeyDumpProcs)}
	case tea.KeyCtrlU:
		return []int{int(editor.KeyKillLine)}
	case tea.KeyCtrlZ:
		return []int{int(editor.KeyUndo)}
	case tea.KeyCtrlH, tea.KeyBackspace:
		return []int{int(editor.KeyBackspace)}
	case tea.KeyLeft:
		return []int{editor.KeyLeft}
	case tea.KeyRight:
		return []int{editor.KeyRight}
	case tea.KeyEnter:
		return []int{'\n'}
	case tea.KeyRunes:
		codes := make([]int, len(msg.Runes))
		for i, r := range msg.Runes {
			codes[i] = int(r)
		}
		return codes
	default:
		return nil
	}
}
