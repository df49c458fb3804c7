package editor

// Ctrl computes the control code for a letter, C(x) = x - '@' in the
// design notes (so Ctrl-S = 0x13, Ctrl-C = 0x03, and so on).
func Ctrl(x byte) byte { return x - '@' }

// Editing control codes used by the dispatcher.
var (
	KeyTabByte   = byte('\t')
	KeySelect    = Ctrl('S')
	KeyCopy      = Ctrl('C')
	KeyPaste     = Ctrl('V')
	KeyWordLeft  = Ctrl('A')
	KeyEOF       = Ctrl('D')
	KeyDumpProcs = Ctrl('P')
	KeyKillLine  = Ctrl('U')
	KeyBackspace = Ctrl('H')
	KeyUndo      = Ctrl('Z')
	KeyDEL       = byte(0x7f)
)

// Arrow-key sentinels, matching the real console's keyboard driver values
// (values above 0x80 are reserved for non-ASCII keys).
const (
	KeyLeft  = 0xE4
	KeyRight = 0xE6
)
