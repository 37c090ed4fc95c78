package weft

import (
	"bufio"
	"io"
)

// KeyKind identifies a decoded key event.
type KeyKind uint8

const (
	KeyRune KeyKind = iota
	KeyEnter
	KeyTab
	KeyBackspace
	KeyEscape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert
	KeyDelete
	KeyFunc // function key; N holds the number
)

// Modifier is a bit-set of key modifiers.
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModAlt
	ModCtrl
)

// KeyEvent is one decoded keyboard input.
type KeyEvent struct {
	Kind KeyKind
	Rune rune // for KeyRune
	N    int  // for KeyFunc
	Mod  Modifier
}

// KeyReader decodes raw terminal bytes into key events. It blocks on
// the underlying reader and is meant to run on its own goroutine,
// feeding events to the run loop; the event channel is the only thing
// shared with the render path.
type KeyReader struct {
	r *bufio.Reader
}

// NewKeyReader wraps r (usually os.Stdin in raw mode).
func NewKeyReader(r io.Reader) *KeyReader {
	return &KeyReader{r: bufio.NewReaderSize(r, 256)}
}

// ReadKey blocks until one key event is decoded or the reader fails.
func (k *KeyReader) ReadKey() (KeyEvent, error) {
	b, err := k.r.ReadByte()
	if err != nil {
		return KeyEvent{}, err
	}
	switch {
	case b == '\r' || b == '\n':
		return KeyEvent{Kind: KeyEnter}, nil
	case b == '\t':
		return KeyEvent{Kind: KeyTab}, nil
	case b == 0x7f || b == 0x08:
		return KeyEvent{Kind: KeyBackspace}, nil
	case b == 0x1b:
		return k.readEscape()
	case b < 0x20:
		// Ctrl+letter arrives as 0x01..0x1a
		return KeyEvent{Kind: KeyRune, Rune: rune('a' + b - 1), Mod: ModCtrl}, nil
	}
	if b < 0x80 {
		return KeyEvent{Kind: KeyRune, Rune: rune(b)}, nil
	}
	// multi-byte UTF-8: put the lead byte back and decode a full rune
	if err := k.r.UnreadByte(); err != nil {
		return KeyEvent{}, err
	}
	r, _, err := k.r.ReadRune()
	if err != nil {
		return KeyEvent{}, err
	}
	return KeyEvent{Kind: KeyRune, Rune: r}, nil
}

// readEscape handles input after an ESC byte. A lone ESC (nothing else
// buffered) is the Escape key; ESC [ starts a CSI sequence, ESC O an
// SS3 sequence, and ESC+printable is an Alt chord.
func (k *KeyReader) readEscape() (KeyEvent, error) {
	if k.r.Buffered() == 0 {
		return KeyEvent{Kind: KeyEscape}, nil
	}
	b, err := k.r.ReadByte()
	if err != nil {
		return KeyEvent{}, err
	}
	switch b {
	case '[':
		return k.readCSI()
	case 'O':
		return k.readSS3()
	}
	if err := k.r.UnreadByte(); err != nil {
		return KeyEvent{}, err
	}
	e, err := k.ReadKey()
	if err != nil {
		return KeyEvent{}, err
	}
	e.Mod |= ModAlt
	return e, nil
}

// readCSI decodes an ESC [ sequence: optional numeric parameters
// separated by ';', then a final byte.
func (k *KeyReader) readCSI() (KeyEvent, error) {
	var params []int
	cur, hasCur := 0, false
	for {
		b, err := k.r.ReadByte()
		if err != nil {
			return KeyEvent{}, err
		}
		switch {
		case b >= '0' && b <= '9':
			cur = cur*10 + int(b-'0')
			hasCur = true
		case b == ';':
			params = append(params, cur)
			cur, hasCur = 0, false
		case b >= 0x40 && b <= 0x7e:
			if hasCur {
				params = append(params, cur)
			}
			return decodeCSIFinal(b, params), nil
		default:
			// ignore intermediate bytes
		}
	}
}

func csiModifier(params []int) Modifier {
	if len(params) < 2 {
		return 0
	}
	m := params[1] - 1
	var mod Modifier
	if m&1 != 0 {
		mod |= ModShift
	}
	if m&2 != 0 {
		mod |= ModAlt
	}
	if m&4 != 0 {
		mod |= ModCtrl
	}
	return mod
}

func decodeCSIFinal(final byte, params []int) KeyEvent {
	mod := csiModifier(params)
	switch final {
	case 'A':
		return KeyEvent{Kind: KeyUp, Mod: mod}
	case 'B':
		return KeyEvent{Kind: KeyDown, Mod: mod}
	case 'C':
		return KeyEvent{Kind: KeyRight, Mod: mod}
	case 'D':
		return KeyEvent{Kind: KeyLeft, Mod: mod}
	case 'H':
		return KeyEvent{Kind: KeyHome, Mod: mod}
	case 'F':
		return KeyEvent{Kind: KeyEnd, Mod: mod}
	case 'Z':
		return KeyEvent{Kind: KeyTab, Mod: ModShift}
	case '~':
		if len(params) == 0 {
			return KeyEvent{Kind: KeyEscape}
		}
		switch params[0] {
		case 1, 7:
			return KeyEvent{Kind: KeyHome, Mod: mod}
		case 2:
			return KeyEvent{Kind: KeyInsert, Mod: mod}
		case 3:
			return KeyEvent{Kind: KeyDelete, Mod: mod}
		case 4, 8:
			return KeyEvent{Kind: KeyEnd, Mod: mod}
		case 5:
			return KeyEvent{Kind: KeyPageUp, Mod: mod}
		case 6:
			return KeyEvent{Kind: KeyPageDown, Mod: mod}
		case 11, 12, 13, 14, 15:
			return KeyEvent{Kind: KeyFunc, N: params[0] - 10, Mod: mod}
		case 17, 18, 19, 20, 21:
			return KeyEvent{Kind: KeyFunc, N: params[0] - 11, Mod: mod}
		case 23, 24:
			return KeyEvent{Kind: KeyFunc, N: params[0] - 12, Mod: mod}
		}
	}
	return KeyEvent{Kind: KeyEscape}
}

// readSS3 decodes an ESC O sequence (application-mode keys).
func (k *KeyReader) readSS3() (KeyEvent, error) {
	b, err := k.r.ReadByte()
	if err != nil {
		return KeyEvent{}, err
	}
	switch b {
	case 'A':
		return KeyEvent{Kind: KeyUp}, nil
	case 'B':
		return KeyEvent{Kind: KeyDown}, nil
	case 'C':
		return KeyEvent{Kind: KeyRight}, nil
	case 'D':
		return KeyEvent{Kind: KeyLeft}, nil
	case 'H':
		return KeyEvent{Kind: KeyHome}, nil
	case 'F':
		return KeyEvent{Kind: KeyEnd}, nil
	case 'P', 'Q', 'R', 'S':
		return KeyEvent{Kind: KeyFunc, N: int(b-'P') + 1}, nil
	}
	return KeyEvent{Kind: KeyEscape}, nil
}
