package terminal

import "unicode/utf8"

// KeyType classifies a decoded keystroke
type KeyType int

const (
	KeyRune KeyType = iota
	KeyBackspace
	KeyTab
	KeyShiftTab
	KeyEnter
	KeyCtrlG
	KeyEsc
	KeyCtrlC
)

// Key is one keystroke read from a raw terminal
type Key struct {
	Type KeyType
	Rune rune
}

// ParseKeys decodes raw terminal input. Unknown control bytes and escape
// sequences other than Shift-Tab are dropped.
func ParseKeys(b []byte) []Key {
	var keys []Key
	for len(b) > 0 {
		switch c := b[0]; {
		case c == 0x03:
			keys = append(keys, Key{Type: KeyCtrlC})
		case c == 0x07:
			keys = append(keys, Key{Type: KeyCtrlG})
		case c == '\t':
			keys = append(keys, Key{Type: KeyTab})
		case c == '\r' || c == '\n':
			keys = append(keys, Key{Type: KeyEnter})
		case c == 0x7f || c == 0x08:
			keys = append(keys, Key{Type: KeyBackspace})
		case c == 0x1b:
			n := escapeLen(b)
			if n == 1 {
				keys = append(keys, Key{Type: KeyEsc})
			} else if n == 3 && b[1] == '[' && b[2] == 'Z' {
				keys = append(keys, Key{Type: KeyShiftTab})
			}
			b = b[n:]
			continue
		case c < 0x20:
			// other control bytes
		default:
			r, size := utf8.DecodeRune(b)
			if r != utf8.RuneError {
				keys = append(keys, Key{Type: KeyRune, Rune: r})
			}
			b = b[size:]
			continue
		}
		b = b[1:]
	}
	return keys
}

// escapeLen returns the length of the escape sequence starting at b[0]
func escapeLen(b []byte) int {
	if len(b) < 2 {
		return 1
	}
	switch b[1] {
	case '[':
		// CSI: parameters then a final byte in 0x40-0x7e
		for i := 2; i < len(b); i++ {
			if b[i] >= 0x40 && b[i] <= 0x7e {
				return i + 1
			}
		}
		return len(b)
	case 'O':
		if len(b) >= 3 {
			return 3
		}
		return len(b)
	}
	return 1
}
