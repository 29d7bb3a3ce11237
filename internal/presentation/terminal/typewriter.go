package terminal

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/jonboulle/clockwork"
)

// Typewriter reveals text one rune at a time
type Typewriter struct {
	clock    clockwork.Clock
	interval time.Duration
}

// NewTypewriter creates a typewriter; a zero interval reveals text at once
func NewTypewriter(clock clockwork.Clock, interval time.Duration) *Typewriter {
	return &Typewriter{clock: clock, interval: interval}
}

// Type calls draw with every growing prefix of text, waiting one interval
// between runes. It returns ctx.Err() if cancelled before text is complete.
func (t *Typewriter) Type(ctx context.Context, text string, draw func(string)) error {
	if t.interval <= 0 || text == "" {
		draw(text)
		return nil
	}

	end := 0
	for {
		_, size := utf8.DecodeRuneInString(text[end:])
		end += size
		draw(text[:end])
		if end >= len(text) {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.clock.After(t.interval):
		}
	}
}
