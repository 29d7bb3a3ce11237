package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"github.com/briandowns/spinner"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/bimakw/wallet-console/internal/application/formatters"
	"github.com/bimakw/wallet-console/internal/application/services"
	"github.com/bimakw/wallet-console/internal/domain/entities"
)

// AccountPollInterval is how often the connected wallet is asked for its
// selected account
const AccountPollInterval = 5 * time.Second

const clearScreen = "\x1b[H\x1b[2J"

// Options configures a Console
type Options struct {
	Session        *services.ConsoleSession
	In             io.Reader
	Out            io.Writer
	Clock          clockwork.Clock
	TypingInterval time.Duration
	TitleInterval  time.Duration
	Preload        time.Duration
	// Raw means In delivers unbuffered keystrokes and Out needs CRLF
	Raw    bool
	Width  int
	Height int
	Logger *zap.Logger
}

type frameKind int

const (
	titleFrame frameKind = iota
	bodyFrame
)

type frame struct {
	kind frameKind
	gen  int
	text string
}

// Console drives a ConsoleSession from a terminal
type Console struct {
	session *services.ConsoleSession
	in      io.Reader
	out     io.Writer
	clock   clockwork.Clock
	body    *Typewriter
	title   *Typewriter
	preload time.Duration
	raw     bool
	logger  *zap.Logger

	screen     Screen
	target     string
	gen        int
	cancelBody context.CancelFunc

	polling atomic.Bool
}

// New creates a console
func New(opts Options) *Console {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Console{
		session: opts.Session,
		in:      opts.In,
		out:     opts.Out,
		clock:   opts.Clock,
		body:    NewTypewriter(opts.Clock, opts.TypingInterval),
		title:   NewTypewriter(opts.Clock, opts.TitleInterval),
		preload: opts.Preload,
		raw:     opts.Raw,
		logger:  opts.Logger,
		screen: Screen{
			Tabs:   formatters.Tabs(),
			Active: opts.Session.ActiveTab(),
			Width:  opts.Width,
			Height: opts.Height,
		},
	}
}

// Run shows the interactive console until Esc, Ctrl-C, end of input or
// ctx cancellation
func (c *Console) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := c.preloader(ctx); err != nil {
		return nil
	}

	keys := c.readKeys(ctx)
	frames := make(chan frame, 64)

	c.pollWallet(ctx)
	go c.title.Type(ctx, Title, func(text string) {
		c.send(ctx, frames, frame{kind: titleFrame, text: text})
	})
	c.retype(ctx, frames)

	poll := c.clock.NewTicker(AccountPollInterval)
	defer poll.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case key, ok := <-keys:
			if !ok || c.handleKey(key) {
				return nil
			}
			c.retype(ctx, frames)
			c.draw()

		case _, ok := <-c.session.SearchUpdates():
			if !ok {
				return nil
			}
			c.retype(ctx, frames)

		case _, ok := <-c.session.WalletUpdates():
			if !ok {
				return nil
			}
			c.retype(ctx, frames)

		case f := <-frames:
			switch {
			case f.kind == titleFrame:
				c.screen.Title = f.text
			case f.gen == c.gen:
				c.screen.Body = f.text
			default:
				continue
			}
			c.draw()

		case <-poll.Chan():
			c.pollWallet(ctx)
		}
	}
}

// pollWallet asks the wallet for its account off the input loop. A poll
// still waiting on the wallet makes later ticks no-ops.
func (c *Console) pollWallet(ctx context.Context) {
	if !c.polling.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.polling.Store(false)
		c.session.Start(ctx)
	}()
}

// RunLines is the console for non-terminal input: each line is either a
// tab name or a search, and the resulting view is printed once
func (c *Console) RunLines(ctx context.Context) error {
	c.screen.Title = Title
	c.session.Start(ctx)
	c.printView()

	scanner := bufio.NewScanner(c.in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if tab, err := formatters.ParseTab(line); err == nil {
			c.session.SelectTab(tab)
			c.screen.Active = tab
			c.printView()
			continue
		}

		// Drop a publication left over from the previous line
		select {
		case <-c.session.SearchUpdates():
		default:
		}

		repeated := entities.NewSnapshotKey(line, "").Equal(c.session.SearchSnapshot().Key)
		c.screen.Search = line
		c.session.Type(line)
		c.session.Submit()
		if entities.IsValidAddress(line) && !repeated {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-c.session.SearchUpdates():
			}
		}
		c.printView()
	}
	return scanner.Err()
}

func (c *Console) printView() {
	view := c.session.View()
	c.screen.Body = view.Text
	c.screen.State = view.State
	c.screen.Green = true
	fmt.Fprintln(c.out, Render(c.screen))
}

func (c *Console) preloader(ctx context.Context) error {
	if c.preload <= 0 {
		return nil
	}

	s := spinner.New(spinner.CharSets[14], 80*time.Millisecond, spinner.WithWriter(c.out))
	s.Suffix = " loading"
	s.Start()
	defer s.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.clock.After(c.preload):
		return nil
	}
}

func (c *Console) readKeys(ctx context.Context) <-chan Key {
	keys := make(chan Key)
	go func() {
		defer close(keys)
		buf := make([]byte, 256)
		for {
			n, err := c.in.Read(buf)
			for _, key := range ParseKeys(buf[:n]) {
				select {
				case keys <- key:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				return
			}
		}
	}()
	return keys
}

// handleKey applies one keystroke and reports whether the console should quit
func (c *Console) handleKey(key Key) bool {
	switch key.Type {
	case KeyEsc, KeyCtrlC:
		return true
	case KeyRune:
		c.screen.Search += string(key.Rune)
		c.session.Type(c.screen.Search)
	case KeyBackspace:
		if r := []rune(c.screen.Search); len(r) > 0 {
			c.screen.Search = string(r[:len(r)-1])
			c.session.Type(c.screen.Search)
		}
	case KeyTab:
		c.selectTab(c.screen.Active.Next())
	case KeyShiftTab:
		c.selectTab(c.screen.Active.Prev())
	case KeyEnter:
		c.session.Submit()
	case KeyCtrlG:
		c.screen.Green = !c.screen.Green
	}
	return false
}

func (c *Console) selectTab(tab formatters.Tab) {
	c.session.SelectTab(tab)
	c.screen.Active = tab
}

// retype starts typing the current view unless it is already shown
func (c *Console) retype(ctx context.Context, frames chan<- frame) {
	view := c.session.View()
	c.screen.State = view.State
	if view.Text == c.target {
		return
	}

	if c.cancelBody != nil {
		c.cancelBody()
	}
	c.gen++
	c.target = view.Text
	c.screen.Body = ""

	typeCtx, cancel := context.WithCancel(ctx)
	c.cancelBody = cancel
	gen := c.gen
	go c.body.Type(typeCtx, view.Text, func(text string) {
		c.send(typeCtx, frames, frame{kind: bodyFrame, gen: gen, text: text})
	})
}

func (c *Console) send(ctx context.Context, frames chan<- frame, f frame) {
	select {
	case frames <- f:
	case <-ctx.Done():
	}
}

func (c *Console) draw() {
	out := clearScreen + Render(c.screen) + "\n"
	if c.raw {
		out = strings.ReplaceAll(out, "\n", "\r\n")
	}
	if _, err := io.WriteString(c.out, out); err != nil {
		c.logger.Debug("Failed to draw console", zap.Error(err))
	}
}
