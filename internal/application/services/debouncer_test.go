package services

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expectNoCommit(t *testing.T, commits <-chan string) {
	t.Helper()
	select {
	case v := <-commits:
		t.Fatalf("unexpected commit %q", v)
	case <-time.After(50 * time.Millisecond):
	}
}

func expectCommit(t *testing.T, commits <-chan string) string {
	t.Helper()
	select {
	case v := <-commits:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for commit")
		return ""
	}
}

func TestDebouncer_SingleCommitAfterQuietWindow(t *testing.T) {
	clock := clockwork.NewFakeClock()
	start := clock.Now()
	commits := make(chan string, 10)
	var committedAt time.Duration

	d := NewDebouncer(clock, 300*time.Millisecond, func(v string) {
		committedAt = clock.Since(start)
		commits <- v
	})

	// Keystrokes at t=0, 50, 100 and 350 ms
	d.Submit("0x74")
	clock.Advance(50 * time.Millisecond)
	d.Submit("0x742d")
	clock.Advance(50 * time.Millisecond)
	d.Submit("0x742d35")
	clock.Advance(250 * time.Millisecond)
	d.Submit("0x742d35cc6634c0532925a3b844bc9e7595f0beb0")

	// t=649ms: window still open
	clock.Advance(299 * time.Millisecond)
	expectNoCommit(t, commits)

	// t=650ms
	clock.Advance(time.Millisecond)
	got := expectCommit(t, commits)

	assert.Equal(t, "0x742d35cc6634c0532925a3b844bc9e7595f0beb0", got)
	assert.Equal(t, 650*time.Millisecond, committedAt)

	clock.Advance(time.Second)
	expectNoCommit(t, commits)
}

func TestDebouncer_EachQuietWindowCommits(t *testing.T) {
	clock := clockwork.NewFakeClock()
	commits := make(chan string, 10)
	d := NewDebouncer(clock, 300*time.Millisecond, func(v string) { commits <- v })

	d.Submit("first")
	clock.Advance(300 * time.Millisecond)
	assert.Equal(t, "first", expectCommit(t, commits))

	d.Submit("second")
	clock.Advance(300 * time.Millisecond)
	assert.Equal(t, "second", expectCommit(t, commits))
}

func TestDebouncer_Flush(t *testing.T) {
	clock := clockwork.NewFakeClock()
	commits := make(chan string, 10)
	d := NewDebouncer(clock, 300*time.Millisecond, func(v string) { commits <- v })

	assert.False(t, d.Flush(), "nothing pending")

	d.Submit("0xabc")
	require.True(t, d.Flush())
	assert.Equal(t, "0xabc", expectCommit(t, commits))

	// The flushed value is not committed again by the timer
	clock.Advance(time.Second)
	expectNoCommit(t, commits)
}

func TestDebouncer_Stop(t *testing.T) {
	clock := clockwork.NewFakeClock()
	commits := make(chan string, 10)
	d := NewDebouncer(clock, 300*time.Millisecond, func(v string) { commits <- v })

	d.Submit("0xabc")
	clock.Advance(100 * time.Millisecond)
	d.Stop()

	clock.Advance(time.Second)
	expectNoCommit(t, commits)

	d.Submit("0xdef")
	clock.Advance(time.Second)
	expectNoCommit(t, commits)
	assert.False(t, d.Flush())
}

func TestDebouncer_DefaultWindow(t *testing.T) {
	d := NewDebouncer(clockwork.NewFakeClock(), 0, func(string) {})
	assert.Equal(t, DefaultDebounceWindow, d.window)

	d.Submit("x")
	v, pending := d.Pending()
	assert.True(t, pending)
	assert.Equal(t, "x", v)
}
