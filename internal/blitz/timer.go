// Package blitz implements the per-player countdown clock used by
// timed matches. Each player draws from an individual time budget
// while it is their turn; a player whose budget reaches zero forfeits.
package blitz

import (
	"fmt"
	"time"

	"github.com/xdZireael/Othello/internal/board"
)

// Clock tracks the remaining play time of both players. It is plain
// wall-clock arithmetic with no goroutines; callers poll TimeUp.
type Clock struct {
	remaining [2]time.Duration
	current   board.Color
	running   bool
	startedAt time.Time

	// now is swapped out in tests.
	now func() time.Time
}

// New creates a clock giving each player the same time budget.
func New(limit time.Duration) *Clock {
	c := &Clock{now: time.Now}
	c.remaining[board.Black] = limit
	c.remaining[board.White] = limit
	return c
}

// Start begins charging the given player.
func (c *Clock) Start(player board.Color) {
	c.startedAt = c.now()
	c.current = player
	c.running = true
}

// Pause stops the clock and charges the elapsed time to the player it
// was running for. Pausing a stopped clock does nothing.
func (c *Clock) Pause() {
	if !c.running {
		return
	}
	elapsed := c.now().Sub(c.startedAt)
	c.remaining[c.current] = max(0, c.remaining[c.current]-elapsed)
	c.running = false
}

// ChangePlayer charges the current player and starts charging the next
// one.
func (c *Clock) ChangePlayer(player board.Color) {
	c.Pause()
	c.Start(player)
}

// Remaining returns the player's remaining budget, settling any time
// elapsed since the last observation when the clock runs for them.
func (c *Clock) Remaining(player board.Color) time.Duration {
	if c.running && player == c.current {
		now := c.now()
		elapsed := now.Sub(c.startedAt)
		c.startedAt = now
		c.remaining[player] = max(0, c.remaining[player]-elapsed)
	}
	return c.remaining[player]
}

// TimeUp reports whether the player's budget is exhausted.
func (c *Clock) TimeUp(player board.Color) bool {
	return c.Remaining(player) <= 0
}

// Format returns the player's remaining time as "MM:SS".
func (c *Clock) Format(player board.Color) string {
	total := int(c.Remaining(player).Seconds())
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// String returns both clocks on two lines.
func (c *Clock) String() string {
	return fmt.Sprintf("Black Time: %s\nWhite Time: %s",
		c.Format(board.Black), c.Format(board.White))
}
