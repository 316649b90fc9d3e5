package conversation

import (
	"fmt"
	"strings"
	"time"

	"talk-rag-be/pkg/rag/behavior"
)

// DefaultMaxHistory bounds the interaction log per session.
const DefaultMaxHistory = 5

// Interaction records one turn of the conversation. The response is filled in
// after the completion call returns.
type Interaction struct {
	Message   string
	Behavior  behavior.Category
	Timestamp time.Time
	Response  string
}

// Context is the bounded per-session interaction log. It replaces the two
// overlapping history buffers of the original design with a single log and
// two read projections: RecentBehaviors for trend signals and
// RenderTranscript for prompt context.
//
// Context is not safe for concurrent use; the owning session serializes
// access.
type Context struct {
	history    []Interaction
	maxHistory int
}

func NewContext(maxHistory int) *Context {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &Context{maxHistory: maxHistory}
}

// Add appends an interaction, evicting the oldest entry once the bound is
// exceeded.
func (c *Context) Add(i Interaction) {
	c.history = append(c.history, i)
	if len(c.history) > c.maxHistory {
		c.history = c.history[1:]
	}
}

// AttachResponse sets the response text of the most recent interaction.
func (c *Context) AttachResponse(response string) {
	if len(c.history) == 0 {
		return
	}
	c.history[len(c.history)-1].Response = response
}

// Len reports the current number of recorded interactions.
func (c *Context) Len() int {
	return len(c.history)
}

// RecentBehaviors returns the behaviors of the last n interactions, oldest
// first. n is clamped to [0, current length].
func (c *Context) RecentBehaviors(n int) []behavior.Category {
	if n < 0 {
		n = 0
	}
	if n > len(c.history) {
		n = len(c.history)
	}
	out := make([]behavior.Category, 0, n)
	for _, i := range c.history[len(c.history)-n:] {
		out = append(out, i.Behavior)
	}
	return out
}

// RenderTranscript renders the last n completed turns as context text for the
// prompt, oldest first. Turns without a response yet are skipped. Returns the
// empty string when there is nothing to render.
func (c *Context) RenderTranscript(n int) string {
	var turns []string
	for _, i := range c.history {
		if i.Response == "" {
			continue
		}
		turns = append(turns, fmt.Sprintf("Usuário: %s\nAssistente: %s", i.Message, i.Response))
	}
	if len(turns) == 0 {
		return ""
	}
	if n > 0 && len(turns) > n {
		turns = turns[len(turns)-n:]
	}
	return "\nHistórico da conversa:\n" + strings.Join(turns, "\n")
}
