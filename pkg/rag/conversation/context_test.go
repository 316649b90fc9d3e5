package conversation

import (
	"fmt"
	"testing"
	"time"

	"talk-rag-be/pkg/rag/behavior"

	"github.com/stretchr/testify/require"
)

func interaction(msg string, b behavior.Category) Interaction {
	return Interaction{Message: msg, Behavior: b, Timestamp: time.Now()}
}

func TestAddNeverExceedsMaxHistory(t *testing.T) {
	c := NewContext(3)
	for i := 0; i < 10; i++ {
		c.Add(interaction(fmt.Sprintf("msg-%d", i), behavior.General))
		require.LessOrEqual(t, c.Len(), 3)
	}
	require.Equal(t, 3, c.Len())
}

func TestAddEvictsOldestFirst(t *testing.T) {
	c := NewContext(2)
	c.Add(interaction("a", behavior.Greeting))
	c.Add(interaction("b", behavior.Payment))
	c.Add(interaction("c", behavior.Delivery))

	got := c.RecentBehaviors(5)
	require.Equal(t, []behavior.Category{behavior.Payment, behavior.Delivery}, got)
}

func TestRecentBehaviorsCapsToLength(t *testing.T) {
	c := NewContext(5)
	c.Add(interaction("a", behavior.Greeting))

	require.Equal(t, []behavior.Category{behavior.Greeting}, c.RecentBehaviors(3))
	require.Empty(t, NewContext(5).RecentBehaviors(3))
}

func TestRecentBehaviorsNegativeN(t *testing.T) {
	c := NewContext(5)
	c.Add(interaction("a", behavior.Greeting))

	require.Empty(t, c.RecentBehaviors(-1))
}

func TestRenderTranscriptSkipsPendingTurns(t *testing.T) {
	c := NewContext(5)
	c.Add(interaction("qual o preço?", behavior.Exploration))
	c.AttachResponse("R$ 99,00")
	c.Add(interaction("tem entrega?", behavior.Delivery))

	rendered := c.RenderTranscript(3)
	require.Contains(t, rendered, "Usuário: qual o preço?")
	require.Contains(t, rendered, "Assistente: R$ 99,00")
	require.NotContains(t, rendered, "tem entrega?")
}

func TestRenderTranscriptKeepsLastN(t *testing.T) {
	c := NewContext(5)
	for i := 0; i < 5; i++ {
		c.Add(interaction(fmt.Sprintf("q%d", i), behavior.General))
		c.AttachResponse(fmt.Sprintf("r%d", i))
	}

	rendered := c.RenderTranscript(3)
	require.NotContains(t, rendered, "q1")
	require.Contains(t, rendered, "q2")
	require.Contains(t, rendered, "q4")
}

func TestRenderTranscriptEmpty(t *testing.T) {
	require.Empty(t, NewContext(5).RenderTranscript(3))
}

func TestAttachResponseOnEmptyContext(t *testing.T) {
	c := NewContext(5)
	c.AttachResponse("orphan") // must not panic
	require.Zero(t, c.Len())
}
