package ws_team

import (
	"testing"

	"github.com/keyduel/core/internal/model"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type HubSuite struct {
	suite.Suite
}

func newTestClient(h *Hub, playerID string, teamCode model.TeamCode, buffer int) *Client {
	return &Client{
		hub:      h,
		send:     make(chan Event, buffer),
		playerID: playerID,
		teamCode: teamCode,
	}
}

func (s *HubSuite) TestBroadcastDelivers(t provider.T) {
	t.Parallel()
	h := NewHub()
	client := newTestClient(h, "p1", "AAAA1111", 8)
	h.handleRegister(client)

	h.broadcastToTeam("AAAA1111", Event{Type: EventPlayerJoined})

	require.Len(t, client.send, 1)
	got := <-client.send
	assert.Equal(t, EventPlayerJoined, got.Type)
}

func (s *HubSuite) TestBroadcastScopedToTeam(t provider.T) {
	t.Parallel()
	h := NewHub()
	member := newTestClient(h, "p1", "AAAA1111", 8)
	outsider := newTestClient(h, "p2", "BBBB2222", 8)
	h.handleRegister(member)
	h.handleRegister(outsider)

	h.broadcastToTeam("AAAA1111", Event{Type: EventBattleStarted})

	assert.Len(t, member.send, 1)
	assert.Empty(t, outsider.send)
}

// A stalled client whose send buffer is full gets dropped on broadcast.
// A later unregister for the same client must be a no-op, not a second
// close of its channel.
func (s *HubSuite) TestStalledClientDroppedOnce(t provider.T) {
	t.Parallel()
	h := NewHub()
	stalled := newTestClient(h, "p1", "AAAA1111", 1)
	healthy := newTestClient(h, "p2", "AAAA1111", 8)
	h.handleRegister(stalled)
	h.handleRegister(healthy)

	stalled.send <- Event{Type: EventPlayerJoined}

	h.broadcastToTeam("AAAA1111", Event{Type: EventCountdownStarted})

	assert.Len(t, healthy.send, 1)
	assert.NotContains(t, h.clients, stalled)
	assert.NotContains(t, h.teams["AAAA1111"], stalled)

	// Connection teardown still fires an unregister for the dropped client.
	assert.NotPanics(t, func() {
		h.handleUnregister(stalled)
	})

	// The channel was closed exactly once: drain the buffered event,
	// then the next receive reports closed.
	<-stalled.send
	_, open := <-stalled.send
	assert.False(t, open)
}

func (s *HubSuite) TestUnregisterLastClientRemovesTeam(t provider.T) {
	t.Parallel()
	h := NewHub()
	client := newTestClient(h, "p1", "AAAA1111", 8)
	h.handleRegister(client)

	h.handleUnregister(client)

	assert.NotContains(t, h.teams, model.TeamCode("AAAA1111"))
	assert.NotPanics(t, func() {
		h.handleUnregister(client)
	})
}

func TestHubSuite(t *testing.T) {
	suite.RunSuite(t, new(HubSuite))
}
