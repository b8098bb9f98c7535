package ws_team

import (
	"log/slog"
	"sync"
	"time"

	"github.com/keyduel/core/internal/model"
)

const (
	EventPlayerJoined        = "PLAYER_JOINED"
	EventCountdownStarted    = "COUNTDOWN_STARTED"
	EventBattleStarted       = "BATTLE_STARTED"
	EventCompetitionFinished = "COMPETITION_FINISHED"
	EventTeamReset           = "TEAM_RESET"
)

type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type Client struct {
	hub      *Hub
	send     chan Event
	playerID string
	teamCode model.TeamCode
}

type teamEvent struct {
	teamCode model.TeamCode
	event    Event
}

type Hub struct {
	logger     *slog.Logger
	clients    map[*Client]bool
	teams      map[model.TeamCode]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan teamEvent
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		logger:     slog.Default(),
		clients:    make(map[*Client]bool),
		teams:      make(map[model.TeamCode]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan teamEvent),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.handleRegister(client)

		case client := <-h.unregister:
			h.handleUnregister(client)

		case te := <-h.broadcast:
			h.broadcastToTeam(te.teamCode, te.event)
		}
	}
}

func (h *Hub) handleRegister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true
	if _, exists := h.teams[client.teamCode]; !exists {
		h.teams[client.teamCode] = make(map[*Client]bool)
	}
	h.teams[client.teamCode][client] = true

	h.logger.Info("client registered",
		"player_id", client.playerID,
		"team", client.teamCode)
}

func (h *Hub) handleUnregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)

		if teamClients, exists := h.teams[client.teamCode]; exists {
			delete(teamClients, client)
			if len(teamClients) == 0 {
				delete(h.teams, client.teamCode)
			}
		}
	}

	h.logger.Info("client unregistered",
		"player_id", client.playerID,
		"team", client.teamCode)
}

func (h *Hub) broadcastToTeam(teamCode model.TeamCode, event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	teamClients, exists := h.teams[teamCode]
	if !exists {
		return
	}
	for client := range teamClients {
		select {
		case client.send <- event:
		default:
			// Stalled client: drop it from both maps so a later
			// unregister cannot close the channel again.
			close(client.send)
			delete(h.clients, client)
			delete(teamClients, client)
		}
	}
	if len(teamClients) == 0 {
		delete(h.teams, teamCode)
	}
}

func (h *Hub) NotifyPlayerJoined(teamCode model.TeamCode, playerID model.PlayerID, playerCount int) {
	h.broadcast <- teamEvent{
		teamCode: teamCode,
		event: Event{
			Type: EventPlayerJoined,
			Payload: map[string]interface{}{
				"player_id":    playerID,
				"player_count": playerCount,
			},
		},
	}
}

func (h *Hub) NotifyCountdownStarted(teamCode model.TeamCode, countdown int, paragraph string) {
	h.broadcast <- teamEvent{
		teamCode: teamCode,
		event: Event{
			Type: EventCountdownStarted,
			Payload: map[string]interface{}{
				"countdown": countdown,
				"paragraph": paragraph,
			},
		},
	}
}

func (h *Hub) NotifyBattleStarted(teamCode model.TeamCode) {
	h.broadcast <- teamEvent{
		teamCode: teamCode,
		event: Event{
			Type: EventBattleStarted,
			Payload: map[string]interface{}{
				"team_code": teamCode,
			},
		},
	}
}

func (h *Hub) NotifyCompetitionFinished(teamCode model.TeamCode, outcome model.MatchOutcome) {
	payload := map[string]interface{}{
		"team_code": teamCode,
		"draw":      outcome.Draw,
		"timestamp": time.Now().Unix(),
	}
	if !outcome.Draw {
		payload["winner"] = outcome.Winner
		payload["winner_score"] = outcome.WinnerScore
		payload["loser_score"] = outcome.LoserScore
	}

	h.broadcast <- teamEvent{
		teamCode: teamCode,
		event: Event{
			Type:    EventCompetitionFinished,
			Payload: payload,
		},
	}

	h.logger.Info("competition finished notification sent",
		"team", teamCode)
}

func (h *Hub) NotifyTeamReset(teamCode model.TeamCode) {
	h.broadcast <- teamEvent{
		teamCode: teamCode,
		event: Event{
			Type: EventTeamReset,
			Payload: map[string]interface{}{
				"team_code": teamCode,
			},
		},
	}
}
