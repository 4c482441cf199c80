package ws_room

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/moviepair/core/internal/model"
)

type MessageType string

const (
	PlayerJoined MessageType = "player_joined"
	PhaseChanged MessageType = "phase_changed"
	ResultsReady MessageType = "results_ready"
)

// Message is a hint for connected clients to refetch room status.
// The status endpoint stays the source of truth.
type Message struct {
	Type MessageType            `json:"type"`
	Code string                 `json:"code"`
	Data map[string]interface{} `json:"data,omitempty"`
}

type Client struct {
	Hub  *Hub
	Conn *websocket.Conn
	Send chan []byte
	Code string
}

type Hub struct {
	mu sync.RWMutex

	// Sets of clients per room code.
	rooms map[string]map[*Client]bool

	logger *slog.Logger
}

func New(logger *slog.Logger) *Hub {
	return &Hub{
		rooms:  make(map[string]map[*Client]bool),
		logger: logger,
	}
}

func (h *Hub) RegisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[client.Code]; !ok {
		h.rooms[client.Code] = make(map[*Client]bool)
	}
	h.rooms[client.Code][client] = true

	h.logger.Info("client registered", "code", client.Code)
}

func (h *Hub) RemoveClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if room, ok := h.rooms[client.Code]; ok {
		delete(room, client)
		if len(room) == 0 {
			delete(h.rooms, client.Code)
		}
	}
	h.logger.Info("client unregistered", "code", client.Code)
}

func (h *Hub) BroadcastToRoom(code string, message Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	messageBytes, _ := json.Marshal(message)

	if clients, ok := h.rooms[code]; ok {
		for client := range clients {
			select {
			case client.Send <- messageBytes:
			default:
				close(client.Send)
				delete(h.rooms[code], client)
			}
		}
	}
}

// NotifyPlayerJoined tells the room a second player arrived.
func (h *Hub) NotifyPlayerJoined(code, playerName string) {
	h.BroadcastToRoom(code, Message{
		Type: PlayerJoined,
		Code: code,
		Data: map[string]interface{}{
			"player_name": playerName,
		},
	})
}

// NotifyPhase announces a phase transition. Reaching the results phase
// gets its own message type so clients can jump straight to matches.
func (h *Hub) NotifyPhase(code string, phase model.Phase) {
	messageType := PhaseChanged
	if phase == model.PhaseResults {
		messageType = ResultsReady
	}
	h.BroadcastToRoom(code, Message{
		Type: messageType,
		Code: code,
		Data: map[string]interface{}{
			"phase": string(phase),
		},
	})
}

func (h *Hub) StartClientReading(client *Client) {
	defer func() {
		h.RemoveClient(client)
		client.Conn.Close()
	}()

	for {
		_, _, err := client.Conn.ReadMessage()
		if err != nil {
			break
		}
	}
}

func (h *Hub) StartClientWriting(client *Client) {
	defer client.Conn.Close()

	for message := range client.Send {
		err := client.Conn.WriteMessage(websocket.TextMessage, message)
		if err != nil {
			break
		}
	}
}
