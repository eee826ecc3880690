package realtime

import (
	"fmt"
	"log"
	"net/http"

	"github.com/anonto42/friendbook/backend/internal/models"
	socketio "github.com/googollee/go-socket.io"
)

const namespace = "/"

// TokenValidator resolves a session token into its claims.
type TokenValidator interface {
	Validate(token string) (*models.JwtCustomClaims, error)
}

type broadcaster interface {
	BroadcastToRoom(namespace, room, event string, args ...interface{}) bool
}

type roomJoiner interface {
	ID() string
	Join(room string)
}

// Hub pushes events to socket.io rooms. Each authenticated socket joins user:<id>.
type Hub struct {
	server      *socketio.Server
	broadcaster broadcaster
	tokens      TokenValidator
}

func NewHub(tokens TokenValidator) *Hub {
	server := socketio.NewServer(nil)
	h := &Hub{server: server, broadcaster: server, tokens: tokens}

	server.OnConnect(namespace, func(s socketio.Conn) error {
		log.Println("Socket connected:", s.ID())
		return nil
	})

	// Clients emit "join" with their bearer token to subscribe to their own room.
	server.OnEvent(namespace, "join", func(s socketio.Conn, token string) string {
		return h.join(s, token)
	})

	server.OnError(namespace, func(s socketio.Conn, err error) {
		log.Printf("Socket error: %v\n", err)
	})

	server.OnDisconnect(namespace, func(s socketio.Conn, reason string) {
		log.Println("Socket disconnected:", s.ID(), reason)
	})

	return h
}

// UserRoom names the room a user's sockets join.
func UserRoom(userID uint) string {
	return fmt.Sprintf("user:%d", userID)
}

func (h *Hub) join(s roomJoiner, token string) string {
	claims, err := h.tokens.Validate(token)
	if err != nil {
		log.Printf("Socket %s sent an invalid token\n", s.ID())
		return "unauthorized"
	}
	s.Join(UserRoom(claims.UserID))
	return "joined"
}

func (h *Hub) SendToUser(userID uint, event string, payload any) {
	h.SendToGroup(UserRoom(userID), event, payload)
}

// SendToGroup is fire-and-forget; an empty room is not an error.
func (h *Hub) SendToGroup(group, event string, payload any) {
	if !h.broadcaster.BroadcastToRoom(namespace, group, event, payload) {
		log.Printf("No subscribers for %s in room %s\n", event, group)
	}
}

// Handler serves the socket.io endpoint.
func (h *Hub) Handler() http.Handler {
	return h.server
}

// Serve runs the socket.io event loop until Close is called.
func (h *Hub) Serve() {
	if err := h.server.Serve(); err != nil {
		log.Printf("Socket server stopped: %v\n", err)
	}
}

func (h *Hub) Close() error {
	return h.server.Close()
}
