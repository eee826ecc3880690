package realtime

import (
	"errors"
	"testing"

	"github.com/anonto42/friendbook/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

type broadcast struct {
	room, event string
	args        []interface{}
}

type recordingBroadcaster struct {
	sent []broadcast
}

func (r *recordingBroadcaster) BroadcastToRoom(_ string, room, event string, args ...interface{}) bool {
	r.sent = append(r.sent, broadcast{room: room, event: event, args: args})
	return true
}

type staticTokens map[string]uint

func (s staticTokens) Validate(token string) (*models.JwtCustomClaims, error) {
	id, ok := s[token]
	if !ok {
		return nil, errors.New("invalid")
	}
	return &models.JwtCustomClaims{UserID: id}, nil
}

type fakeConn struct {
	rooms []string
}

func (f *fakeConn) ID() string        { return "conn-1" }
func (f *fakeConn) Join(room string) { f.rooms = append(f.rooms, room) }

func TestSendToUserTargetsUserRoom(t *testing.T) {
	rec := &recordingBroadcaster{}
	h := &Hub{broadcaster: rec}

	h.SendToUser(7, "SendNotification", "payload")

	assert.Equal(t, []broadcast{{room: "user:7", event: "SendNotification", args: []interface{}{"payload"}}}, rec.sent)
}

func TestJoinRequiresValidToken(t *testing.T) {
	h := &Hub{tokens: staticTokens{"good": 3}}

	conn := &fakeConn{}
	assert.Equal(t, "unauthorized", h.join(conn, "bad"))
	assert.Empty(t, conn.rooms)

	assert.Equal(t, "joined", h.join(conn, "good"))
	assert.Equal(t, []string{"user:3"}, conn.rooms)
}
