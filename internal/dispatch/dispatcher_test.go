package dispatch_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"collab-relay/internal/dispatch"
	"collab-relay/internal/store"
	"collab-relay/internal/ws"
)

// fakeConn captures outbound frames so tests can assert on what a client
// would have received.
type fakeConn struct {
	mu     sync.Mutex
	frames [][]byte
	closed bool
}

func (f *fakeConn) ReadMessage() (int, []byte, error) { return 0, nil, nil }

func (f *fakeConn) WriteMessage(messageType int, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	f.frames = append(f.frames, buf)
	return nil
}

func (f *fakeConn) SetReadDeadline(t time.Time) error { return nil }

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// sent returns the captured frames in write order.
func (f *fakeConn) sent() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]byte, len(f.frames))
	copy(out, f.frames)
	return out
}

// types returns just the "type" tag of each captured frame.
func (f *fakeConn) types() []string {
	frames := f.sent()
	out := make([]string, 0, len(frames))
	for _, fr := range frames {
		out = append(out, gjson.GetBytes(fr, "type").String())
	}
	return out
}

// lastOfType returns the most recent frame with the given type tag.
func (f *fakeConn) lastOfType(t *testing.T, typeTag string) gjson.Result {
	t.Helper()
	frames := f.sent()
	for i := len(frames) - 1; i >= 0; i-- {
		if gjson.GetBytes(frames[i], "type").String() == typeTag {
			return gjson.ParseBytes(frames[i])
		}
	}
	t.Fatalf("no %q frame captured, got %v", typeTag, f.types())
	return gjson.Result{}
}

type fixture struct {
	sessions      *store.SessionStore
	identities    *store.IdentityStore
	social        *store.SocialStore
	notifications *store.NotificationStore
	hub           *ws.Hub
	dispatcher    *dispatch.Dispatcher
}

func newFixture() *fixture {
	sessions := store.NewSessionStore()
	identities := store.NewIdentityStore()
	social := store.NewSocialStore()
	notifications := store.NewNotificationStore()
	hub := ws.NewHub()
	return &fixture{
		sessions:      sessions,
		identities:    identities,
		social:        social,
		notifications: notifications,
		hub:           hub,
		dispatcher:    dispatch.New(sessions, identities, social, notifications, hub),
	}
}

// connect registers a fresh client with the hub the way the transport layer
// would after a successful upgrade.
func (fx *fixture) connect(id string) (*ws.Client, *fakeConn) {
	fc := &fakeConn{}
	c := ws.NewClient(id, fc, ws.ConnInfo{})
	fx.hub.Add(c)
	return c, fc
}

func (fx *fixture) frame(c *ws.Client, raw string) {
	fx.dispatcher.HandleFrame(c, []byte(raw))
}

func TestMalformedFrameGetsErrorReply(t *testing.T) {
	fx := newFixture()
	c, fc := fx.connect("c1")

	fx.frame(c, `{not json`)

	ev := fc.lastOfType(t, "error")
	assert.Equal(t, "Invalid message format", ev.Get("message").String())
}

func TestUnknownTypeGetsErrorReply(t *testing.T) {
	fx := newFixture()
	c, fc := fx.connect("c1")

	fx.frame(c, `{"type":"teleport"}`)

	ev := fc.lastOfType(t, "error")
	assert.Equal(t, "Unknown message type: teleport", ev.Get("message").String())
}

func TestPingPong(t *testing.T) {
	fx := newFixture()
	c, fc := fx.connect("c1")

	fx.frame(c, `{"type":"ping"}`)

	require.Equal(t, []string{"pong"}, fc.types())
}

func TestDisconnectRunsImplicitLeave(t *testing.T) {
	fx := newFixture()
	c1, _ := fx.connect("c1")
	c2, fc2 := fx.connect("c2")

	fx.frame(c1, `{"type":"join","projectId":"p1","userName":"alice"}`)
	fx.frame(c2, `{"type":"join","projectId":"p1","userName":"bob"}`)

	fx.dispatcher.HandleDisconnect(c1)

	ev := fc2.lastOfType(t, "userLeft")
	assert.Equal(t, "alice", ev.Get("userName").String())
	assert.EqualValues(t, 1, ev.Get("participantCount").Int())

	_, ok := fx.sessions.Get("p1")
	assert.True(t, ok, "session should survive while bob remains")
}

func TestDisconnectOfLastParticipantRemovesSession(t *testing.T) {
	fx := newFixture()
	c, _ := fx.connect("c1")

	fx.frame(c, `{"type":"join","projectId":"p1","userName":"alice"}`)
	fx.dispatcher.HandleDisconnect(c)

	_, ok := fx.sessions.Get("p1")
	assert.False(t, ok)
	assert.Empty(t, c.Project())
}

func TestDisconnectUnbindsIdentity(t *testing.T) {
	fx := newFixture()
	c, _ := fx.connect("c1")

	fx.frame(c, `{"type":"authenticate","scratchAuth":{"isLoggedIn":true,"username":"alice"}}`)
	_, bound := fx.identities.Get("c1")
	require.True(t, bound)

	fx.dispatcher.HandleDisconnect(c)

	_, bound = fx.identities.Get("c1")
	assert.False(t, bound)
}
