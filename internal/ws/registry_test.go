package ws

import (
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConn records writes and can be made to fail.
type fakeConn struct {
	mu       sync.Mutex
	messages [][]byte
	writeErr error
	closed   bool
}

func (f *fakeConn) WriteMessage(data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.messages = append(f.messages, data)
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) received() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]byte(nil), f.messages...)
}

func newTestRegistry() *Registry {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewRegistry(logger)
}

func TestBroadcast_FansOutToAllIncludingSender(t *testing.T) {
	reg := newTestRegistry()
	a, b, c := &fakeConn{}, &fakeConn{}, &fakeConn{}
	reg.Connect("battle-1", a)
	reg.Connect("battle-1", b)
	reg.Connect("battle-1", c)

	msg := []byte(`{"type":"code_update","content":"x = 1"}`)
	reg.Broadcast("battle-1", msg)

	for i, conn := range []*fakeConn{a, b, c} {
		got := conn.received()
		require.Len(t, got, 1, "conn %d", i)
		assert.Equal(t, msg, got[0], "conn %d", i)
	}
}

func TestBroadcast_ScopedToBattle(t *testing.T) {
	reg := newTestRegistry()
	inBattle, elsewhere := &fakeConn{}, &fakeConn{}
	reg.Connect("battle-1", inBattle)
	reg.Connect("battle-2", elsewhere)

	reg.Broadcast("battle-1", []byte(`{"x":1}`))

	assert.Len(t, inBattle.received(), 1)
	assert.Empty(t, elsewhere.received())
}

func TestBroadcast_FailedWriteDoesNotBlockOthers(t *testing.T) {
	reg := newTestRegistry()
	broken := &fakeConn{writeErr: errors.New("connection reset")}
	healthy := &fakeConn{}
	reg.Connect("battle-1", broken)
	reg.Connect("battle-1", healthy)

	reg.Broadcast("battle-1", []byte(`{"x":1}`))

	assert.Len(t, healthy.received(), 1)
}

func TestDisconnect(t *testing.T) {
	reg := newTestRegistry()
	a, b := &fakeConn{}, &fakeConn{}
	reg.Connect("battle-1", a)
	reg.Connect("battle-1", b)

	reg.Disconnect("battle-1", a)
	reg.Broadcast("battle-1", []byte(`{"x":1}`))

	assert.Empty(t, a.received())
	assert.Len(t, b.received(), 1)
	assert.Equal(t, 1, reg.Count("battle-1"))

	// Last one out drops the battle entry.
	reg.Disconnect("battle-1", b)
	assert.Equal(t, 0, reg.Count("battle-1"))
}

func TestDisconnect_UnknownIsNoOp(t *testing.T) {
	reg := newTestRegistry()
	reg.Disconnect("never-seen", &fakeConn{})
	reg.Disconnect("battle-1", &fakeConn{})
	assert.Equal(t, 0, reg.Count("battle-1"))
}

func TestBroadcast_EmptyBattleIsNoOp(t *testing.T) {
	reg := newTestRegistry()
	reg.Broadcast("empty", []byte(`{}`))
}
