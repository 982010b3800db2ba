// Package ws carries the live battle relay. Clients connected to the same
// battle see each other's messages verbatim; the server never interprets
// the payload beyond checking it is JSON.
package ws

import (
	"log/slog"
	"sync"
)

// Conn is the write side of one connected client. *socket implements it
// over a gorilla connection; tests substitute their own.
type Conn interface {
	WriteMessage(data []byte) error
	Close() error
}

// Registry tracks which connections belong to which battle.
type Registry struct {
	mu      sync.Mutex
	battles map[string]map[Conn]struct{}
	logger  *slog.Logger
}

func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		battles: make(map[string]map[Conn]struct{}),
		logger:  logger,
	}
}

// Connect adds a connection to a battle's set.
func (r *Registry) Connect(battleID string, conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.battles[battleID]
	if !ok {
		set = make(map[Conn]struct{})
		r.battles[battleID] = set
	}
	set[conn] = struct{}{}
}

// Disconnect removes a connection. Removing one that was never connected
// is a no-op; the last connection leaving drops the battle's entry.
func (r *Registry) Disconnect(battleID string, conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.battles[battleID]
	if !ok {
		return
	}
	delete(set, conn)
	if len(set) == 0 {
		delete(r.battles, battleID)
	}
}

// Broadcast sends data to every connection in the battle, including the
// sender. Delivery is best effort: a failed write is logged and the
// remaining recipients still get the message.
func (r *Registry) Broadcast(battleID string, data []byte) {
	r.mu.Lock()
	conns := make([]Conn, 0, len(r.battles[battleID]))
	for c := range r.battles[battleID] {
		conns = append(conns, c)
	}
	r.mu.Unlock()

	for _, c := range conns {
		if err := c.WriteMessage(data); err != nil {
			r.logger.Warn("battle broadcast write failed",
				slog.String("battleID", battleID),
				slog.String("error", err.Error()),
			)
		}
	}
}

// Count reports how many connections a battle currently has.
func (r *Registry) Count(battleID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.battles[battleID])
}
