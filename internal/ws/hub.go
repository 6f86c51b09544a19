// Package ws implements the realtime collaboration transport. Clients
// subscribe to per-project rooms and send mutation commands; every applied
// mutation is broadcast to the room so all open editors converge.
package ws

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"canvaspilot.io/canvaspilot/internal/pkg/logger"
	"canvaspilot.io/canvaspilot/internal/pkg/worker"
)

// Hub tracks connected clients and their project-room subscriptions.
// Broadcast fan-out runs on the dedicated pool so a slow socket never
// blocks the mutating request.
type Hub struct {
	mu    sync.RWMutex
	rooms map[int64]map[*Client]struct{}

	pools *worker.Pools
}

// NewHub creates an empty hub.
func NewHub(pools *worker.Pools) *Hub {
	return &Hub{
		rooms: make(map[int64]map[*Client]struct{}),
		pools: pools,
	}
}

// Subscribe adds a client to a project room.
func (h *Hub) Subscribe(c *Client, projectID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[projectID]
	if !ok {
		room = make(map[*Client]struct{})
		h.rooms[projectID] = room
	}
	room[c] = struct{}{}
	c.projects[projectID] = struct{}{}
}

// Unsubscribe removes a client from a project room.
func (h *Hub) Unsubscribe(c *Client, projectID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c, projectID)
}

// Drop removes a client from every room it joined. Called once when the
// connection closes.
func (h *Hub) Drop(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for projectID := range c.projects {
		h.removeLocked(c, projectID)
	}
}

func (h *Hub) removeLocked(c *Client, projectID int64) {
	delete(c.projects, projectID)
	if room, ok := h.rooms[projectID]; ok {
		delete(room, c)
		if len(room) == 0 {
			delete(h.rooms, projectID)
		}
	}
}

// RoomSize reports the number of clients subscribed to a project.
func (h *Hub) RoomSize(projectID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[projectID])
}

// Broadcast queues a payload to every client in a project room. Clients
// whose send queue is full are skipped; they will resync on reconnect.
func (h *Hub) Broadcast(projectID int64, payload []byte) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.rooms[projectID]))
	for c := range h.rooms[projectID] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c := c
		err := h.pools.SubmitDetached(h.pools.Broadcast, func(context.Context) {
			if !c.trySend(payload) {
				logger.Warn("dropping broadcast to slow client",
					zap.Int64("project_id", projectID),
					zap.String("handle", c.handleName()),
				)
			}
		})
		if err != nil {
			logger.Warn("broadcast pool rejected task", zap.Error(err))
		}
	}
}
