package websocket

import (
	"encoding/json"
	"log"
	"sync/atomic"
	"time"
)

// DefaultRoom is where clients land until they join a table room.
const DefaultRoom = "lobby"

// Hub manages websocket clients and room-scoped broadcasts. All room state is
// owned by the Run goroutine; the exported methods only push onto channels.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	join       chan joinReq
	broadcast  chan Broadcast
	stop       chan struct{}

	stopped atomic.Bool

	rooms map[string]map[*Client]bool
}

type joinReq struct {
	Client *Client
	Room   string
}

type Broadcast struct {
	Room    string
	Type    string
	Payload any
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		join:       make(chan joinReq),
		broadcast:  make(chan Broadcast, 256),
		stop:       make(chan struct{}),
		rooms:      map[string]map[*Client]bool{},
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			if c.Room == "" {
				c.Room = DefaultRoom
			}
			if h.rooms[c.Room] == nil {
				h.rooms[c.Room] = map[*Client]bool{}
			}
			h.rooms[c.Room][c] = true
		case c := <-h.unregister:
			h.removeClient(c)
		case jr := <-h.join:
			h.moveClientToRoom(jr.Client, jr.Room)
		case b := <-h.broadcast:
			h.broadcastToRoom(b.Room, b.Type, b.Payload)
		case <-h.stop:
			for room, clients := range h.rooms {
				for c := range clients {
					c.SendCloseOnce.Do(func() { close(c.Send) })
				}
				delete(h.rooms, room)
			}
			return
		}
	}
}

// Stop shuts the hub down. After Stop, Register/Join/Unregister/Broadcast are
// no-ops instead of blocking on a dead Run loop.
func (h *Hub) Stop() {
	if h.stopped.CompareAndSwap(false, true) {
		close(h.stop)
	}
}

func (h *Hub) Register(c *Client) {
	if h.stopped.Load() {
		return
	}
	select {
	case h.register <- c:
	case <-h.stop:
	}
}

func (h *Hub) Unregister(c *Client) {
	if h.stopped.Load() {
		return
	}
	select {
	case h.unregister <- c:
	case <-h.stop:
	}
}

func (h *Hub) Join(c *Client, room string) {
	if h.stopped.Load() {
		return
	}
	select {
	case h.join <- joinReq{Client: c, Room: room}:
	case <-h.stop:
	}
}

func (h *Hub) Broadcast(room, typ string, payload any) {
	if h.stopped.Load() {
		return
	}
	select {
	case h.broadcast <- Broadcast{Room: room, Type: typ, Payload: payload}:
	case <-h.stop:
	}
}

func (h *Hub) removeClient(c *Client) {
	if c == nil {
		return
	}
	if c.Room != "" && h.rooms[c.Room] != nil {
		delete(h.rooms[c.Room], c)
		if len(h.rooms[c.Room]) == 0 {
			delete(h.rooms, c.Room)
		}
	}
	c.SendCloseOnce.Do(func() { close(c.Send) })
}

func (h *Hub) moveClientToRoom(c *Client, room string) {
	if c == nil {
		return
	}
	if room == "" {
		room = DefaultRoom
	}
	if c.Room != "" && h.rooms[c.Room] != nil {
		delete(h.rooms[c.Room], c)
		if len(h.rooms[c.Room]) == 0 {
			delete(h.rooms, c.Room)
		}
	}
	c.Room = room
	if h.rooms[room] == nil {
		h.rooms[room] = map[*Client]bool{}
	}
	h.rooms[room][c] = true
}

func (h *Hub) broadcastToRoom(room, typ string, payload any) {
	clients := h.rooms[room]
	if len(clients) == 0 {
		return
	}

	msg := map[string]any{
		"type":      typ,
		"payload":   payload,
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	}
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("ws broadcast marshal error: room=%s type=%s err=%v", room, typ, err)
		return
	}

	for c := range clients {
		select {
		case c.Send <- data:
		default:
			// Backpressure or dead client.
			h.removeClient(c)
		}
	}
}
