package websocket

import (
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

// Client is one party watching a session's presence channel.
type Client struct {
	BookingID uuid.UUID
	UserID    uuid.UUID
	Conn      *websocket.Conn
}

// PresenceEvent is broadcast to the other participant when someone joins or
// leaves the video room.
type PresenceEvent struct {
	BookingID uuid.UUID `json:"booking_id"`
	UserID    uuid.UUID `json:"user_id"`
	Role      string    `json:"role"`
	Event     string    `json:"event"`
}

var (
	sessions   = make(map[uuid.UUID]map[uuid.UUID]*websocket.Conn)
	sessionsMu sync.RWMutex
)

var Register = make(chan *Client)
var Unregister = make(chan *Client)
var Broadcast = make(chan *PresenceEvent)

func RunHub() {
	for {
		select {
		case client := <-Register:
			sessionsMu.Lock()
			if sessions[client.BookingID] == nil {
				sessions[client.BookingID] = make(map[uuid.UUID]*websocket.Conn)
			}
			sessions[client.BookingID][client.UserID] = client.Conn
			sessionsMu.Unlock()
		case client := <-Unregister:
			sessionsMu.Lock()
			if conns, ok := sessions[client.BookingID]; ok {
				if conn, ok := conns[client.UserID]; ok && conn == client.Conn {
					delete(conns, client.UserID)
				}
				if len(conns) == 0 {
					delete(sessions, client.BookingID)
				}
			}
			sessionsMu.Unlock()
		case event := <-Broadcast:
			sessionsMu.RLock()
			conns := sessions[event.BookingID]
			for userID, conn := range conns {
				if userID == event.UserID {
					continue
				}
				if err := conn.WriteJSON(event); err != nil {
					log.Printf("Error sending presence event to %s: %v", userID, err)
				}
			}
			sessionsMu.RUnlock()
		}
	}
}

// Notify pushes a presence event without blocking the caller when nobody is
// listening on the hub yet.
func Notify(event *PresenceEvent) {
	select {
	case Broadcast <- event:
	default:
	}
}
