package ws

import (
	"encoding/json"
	"sync"
	"time"

	"houses-api/entities"
	"houses-api/logger"

	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

// client is one subscribed connection. Writes are serialized per connection.
type client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (c *client) send(payload []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

// Manager keeps track of websocket subscribers per house and fans out house events.
type Manager struct {
	mu          sync.RWMutex
	subscribers map[string]map[*websocket.Conn]*client // houseID -> conns
	log         *logger.Logger
}

func NewManager(log *logger.Logger) *Manager {
	return &Manager{
		subscribers: make(map[string]map[*websocket.Conn]*client),
		log:         log.With("component", "ws"),
	}
}

// Register subscribes conn to the events of a house.
func (m *Manager) Register(houseID string, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	subs, ok := m.subscribers[houseID]
	if !ok {
		subs = make(map[*websocket.Conn]*client)
		m.subscribers[houseID] = subs
	}
	subs[conn] = &client{conn: conn}
}

// Unregister removes and closes a subscription.
func (m *Manager) Unregister(houseID string, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	subs, ok := m.subscribers[houseID]
	if !ok {
		return
	}
	if _, ok := subs[conn]; ok {
		_ = conn.Close()
		delete(subs, conn)
	}
	if len(subs) == 0 {
		delete(m.subscribers, houseID)
	}
}

// PublishHouseEvent sends ev to every subscriber of its house. Subscribers
// that fail to receive it are dropped. A deleted house closes its subscriptions.
func (m *Manager) PublishHouseEvent(ev entities.HouseEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		m.log.Error("encode house event failed", "type", ev.Type, "error", err)
		return
	}

	m.mu.RLock()
	targets := make([]*client, 0, len(m.subscribers[ev.HouseID]))
	for _, c := range m.subscribers[ev.HouseID] {
		targets = append(targets, c)
	}
	m.mu.RUnlock()

	for _, c := range targets {
		if err := c.send(payload); err != nil {
			m.log.Warn("dropping subscriber", "house_id", ev.HouseID, "error", err)
			m.Unregister(ev.HouseID, c.conn)
		}
	}

	if ev.Type == entities.EventHouseDeleted {
		for _, c := range targets {
			m.Unregister(ev.HouseID, c.conn)
		}
	}
}

// Count returns the number of subscribers of a house.
func (m *Manager) Count(houseID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subscribers[houseID])
}

// Houses returns the IDs of houses with at least one subscriber.
func (m *Manager) Houses() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.subscribers))
	for id := range m.subscribers {
		ids = append(ids, id)
	}
	return ids
}

// CloseAll closes every subscription, used on shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for houseID, subs := range m.subscribers {
		for conn := range subs {
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(time.Second))
			_ = conn.Close()
		}
		delete(m.subscribers, houseID)
	}
}
