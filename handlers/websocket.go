package handlers

import (
	"net/http"
	"time"

	"houses-api/apperr"
	"houses-api/logger"
	"houses-api/usecases"
	"houses-api/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	writeWait  = 5 * time.Second
)

// WSHandler streams house events to websocket subscribers.
type WSHandler struct {
	mgr    *ws.Manager
	houses *usecases.HouseUseCase
	log    *logger.Logger

	// A subscriber that does not answer a ping within pongWait is dropped.
	pongWait   time.Duration
	pingPeriod time.Duration
}

func NewWSHandler(mgr *ws.Manager, houses *usecases.HouseUseCase, log *logger.Logger) *WSHandler {
	return &WSHandler{
		mgr:        mgr,
		houses:     houses,
		log:        log.With("component", "ws_handler"),
		pongWait:   pongWait,
		pingPeriod: pingPeriod,
	}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// HandleHouseEvents upgrades to websocket and subscribes to a house's events.
// GET /api/v1/houses/:id/events
func (h *WSHandler) HandleHouseEvents(c *gin.Context) {
	houseID := c.Param("id")
	if _, err := h.houses.GetHouse(c.Request.Context(), houseID); err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"success": false, "error": apperr.Message(err)})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "house_id", houseID, "error", err)
		return
	}
	h.mgr.Register(houseID, conn)
	h.log.Info("subscriber connected", "house_id", houseID, "subscribers", h.mgr.Count(houseID))

	done := make(chan struct{})
	defer func() {
		close(done)
		h.mgr.Unregister(houseID, conn)
		h.log.Info("subscriber disconnected", "house_id", houseID)
	}()
	go h.keepAlive(houseID, conn, done)

	_ = conn.SetReadDeadline(time.Now().Add(h.pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(h.pongWait))
	})

	// Subscribers only listen; reading drives ping/close handling until the peer leaves.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("read error", "house_id", houseID, "error", err)
			}
			return
		}
	}
}

// keepAlive pings conn until done is closed or a ping cannot be written.
func (h *WSHandler) keepAlive(houseID string, conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(h.pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				h.log.Debug("ping failed", "house_id", houseID, "error", err)
				h.mgr.Unregister(houseID, conn)
				return
			}
		}
	}
}

// Subscriptions GET /api/v1/admin/subscriptions
func (h *WSHandler) Subscriptions(c *gin.Context) {
	houses := h.mgr.Houses()
	counts := make(map[string]int, len(houses))
	for _, id := range houses {
		counts[id] = h.mgr.Count(id)
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(houses), "data": counts})
}
