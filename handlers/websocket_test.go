package handlers

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"houses-api/db"
	"houses-api/entities"
	"houses-api/logger"
	"houses-api/repositories"
	"houses-api/usecases"
	"houses-api/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newEventsServer serves the events route for one house and returns the
// manager, the server's ws:// base URL and the house ID.
func newEventsServer(t *testing.T) (*ws.Manager, string, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database, err := db.NewMemory()
	require.NoError(t, err)
	log := logger.Nop()
	houses := repositories.NewHousePgRepository(database)
	lifecycle := usecases.NewLifecycle(houses, repositories.NewBookPgRepository(database), repositories.NewReviewPgRepository(database), log)
	houseUC := usecases.NewHouseUseCase(database, houses, lifecycle, nil, log)

	desc, addr := "d", "1 Main St"
	name := "Oak Hall"
	house, err := houseUC.CreateHouse(context.Background(), usecases.Actor{ID: "pub-1", Role: entities.RolePublisher}, usecases.HouseInput{
		Name: &name, Description: &desc, Address: &addr,
	})
	require.NoError(t, err)

	mgr := ws.NewManager(log)
	h := NewWSHandler(mgr, houseUC, log)
	h.pongWait = 300 * time.Millisecond
	h.pingPeriod = 100 * time.Millisecond

	r := gin.New()
	r.GET("/houses/:id/events", h.HandleHouseEvents)
	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		mgr.CloseAll()
		srv.Close()
	})

	return mgr, "ws" + strings.TrimPrefix(srv.URL, "http"), house.ID
}

func TestHandleHouseEvents_DropsSilentSubscriber(t *testing.T) {
	mgr, base, houseID := newEventsServer(t)

	conn, _, err := websocket.DefaultDialer.Dial(base+"/houses/"+houseID+"/events", nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return mgr.Count(houseID) == 1 }, time.Second, 10*time.Millisecond)
	// The client never reads, so pings go unanswered.
	assert.Eventually(t, func() bool { return mgr.Count(houseID) == 0 }, 3*time.Second, 20*time.Millisecond)
}

func TestHandleHouseEvents_KeepsResponsiveSubscriber(t *testing.T) {
	mgr, base, houseID := newEventsServer(t)

	conn, _, err := websocket.DefaultDialer.Dial(base+"/houses/"+houseID+"/events", nil)
	require.NoError(t, err)
	defer conn.Close()
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	require.Eventually(t, func() bool { return mgr.Count(houseID) == 1 }, time.Second, 10*time.Millisecond)
	assert.Never(t, func() bool { return mgr.Count(houseID) == 0 }, time.Second, 50*time.Millisecond)
}

func TestHandleHouseEvents_UnknownHouse(t *testing.T) {
	_, base, _ := newEventsServer(t)

	_, resp, err := websocket.DefaultDialer.Dial(base+"/houses/missing/events", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 404, resp.StatusCode)
}
