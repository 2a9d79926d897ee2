package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"powermonitor/backend/services/monitor-service/internal/service"
	"powermonitor/backend/services/monitor-service/internal/store"
)

type harness struct {
	readings *store.MemoryReadingStore
	manager  *Manager
	url      string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	readings := store.NewMemoryReadingStore(10)
	svc := service.NewReadingsService(readings, nil, nil, zap.NewNop())
	manager := NewManager()
	srv := NewServer(manager, NewReadingProcessor(svc, zap.NewNop()), time.Second, zap.NewNop())

	ts := httptest.NewServer(http.HandlerFunc(srv.HandleWS))
	t.Cleanup(func() {
		manager.CloseAll()
		ts.Close()
	})
	return &harness{
		readings: readings,
		manager:  manager,
		url:      "ws" + strings.TrimPrefix(ts.URL, "http"),
	}
}

func (h *harness) dial(t *testing.T, deviceID string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(h.url+"/?device_id="+deviceID, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestMeterFrameIsRecordedAndAcknowledged(t *testing.T) {
	h := newHarness(t)
	conn := h.dial(t, "meter-1")

	require.NoError(t, conn.WriteJSON(service.ReadingInput{Voltage: 231, Current: 9.5, Power: 2.2}))

	var reply Reply
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, FrameAck, reply.Type)
	require.NotNil(t, reply.Reading)
	assert.NotEmpty(t, reply.Reading.ID)
	assert.Equal(t, 2.2, reply.Reading.Power)

	latest, ok := h.readings.Latest()
	require.True(t, ok)
	assert.Equal(t, reply.Reading.ID, latest.ID)
}

func TestMeterFrameErrors(t *testing.T) {
	h := newHarness(t)
	conn := h.dial(t, "meter-1")
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	var reply Reply
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, FrameError, reply.Type)
	assert.Equal(t, "invalid json", reply.Error)

	require.NoError(t, conn.WriteJSON(service.ReadingInput{Voltage: 230, Power: -3}))
	reply = Reply{}
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, FrameError, reply.Type)
	assert.Contains(t, reply.Error, "power must not be negative")
	assert.Zero(t, h.readings.Len())
}

func TestDeviceIDRequired(t *testing.T) {
	h := newHarness(t)

	_, resp, err := websocket.DefaultDialer.Dial(h.url+"/", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReconnectReplacesPreviousConnection(t *testing.T) {
	h := newHarness(t)
	first := h.dial(t, "meter-1")
	require.Eventually(t, func() bool { return h.manager.Count() == 1 }, 2*time.Second, 10*time.Millisecond)

	second := h.dial(t, "meter-1")

	require.NoError(t, first.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := first.ReadMessage()
	assert.Error(t, err, "the older connection is closed")

	require.NoError(t, second.WriteJSON(service.ReadingInput{Voltage: 230, Current: 1, Power: 0.23}))
	var reply Reply
	require.NoError(t, second.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, second.ReadJSON(&reply))
	assert.Equal(t, FrameAck, reply.Type)
	assert.Equal(t, 1, h.manager.Count())
}

func TestManagerClosesConnectionsOnShutdown(t *testing.T) {
	h := newHarness(t)
	conn := h.dial(t, "meter-1")
	require.Eventually(t, func() bool { return h.manager.Count() == 1 }, 2*time.Second, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		h.manager.Start(ctx)
		close(done)
	}()
	cancel()
	<-done

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)
	assert.Eventually(t, func() bool { return h.manager.Count() == 0 }, 2*time.Second, 10*time.Millisecond)
}
