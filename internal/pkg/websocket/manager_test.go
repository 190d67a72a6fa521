package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/piresc/dispatch/internal/pkg/constants"
	jwtpkg "github.com/piresc/dispatch/internal/pkg/jwt"
	"github.com/piresc/dispatch/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testJWT = models.JWTConfig{Secret: "ws-secret", Expiration: 5, Issuer: "test"}

func startServer(t *testing.T, m *Manager) string {
	t.Helper()
	e := echo.New()
	e.GET("/ws", m.HandleConnection)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func dial(t *testing.T, url, userID string, role models.Role) *websocket.Conn {
	t.Helper()
	token, _, err := jwtpkg.GenerateToken(userID, role, testJWT)
	require.NoError(t, err)

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) models.WSMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg models.WSMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func waitConnected(t *testing.T, m *Manager, userID string) {
	t.Helper()
	require.Eventually(t, func() bool { return m.IsConnected(userID) }, 2*time.Second, 10*time.Millisecond)
}

func TestManager_RejectsWithoutToken(t *testing.T) {
	url := startServer(t, NewManager(testJWT))

	_, resp, err := websocket.DefaultDialer.Dial(url, nil)

	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestManager_Notify(t *testing.T) {
	// Arrange
	m := NewManager(testJWT)
	url := startServer(t, m)
	conn := dial(t, url, "rider-1", models.RoleRider)
	waitConnected(t, m, "rider-1")

	// Act
	err := m.Notify(context.Background(), "rider-1", constants.EventTripStatus, map[string]string{"status": "ACCEPTED"})

	// Assert
	require.NoError(t, err)
	msg := readMessage(t, conn)
	assert.Equal(t, constants.EventTripStatus, msg.Event)
	assert.JSONEq(t, `{"status":"ACCEPTED"}`, string(msg.Data))
	assert.Equal(t, 1, m.Connected())
}

func TestManager_NotifyNotConnected(t *testing.T) {
	m := NewManager(testJWT)

	err := m.Notify(context.Background(), "ghost", constants.EventOfferNew, nil)

	assert.ErrorIs(t, err, models.ErrClientNotConnected)
}

func TestManager_NotifyCancelledContext(t *testing.T) {
	m := NewManager(testJWT)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.Notify(ctx, "anyone", constants.EventOfferNew, nil)

	assert.ErrorIs(t, err, models.ErrDeliveryFailed)
}

func TestManager_DispatchesEvents(t *testing.T) {
	// Arrange
	m := NewManager(testJWT)
	received := make(chan models.Actor, 1)
	m.On(constants.EventDriverLocation, func(ctx context.Context, c *Client, data json.RawMessage) error {
		var loc models.Location
		if err := json.Unmarshal(data, &loc); err != nil {
			return models.ErrInvalidRequest
		}
		if err := loc.Validate(); err != nil {
			return err
		}
		received <- c.Actor()
		return nil
	})
	url := startServer(t, m)
	conn := dial(t, url, "driver-1", models.RoleDriver)

	// Act + Assert: valid frame reaches the handler
	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"event": constants.EventDriverLocation,
		"data":  map[string]float64{"latitude": 34.526, "longitude": 69.1777},
	}))
	select {
	case actor := <-received:
		assert.Equal(t, models.Actor{UserID: "driver-1", Role: models.RoleDriver}, actor)
	case <-time.After(2 * time.Second):
		t.Fatal("handler not called")
	}

	// invalid coordinate becomes a client error frame
	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"event": constants.EventDriverLocation,
		"data":  map[string]float64{"latitude": 95, "longitude": 0},
	}))
	msg := readMessage(t, conn)
	assert.Equal(t, constants.EventError, msg.Event)
	var wsErr models.WSErrorMessage
	require.NoError(t, json.Unmarshal(msg.Data, &wsErr))
	assert.Equal(t, constants.ErrorInvalidLocation, wsErr.Code)

	// unknown event
	require.NoError(t, conn.WriteJSON(map[string]interface{}{"event": "nope", "data": nil}))
	msg = readMessage(t, conn)
	require.NoError(t, json.Unmarshal(msg.Data, &wsErr))
	assert.Equal(t, constants.ErrorUnknownEvent, wsErr.Code)

	// ping
	require.NoError(t, conn.WriteJSON(map[string]interface{}{"event": constants.EventPing}))
	assert.Equal(t, constants.EventPong, readMessage(t, conn).Event)
}

func TestManager_DisconnectCallback(t *testing.T) {
	// Arrange
	m := NewManager(testJWT)
	gone := make(chan string, 1)
	m.OnDisconnect(func(ctx context.Context, c *Client) { gone <- c.UserID })
	url := startServer(t, m)
	conn := dial(t, url, "driver-9", models.RoleDriver)
	waitConnected(t, m, "driver-9")

	// Act
	require.NoError(t, conn.Close())

	// Assert
	select {
	case id := <-gone:
		assert.Equal(t, "driver-9", id)
	case <-time.After(2 * time.Second):
		t.Fatal("disconnect callback not called")
	}
	assert.False(t, m.IsConnected("driver-9"))
}

func TestManager_ReconnectReplacesSocket(t *testing.T) {
	m := NewManager(testJWT)
	disconnects := make(chan string, 2)
	m.OnDisconnect(func(ctx context.Context, c *Client) { disconnects <- c.UserID })
	url := startServer(t, m)

	first := dial(t, url, "rider-7", models.RoleRider)
	waitConnected(t, m, "rider-7")
	second := dial(t, url, "rider-7", models.RoleRider)

	// the older socket is closed by the server once the new one registers
	require.NoError(t, first.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := first.ReadMessage()
	require.Error(t, err)
	assert.False(t, isTimeout(err))

	require.NoError(t, m.Notify(context.Background(), "rider-7", constants.EventTripStatus, "x"))
	assert.Equal(t, constants.EventTripStatus, readMessage(t, second).Event)
	assert.Equal(t, 1, m.Connected())
	assert.Empty(t, disconnects)
}

func isTimeout(err error) bool {
	ne, ok := err.(interface{ Timeout() bool })
	return ok && ne.Timeout()
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err      error
		code     string
		severity constants.ErrorSeverity
	}{
		{models.ErrInvalidCoordinate, constants.ErrorInvalidLocation, constants.ErrorSeverityClient},
		{models.ErrInvalidRequest, constants.ErrorValidationFailed, constants.ErrorSeverityClient},
		{models.ErrForbidden, constants.ErrorUnauthorized, constants.ErrorSeveritySecurity},
		{models.ErrTripUnavailable, constants.ErrorOfferRejected, constants.ErrorSeverityClient},
		{models.ErrOfferNoLongerValid, constants.ErrorOfferRejected, constants.ErrorSeverityClient},
		{assert.AnError, constants.ErrorInternalError, constants.ErrorSeverityServer},
	}

	for _, tt := range tests {
		code, severity := classify(tt.err)
		assert.Equal(t, tt.code, code, tt.err.Error())
		assert.Equal(t, tt.severity, severity, tt.err.Error())
	}
}
