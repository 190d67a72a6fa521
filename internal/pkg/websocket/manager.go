package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/piresc/dispatch/internal/pkg/constants"
	jwtpkg "github.com/piresc/dispatch/internal/pkg/jwt"
	"github.com/piresc/dispatch/internal/pkg/logger"
	"github.com/piresc/dispatch/internal/pkg/metrics"
	"github.com/piresc/dispatch/internal/pkg/models"
)

const defaultWriteTimeout = 5 * time.Second

// Client is one authenticated socket
type Client struct {
	UserID string
	Role   models.Role

	conn    *websocket.Conn
	writeMu sync.Mutex
}

// Actor returns the identity the socket authenticated as
func (c *Client) Actor() models.Actor {
	return models.Actor{UserID: c.UserID, Role: c.Role}
}

func (c *Client) write(timeout time.Duration, msg models.WSMessage) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
		return err
	}
	return c.conn.WriteJSON(msg)
}

// EventHandler handles one inbound frame of a registered event type
type EventHandler func(ctx context.Context, client *Client, data json.RawMessage) error

// Manager owns every socket and is the process's notification channel.
// It only ever addresses one user at a time.
type Manager struct {
	mu           sync.RWMutex
	clients      map[string]*Client
	cfg          models.JWTConfig
	upgrader     websocket.Upgrader
	handlers     map[string]EventHandler
	onDisconnect []func(ctx context.Context, client *Client)
	writeTimeout time.Duration
}

// NewManager creates a new WebSocket manager
func NewManager(jwtConfig models.JWTConfig) *Manager {
	return &Manager{
		clients:  make(map[string]*Client),
		handlers: make(map[string]EventHandler),
		cfg:      jwtConfig,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		writeTimeout: defaultWriteTimeout,
	}
}

// On registers the handler for an inbound event. Call before serving.
func (m *Manager) On(event string, handler EventHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[event] = handler
}

// OnDisconnect registers a callback run after a socket closes
func (m *Manager) OnDisconnect(fn func(ctx context.Context, client *Client)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onDisconnect = append(m.onDisconnect, fn)
}

// HandleConnection authenticates, upgrades and serves a socket until it closes
func (m *Manager) HandleConnection(c echo.Context) error {
	client, err := m.authenticateClient(c)
	if err != nil {
		return err
	}

	conn, err := m.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	client.conn = conn

	m.addClient(client)
	logger.Info("WebSocket client connected",
		logger.String("user_id", client.UserID),
		logger.String("role", string(client.Role)))

	ctx := context.WithoutCancel(c.Request().Context())
	defer m.disconnect(ctx, client)

	m.readLoop(ctx, client)
	return nil
}

// authenticateClient accepts a bearer header or, for browsers, a token query parameter
func (m *Manager) authenticateClient(c echo.Context) (*Client, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		if token := c.QueryParam("token"); token != "" {
			header = "Bearer " + token
		}
	}

	claims, err := jwtpkg.FromHeader(header, m.cfg.Secret)
	if err != nil {
		logger.Warn("WebSocket authentication failed", logger.Err(err))
		return nil, echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}

	return &Client{UserID: claims.UserID, Role: claims.Role}, nil
}

func (m *Manager) readLoop(ctx context.Context, client *Client) {
	for {
		_, raw, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("WebSocket read failed",
					logger.String("user_id", client.UserID),
					logger.Err(err))
			}
			return
		}

		var msg models.WSMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			_ = m.sendError(client, constants.ErrorInvalidFormat, "invalid message format")
			continue
		}

		if msg.Event == constants.EventPing {
			_ = client.write(m.writeTimeout, models.WSMessage{Event: constants.EventPong, Data: json.RawMessage(`{}`)})
			continue
		}

		m.mu.RLock()
		handler, ok := m.handlers[msg.Event]
		m.mu.RUnlock()
		if !ok {
			_ = m.sendError(client, constants.ErrorUnknownEvent, fmt.Sprintf("unknown event %q", msg.Event))
			continue
		}

		if err := handler(ctx, client, msg.Data); err != nil {
			code, severity := classify(err)
			_ = m.SendCategorizedError(client, err, code, severity)
		}
	}
}

func (m *Manager) addClient(client *Client) {
	m.mu.Lock()
	prev, exists := m.clients[client.UserID]
	m.clients[client.UserID] = client
	m.mu.Unlock()

	if exists && prev.conn != nil {
		_ = prev.conn.Close()
	} else {
		metrics.WSConnections.Inc()
	}
}

func (m *Manager) disconnect(ctx context.Context, client *Client) {
	_ = client.conn.Close()

	m.mu.Lock()
	current, ok := m.clients[client.UserID]
	owned := ok && current == client
	if owned {
		delete(m.clients, client.UserID)
	}
	callbacks := append([]func(context.Context, *Client){}, m.onDisconnect...)
	m.mu.Unlock()

	if !owned {
		// replaced by a newer socket for the same user
		return
	}
	metrics.WSConnections.Dec()

	logger.Info("WebSocket client disconnected", logger.String("user_id", client.UserID))
	for _, fn := range callbacks {
		fn(ctx, client)
	}
}

// IsConnected reports whether userID has a live socket
func (m *Manager) IsConnected(userID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.clients[userID]
	return ok
}

// Connected returns the number of live sockets
func (m *Manager) Connected() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

// Notify pushes one event to one user. It never retries.
func (m *Manager) Notify(ctx context.Context, userID string, event string, data interface{}) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", models.ErrDeliveryFailed, err)
	}

	m.mu.RLock()
	client, ok := m.clients[userID]
	m.mu.RUnlock()
	if !ok {
		return models.ErrClientNotConnected
	}

	rawData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %v", models.ErrDeliveryFailed, event, err)
	}

	if err := client.write(m.writeTimeout, models.WSMessage{Event: event, Data: rawData}); err != nil {
		return fmt.Errorf("%w: %v", models.ErrDeliveryFailed, err)
	}
	return nil
}

// SendMessage writes an event frame to a client
func (m *Manager) SendMessage(client *Client, event string, data interface{}) error {
	rawData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("error marshaling message data: %w", err)
	}
	return client.write(m.writeTimeout, models.WSMessage{Event: event, Data: rawData})
}

func (m *Manager) sendError(client *Client, code, message string) error {
	return m.SendMessage(client, constants.EventError, models.WSErrorMessage{Code: code, Message: message})
}

// SendCategorizedError logs err and sends the client as much detail as severity allows
func (m *Manager) SendCategorizedError(client *Client, err error, code string, severity constants.ErrorSeverity) error {
	switch severity {
	case constants.ErrorSeverityClient:
		logger.Info("WebSocket request rejected",
			logger.String("user_id", client.UserID),
			logger.String("error_code", code),
			logger.Err(err))
		return m.sendError(client, code, err.Error())
	case constants.ErrorSeveritySecurity:
		logger.Warn("Security-related error occurred",
			logger.String("user_id", client.UserID),
			logger.String("error_code", code),
			logger.Err(err))
		return m.sendError(client, code, "Access denied")
	default:
		logger.Error("WebSocket operation failed",
			logger.String("user_id", client.UserID),
			logger.String("error_code", code),
			logger.Err(err))
		return m.sendError(client, code, "Operation failed")
	}
}

func classify(err error) (string, constants.ErrorSeverity) {
	switch {
	case errors.Is(err, models.ErrInvalidCoordinate):
		return constants.ErrorInvalidLocation, constants.ErrorSeverityClient
	case errors.Is(err, models.ErrInvalidRequest):
		return constants.ErrorValidationFailed, constants.ErrorSeverityClient
	case errors.Is(err, models.ErrForbidden):
		return constants.ErrorUnauthorized, constants.ErrorSeveritySecurity
	case errors.Is(err, models.ErrTripUnavailable),
		errors.Is(err, models.ErrOfferNoLongerValid),
		errors.Is(err, models.ErrOfferNotFound),
		errors.Is(err, models.ErrTripNotFound),
		errors.Is(err, models.ErrInvalidTransition):
		return constants.ErrorOfferRejected, constants.ErrorSeverityClient
	default:
		return constants.ErrorInternalError, constants.ErrorSeverityServer
	}
}

// Close closes every socket
func (m *Manager) Close() {
	m.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(m.clients))
	for _, c := range m.clients {
		conns = append(conns, c.conn)
	}
	m.mu.RUnlock()

	for _, conn := range conns {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		_ = conn.Close()
	}
}
