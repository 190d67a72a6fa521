package gateway

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	natsserver "github.com/nats-io/nats-server/v2/test"
	"github.com/nats-io/nats.go"
	"github.com/piresc/dispatch/internal/pkg/constants"
	"github.com/piresc/dispatch/internal/pkg/models"
	natspkg "github.com/piresc/dispatch/internal/pkg/nats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupGateway(t *testing.T) (*OfferGW, *natspkg.Client) {
	t.Helper()
	opts := natsserver.DefaultTestOptions
	opts.Port = -1
	s := natsserver.RunServer(&opts)
	t.Cleanup(s.Shutdown)

	client, err := natspkg.NewClient(s.ClientURL())
	require.NoError(t, err)
	t.Cleanup(client.Close)
	return NewOfferGW(client, nil), client
}

func subscribe(t *testing.T, client *natspkg.Client, subject string) <-chan *nats.Msg {
	t.Helper()
	received := make(chan *nats.Msg, 1)
	_, err := client.Subscribe(subject, func(msg *nats.Msg) { received <- msg })
	require.NoError(t, err)
	require.NoError(t, client.GetConn().Flush())
	return received
}

func TestPublishTripStatus(t *testing.T) {
	// Arrange
	gw, client := setupGateway(t)
	received := subscribe(t, client, constants.SubjectTripStatusChanged)
	event := &models.TripStatusEvent{
		TripID:   "trip-1",
		RiderID:  "rider-1",
		DriverID: "driver-1",
		From:     models.TripStatusRequested,
		Status:   models.TripStatusAccepted,
		At:       time.Now().UTC(),
	}

	// Act
	err := gw.PublishTripStatus(context.Background(), event)

	// Assert
	require.NoError(t, err)
	select {
	case msg := <-received:
		var got models.TripStatusEvent
		require.NoError(t, json.Unmarshal(msg.Data, &got))
		assert.Equal(t, "trip-1", got.TripID)
		assert.Equal(t, models.TripStatusAccepted, got.Status)
	case <-time.After(2 * time.Second):
		t.Fatal("trip status not published")
	}
}

func TestPublishDispatchFailed(t *testing.T) {
	gw, client := setupGateway(t)
	received := subscribe(t, client, constants.SubjectTripDispatchFailed)

	err := gw.PublishDispatchFailed(context.Background(), &models.DispatchOutcome{
		TripID: "trip-1", Status: models.DispatchNoDriver, Rounds: 3,
	})

	require.NoError(t, err)
	select {
	case msg := <-received:
		var got models.DispatchOutcome
		require.NoError(t, json.Unmarshal(msg.Data, &got))
		assert.Equal(t, models.DispatchNoDriver, got.Status)
		assert.Equal(t, 3, got.Rounds)
	case <-time.After(2 * time.Second):
		t.Fatal("dispatch failure not published")
	}
}

func TestPublish_ClosedConnection(t *testing.T) {
	gw, client := setupGateway(t)
	client.GetConn().Close()

	err := gw.PublishDispatchFailed(context.Background(), &models.DispatchOutcome{TripID: "trip-1"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), constants.SubjectTripDispatchFailed)
}
