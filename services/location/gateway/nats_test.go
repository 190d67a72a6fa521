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

func TestPublishDriverLocation(t *testing.T) {
	// Arrange
	opts := natsserver.DefaultTestOptions
	opts.Port = -1
	s := natsserver.RunServer(&opts)
	t.Cleanup(s.Shutdown)

	client, err := natspkg.NewClient(s.ClientURL())
	require.NoError(t, err)
	t.Cleanup(client.Close)

	received := make(chan *nats.Msg, 1)
	_, err = client.Subscribe(constants.SubjectDriverLocationUpdated, func(msg *nats.Msg) { received <- msg })
	require.NoError(t, err)
	require.NoError(t, client.GetConn().Flush())

	gw := NewLocationGW(client)
	record := &models.DriverLocationRecord{
		DriverID:  "driver-1",
		Location:  models.Location{Latitude: 34.5260, Longitude: 69.1777},
		Tile:      "tw5n3t",
		UpdatedAt: time.Now().UTC(),
	}

	// Act
	err = gw.PublishDriverLocation(context.Background(), record)

	// Assert
	require.NoError(t, err)
	select {
	case msg := <-received:
		var got models.DriverLocationRecord
		require.NoError(t, json.Unmarshal(msg.Data, &got))
		assert.Equal(t, "driver-1", got.DriverID)
		assert.Equal(t, record.Location, got.Location)
		assert.Equal(t, "tw5n3t", got.Tile)
	case <-time.After(2 * time.Second):
		t.Fatal("driver location was not published")
	}
}

func TestPublishDriverLocation_ClosedConnection(t *testing.T) {
	opts := natsserver.DefaultTestOptions
	opts.Port = -1
	s := natsserver.RunServer(&opts)
	t.Cleanup(s.Shutdown)

	client, err := natspkg.NewClient(s.ClientURL())
	require.NoError(t, err)
	client.Close()

	err = NewLocationGW(client).PublishDriverLocation(context.Background(), &models.DriverLocationRecord{DriverID: "driver-1"})

	assert.ErrorIs(t, err, nats.ErrConnectionClosed)
	assert.Contains(t, err.Error(), "failed to publish driver location")
}
