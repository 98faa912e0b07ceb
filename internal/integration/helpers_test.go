//go:build integration

package integration_test

import (
	"context"
	"log/slog"
	"net"
	"strconv"
	"testing"

	"github.com/couchcryptid/curve-number-etl/internal/adapter/tiffstore"
	"github.com/couchcryptid/curve-number-etl/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
)

const kafkaImage = "confluentinc/confluent-local:7.5.0"

// startKafka runs a single-node Kafka container for the duration of the test
// and returns its bootstrap address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()
	container, err := tckafka.Run(ctx, kafkaImage, tckafka.WithClusterID("cn-etl-test"))
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err, "start kafka container")

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

// createTopic creates a single-partition topic through the cluster controller.
func createTopic(t *testing.T, broker, topic string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	cc, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer cc.Close()

	require.NoError(t, cc.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// writeBlock stores a small land cover and soil pair as block id.
func writeBlock(t *testing.T, store *tiffstore.Store, id int, landCover, soil [][]uint8) {
	t.Helper()
	lc, err := domain.GridFromRows(landCover)
	require.NoError(t, err)
	hsg, err := domain.GridFromRows(soil)
	require.NoError(t, err)
	require.NoError(t, tiffstore.WriteGrid(store.LandCoverPath(id), lc))
	require.NoError(t, tiffstore.WriteGrid(store.SoilPath(id), hsg))
}

func jobMessage(id int) kafkago.Message {
	return kafkago.Message{
		Key:   []byte("block-" + strconv.Itoa(id)),
		Value: []byte(`{"block_id":` + strconv.Itoa(id) + `}`),
	}
}
