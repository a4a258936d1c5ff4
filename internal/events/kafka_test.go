package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hamba/avro/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"
)

type fakeClient struct {
	records []*kgo.Record
	err     error
	closed  bool
}

func (f *fakeClient) ProduceSync(_ context.Context, rs ...*kgo.Record) kgo.ProduceResults {
	var results kgo.ProduceResults
	for _, r := range rs {
		f.records = append(f.records, r)
		results = append(results, kgo.ProduceResult{Record: r, Err: f.err})
	}
	return results
}

func (f *fakeClient) Close() { f.closed = true }

func TestKafkaPublisherEncodesEvent(t *testing.T) {
	cl := &fakeClient{}
	p, err := NewKafkaPublisher(cl)
	require.NoError(t, err)

	event := New(EntityBillboard, ActionCreated, "store-1", "bb-1", "user-1")
	event.OccurredAt = time.UnixMilli(1700000000000).UTC()

	require.NoError(t, p.Publish(context.Background(), event))
	require.Len(t, cl.records, 1)
	assert.Equal(t, []byte("store-1"), cl.records[0].Key)

	schema, err := avro.Parse(SchemaText)
	require.NoError(t, err)
	got, err := Decode(schema, cl.records[0].Value)
	require.NoError(t, err)
	assert.Equal(t, event.Entity, got.Entity)
	assert.Equal(t, "created", got.Action)
	assert.Equal(t, "bb-1", got.EntityID)
	assert.Equal(t, "user-1", got.ActorID)
	assert.True(t, event.OccurredAt.Equal(got.OccurredAt))
}

func TestKafkaPublisherProduceError(t *testing.T) {
	cl := &fakeClient{err: errors.New("broker down")}
	p, err := NewKafkaPublisher(cl)
	require.NoError(t, err)

	err = p.Publish(context.Background(), New(EntityProduct, ActionDeleted, "s", "p", "u"))
	assert.ErrorContains(t, err, "broker down")
}

func TestKafkaPublisherCancelledContext(t *testing.T) {
	cl := &fakeClient{}
	p, err := NewKafkaPublisher(cl)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, p.Publish(ctx, New(EntitySize, ActionUpdated, "s", "z", "u")), context.Canceled)
	assert.Empty(t, cl.records)
}

func TestKafkaPublisherClose(t *testing.T) {
	cl := &fakeClient{}
	p, err := NewKafkaPublisher(cl)
	require.NoError(t, err)

	p.Close()
	assert.True(t, cl.closed)
}

func TestNewKafkaClientRequiresBrokers(t *testing.T) {
	_, err := NewKafkaClient(nil, "catalog-events")
	assert.ErrorIs(t, err, ErrNoBrokers)
}
