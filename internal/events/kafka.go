package events

import (
	"context"
	"errors"
	"fmt"

	"github.com/hamba/avro/v2"
	"github.com/twmb/franz-go/pkg/kgo"
)

// SchemaText is the avro schema of Event
const SchemaText = `{
	"type": "record",
	"name": "CatalogEvent",
	"namespace": "store.admin",
	"fields": [
		{"name": "entity", "type": "string"},
		{"name": "action", "type": {"type": "enum", "name": "Action", "symbols": ["created", "updated", "deleted"]}},
		{"name": "store_id", "type": "string"},
		{"name": "entity_id", "type": "string"},
		{"name": "actor_id", "type": "string"},
		{"name": "occurred_at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
	]
}`

var ErrNoBrokers = errors.New("no seed brokers")

// ProducerClient is the part of *kgo.Client the publisher needs
type ProducerClient interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

// KafkaPublisher encodes events with avro and produces them synchronously
type KafkaPublisher struct {
	cl     ProducerClient
	schema avro.Schema
}

// NewKafkaClient creates a franz-go client producing to topic
func NewKafkaClient(seedBrokers []string, topic string) (*kgo.Client, error) {
	if len(seedBrokers) == 0 {
		return nil, ErrNoBrokers
	}
	cl, err := kgo.NewClient(
		kgo.SeedBrokers(seedBrokers...),
		kgo.DefaultProduceTopicAlways(),
		kgo.DefaultProduceTopic(topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.AllowAutoTopicCreation(),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return cl, nil
}

func NewKafkaPublisher(cl ProducerClient) (*KafkaPublisher, error) {
	schema, err := avro.Parse(SchemaText)
	if err != nil {
		return nil, fmt.Errorf("parse event schema: %w", err)
	}
	return &KafkaPublisher{cl: cl, schema: schema}, nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b, err := avro.Marshal(p.schema, event)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", event.Entity, err)
	}

	r := &kgo.Record{Key: []byte(event.StoreID), Value: b}
	if err := p.cl.ProduceSync(ctx, r).FirstErr(); err != nil {
		return fmt.Errorf("produce %s event: %w", event.Entity, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() {
	p.cl.Close()
}

// Decode reads an event encoded by KafkaPublisher
func Decode(schema avro.Schema, data []byte) (Event, error) {
	var event Event
	if err := avro.Unmarshal(schema, data, &event); err != nil {
		return Event{}, err
	}
	return event, nil
}
