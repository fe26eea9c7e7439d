package kafka

import (
	"context"
	"log/slog"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.ClientEventsProducer = (*ClientEventsProducer)(nil)

// A ClientEventsProducer used for produce [domain.ClientEvent]
type ClientEventsProducer struct {
	cl       ProducerClient
	encoder  Encoder
	opPrefix string
}

func NewClientEventsProducer(
	opts ...ProducerOpt,
) (ClientEventsProducer, error) {
	const op = "NewClientEventsProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return ClientEventsProducer{}, opErr(err, op)
		}
	}

	return ClientEventsProducer{
		cl:       options.cl,
		encoder:  options.encoder,
		opPrefix: "ClientEventsProducer",
	}, nil
}

func (p ClientEventsProducer) Close() {
	const op = "Close"
	log := slog.With("op", makeOp(p.opPrefix, op))
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p ClientEventsProducer) ProduceEvent(
	ctx context.Context, evt domain.ClientEvent,
) error {
	const op = "ProduceEvent"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	r, err := p.createRecord(evt)
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	res := p.cl.ProduceSync(ctx, &r)
	if err := res.FirstErr(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	return nil
}

func (p ClientEventsProducer) createRecord(
	evt domain.ClientEvent,
) (kgo.Record, error) {
	const op = "createRecord"

	s := p.toSchema(evt)
	b, err := p.encoder.Encode(s)
	if err != nil {
		return kgo.Record{}, opErr(err, p.opPrefix, op)
	}
	return kgo.Record{Key: []byte(s.SessionID), Value: b}, nil
}

func (ClientEventsProducer) toSchema(
	evt domain.ClientEvent,
) (s schema.ClientEventV1) {
	s.SessionID = evt.SessionID
	s.EventType = evt.Type
	s.ProductID = evt.ProductID
	s.ProductName = evt.ProductName
	s.Category = evt.Category
	s.Price, _ = evt.Price.Float64()
	s.Quantity = evt.Quantity
	s.OccurredAt = evt.OccurredAt.UnixMilli()
	return s
}
