package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"sentra/internal/config"
)

// Consumer streams transaction records from Kafka into the ingest
// service. One message is one transaction object in the same shape the
// JSON upload accepts.
type Consumer struct {
	reader  *kafka.Reader
	service *Service
	logger  *zap.Logger
	wg      sync.WaitGroup
	cancel  context.CancelFunc
}

// NewConsumer creates a consumer. Returns nil when no brokers are
// configured; the caller just skips starting it.
func NewConsumer(cfg config.KafkaConfig, service *Service, logger *zap.Logger) *Consumer {
	if len(cfg.Brokers) == 0 {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.Topic,
		GroupID:     cfg.ConsumerGroup,
		MinBytes:    10e3,
		MaxBytes:    10e6,
		MaxWait:     500 * time.Millisecond,
		StartOffset: kafka.FirstOffset,
	})
	return &Consumer{
		reader:  reader,
		service: service,
		logger:  logger,
	}
}

// Start begins consuming in the background.
func (c *Consumer) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	c.wg.Add(1)
	go c.consumeLoop(ctx)

	c.logger.Info("kafka consumer started",
		zap.String("topic", c.reader.Config().Topic),
		zap.String("group", c.reader.Config().GroupID))
}

// Stop drains the loop and closes the reader.
func (c *Consumer) Stop() error {
	if c.cancel != nil {
		c.cancel()
	}
	c.wg.Wait()
	return c.reader.Close()
}

func (c *Consumer) consumeLoop(ctx context.Context) {
	defer c.wg.Done()

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				c.logger.Info("kafka consumer stopping")
				return
			}
			c.logger.Error("failed to fetch message", zap.Error(err))
			continue
		}
		c.processMessage(ctx, msg)
	}
}

// processMessage ingests one record. Malformed payloads are committed
// and dropped so they cannot poison the partition; ingest failures are
// left uncommitted for redelivery.
func (c *Consumer) processMessage(ctx context.Context, msg kafka.Message) {
	log := c.logger.With(
		zap.String("topic", msg.Topic),
		zap.Int("partition", msg.Partition),
		zap.Int64("offset", msg.Offset),
	)

	var raw map[string]interface{}
	if err := json.Unmarshal(msg.Value, &raw); err != nil {
		log.Warn("dropping malformed message", zap.Error(err))
		c.commit(ctx, msg, log)
		return
	}

	summary, err := c.service.IngestRecords(ctx, []Record{FromMap(raw)}, "kafka")
	if err != nil {
		log.Error("failed to ingest message", zap.Error(err))
		return
	}
	if len(summary.Errors) > 0 {
		log.Warn("message rejected", zap.Strings("errors", summary.Errors))
	}
	c.commit(ctx, msg, log)
}

func (c *Consumer) commit(ctx context.Context, msg kafka.Message, log *zap.Logger) {
	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		log.Error("failed to commit offset", zap.Error(err))
	}
}
