package scheduler

import (
	"context"
	"crypto/tls"
	"fmt"

	"offerte-engine-backend/internal/events"
	"offerte-engine-backend/platform/config"
	"offerte-engine-backend/platform/logger"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

type Client struct {
	client *asynq.Client
	queue  string
}

func NewClient(cfg config.SchedulerConfig) (*Client, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	return &Client{
		client: asynq.NewClient(opt),
		queue:  queue,
	}, nil
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

func (c *Client) EnqueueQuoteSendEmail(ctx context.Context, payload QuoteSendEmailPayload) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewQuoteSendEmailTask(payload)
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task, asynq.Queue(c.queue))
	return err
}

func (c *Client) EnqueueQuoteAcceptedEmail(ctx context.Context, payload QuoteAcceptedEmailPayload) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewQuoteAcceptedEmailTask(payload)
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task, asynq.Queue(c.queue))
	return err
}

func (c *Client) EnqueueQuoteArchive(ctx context.Context, payload QuoteArchivePayload) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewQuoteArchiveTask(payload)
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task, asynq.Queue(c.queue))
	return err
}

// SubscribeQuoteEvents bridges the in-process quote events onto the task
// queue so mail and archiving happen in the worker process.
func (c *Client) SubscribeQuoteEvents(bus events.Bus, log *logger.Logger) {
	if c == nil || bus == nil {
		return
	}

	bus.Subscribe(events.QuoteSent{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		sent, ok := event.(events.QuoteSent)
		if !ok {
			return nil
		}
		err := c.EnqueueQuoteSendEmail(ctx, QuoteSendEmailPayload{
			QuoteID:        sent.QuoteID.String(),
			OrganizationID: sent.OrganizationID.String(),
		})
		if err != nil {
			log.Warn("enqueue quote send email failed", "quoteId", sent.QuoteID, "error", err)
		}
		return err
	}))

	bus.Subscribe(events.QuoteAccepted{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		accepted, ok := event.(events.QuoteAccepted)
		if !ok {
			return nil
		}
		payloadID := accepted.QuoteID.String()
		orgID := accepted.OrganizationID.String()
		if err := c.EnqueueQuoteAcceptedEmail(ctx, QuoteAcceptedEmailPayload{QuoteID: payloadID, OrganizationID: orgID}); err != nil {
			log.Warn("enqueue quote accepted email failed", "quoteId", accepted.QuoteID, "error", err)
			return err
		}
		if err := c.EnqueueQuoteArchive(ctx, QuoteArchivePayload{QuoteID: payloadID, OrganizationID: orgID}); err != nil {
			log.Warn("enqueue quote archive failed", "quoteId", accepted.QuoteID, "error", err)
			return err
		}
		return nil
	}))
}

func redisClientOpt(redisURL string, tlsInsecure bool) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	var tlsConfig *tls.Config
	if opt.TLSConfig != nil {
		clone := opt.TLSConfig.Clone()
		if tlsInsecure {
			clone.InsecureSkipVerify = true
		}
		tlsConfig = clone
	} else if tlsInsecure {
		tlsConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: tlsConfig,
	}, nil
}
