// Package jobs moves all outbound email off the request path. Handlers
// enqueue a task; the worker process renders any PDF and talks to SMTP.
package jobs

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	TypeMagicLinkEmail   = "email:magic_link"
	TypeScheduleEmail    = "email:schedule"
	TypeOutstandingEmail = "email:outstanding"
)

type MagicLinkPayload struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Link  string `json:"link"`
}

type ScheduleEmailPayload struct {
	ParticipantID int `json:"participant_id"`
}

type OutstandingEmailPayload struct {
	ParticipantID int `json:"participant_id"`
	Limit         int `json:"limit"`
}

// Enqueuer is what the HTTP layer depends on; *Client implements it.
type Enqueuer interface {
	EnqueueMagicLink(p MagicLinkPayload) error
	EnqueueScheduleEmail(p ScheduleEmailPayload) error
	EnqueueOutstandingEmail(p OutstandingEmailPayload) error
}

type Client struct {
	inner *asynq.Client
}

var _ Enqueuer = (*Client)(nil)

func NewClient(redisAddress, redisUsername, redisPassword string) *Client {
	return &Client{inner: asynq.NewClient(asynq.RedisClientOpt{
		Addr:     redisAddress,
		Username: redisUsername,
		Password: redisPassword,
	})}
}

func (c *Client) Close() error { return c.inner.Close() }

func (c *Client) enqueue(taskType string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", taskType, err)
	}
	if _, err := c.inner.Enqueue(asynq.NewTask(taskType, raw), asynq.MaxRetry(5)); err != nil {
		return fmt.Errorf("enqueue %s: %w", taskType, err)
	}
	return nil
}

func (c *Client) EnqueueMagicLink(p MagicLinkPayload) error {
	return c.enqueue(TypeMagicLinkEmail, p)
}

func (c *Client) EnqueueScheduleEmail(p ScheduleEmailPayload) error {
	return c.enqueue(TypeScheduleEmail, p)
}

func (c *Client) EnqueueOutstandingEmail(p OutstandingEmailPayload) error {
	return c.enqueue(TypeOutstandingEmail, p)
}
