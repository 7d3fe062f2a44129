package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/dtroode/autocompany-server/internal/logger"
	"github.com/dtroode/autocompany-server/internal/model"
)

const (
	// TaskTypeVerificationMail is the asynq task type carrying a confirmation code.
	TaskTypeVerificationMail = "mail:verification"
	mailQueue                = "mail"
)

var _ model.VerificationNotifier = (*Queue)(nil)

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// VerificationPayload is the body of a verification mail task.
type VerificationPayload struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// QueueConfig holds queue delivery parameters.
type QueueConfig struct {
	RedisURL    string
	MaxRetry    int
	Concurrency int
	CodeTTL     time.Duration
	Timeout     time.Duration
}

// Queue enqueues confirmation mails to Redis and delivers them from asynq workers.
type Queue struct {
	client   enqueuer
	closer   func() error
	server   *asynq.Server
	mux      *asynq.ServeMux
	sender   model.MailSender
	codeTTL  time.Duration
	timeout  time.Duration
	maxRetry int
	logger   *logger.Logger
}

func NewQueue(cfg QueueConfig, sender model.MailSender, logger *logger.Logger) (*Queue, error) {
	opt, err := asynq.ParseRedisURI(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	client := asynq.NewClient(opt)
	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{mailQueue: 1},
	})

	q := newQueue(client, sender, cfg, logger)
	q.closer = client.Close
	q.server = server
	return q, nil
}

func newQueue(client enqueuer, sender model.MailSender, cfg QueueConfig, logger *logger.Logger) *Queue {
	q := &Queue{
		client:   client,
		mux:      asynq.NewServeMux(),
		sender:   sender,
		codeTTL:  cfg.CodeTTL,
		timeout:  cfg.Timeout,
		maxRetry: cfg.MaxRetry,
		logger:   logger,
	}
	q.mux.HandleFunc(TaskTypeVerificationMail, q.HandleVerificationTask)
	return q
}

// SendVerificationCode enqueues the delivery. It fails only if the task cannot be enqueued.
func (q *Queue) SendVerificationCode(ctx context.Context, email, code string) error {
	body, err := json.Marshal(VerificationPayload{Email: email, Code: code})
	if err != nil {
		return fmt.Errorf("failed to marshal task payload: %w", err)
	}

	task := asynq.NewTask(TaskTypeVerificationMail, body,
		asynq.Queue(mailQueue),
		asynq.MaxRetry(q.maxRetry),
		asynq.Timeout(q.timeout),
	)

	info, err := q.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue confirmation mail: %w", err)
	}

	q.logger.Debug("Mail queue: confirmation mail enqueued",
		"email", email,
		"task_id", info.ID)

	return nil
}

// HandleVerificationTask delivers one queued confirmation mail.
func (q *Queue) HandleVerificationTask(ctx context.Context, task *asynq.Task) error {
	var payload VerificationPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to decode task payload: %v: %w", err, asynq.SkipRetry)
	}
	if payload.Email == "" || payload.Code == "" {
		return fmt.Errorf("incomplete task payload: %w", asynq.SkipRetry)
	}

	ctx, cancel := context.WithTimeout(ctx, q.timeout)
	defer cancel()

	if err := q.sender.Send(ctx, VerificationMessage(payload.Email, payload.Code, q.codeTTL)); err != nil {
		q.logger.Error("Mail queue: failed to deliver confirmation code",
			"email", payload.Email,
			"error", err.Error())
		return fmt.Errorf("failed to deliver confirmation code: %w", err)
	}

	q.logger.Info("Mail queue: confirmation code delivered",
		"email", payload.Email)

	return nil
}

// StartWorkers starts the asynq workers. They run until Shutdown.
func (q *Queue) StartWorkers() error {
	if q.server == nil {
		return nil
	}
	if err := q.server.Start(q.mux); err != nil {
		return fmt.Errorf("failed to start mail workers: %w", err)
	}
	return nil
}

// Shutdown stops the workers and closes the client.
func (q *Queue) Shutdown() error {
	if q.server != nil {
		q.server.Shutdown()
	}
	if q.closer != nil {
		return q.closer()
	}
	return nil
}
