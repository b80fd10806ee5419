package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"traffic-fines-backend/internal/logger"
)

var ErrMailQueueFull = errors.New("mail queue is full")

type mailJob struct {
	id      string
	msg     MailMessage
	retries int
}

// MailQueue sends mail from a fixed pool of workers. Failed sends are retried
// with quadratic backoff up to maxRetries times.
type MailQueue struct {
	sender      MailSender
	jobs        chan mailJob
	workers     int
	maxRetries  int
	backoffUnit time.Duration
	wg          sync.WaitGroup
}

func NewMailQueue(sender MailSender, workers, queueSize, maxRetries int) *MailQueue {
	return &MailQueue{
		sender:      sender,
		jobs:        make(chan mailJob, queueSize),
		workers:     workers,
		maxRetries:  maxRetries,
		backoffUnit: time.Second,
	}
}

// Start launches the workers; they stop when ctx is cancelled.
func (q *MailQueue) Start(ctx context.Context) {
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker(ctx, i)
	}
}

// Wait blocks until every worker has stopped.
func (q *MailQueue) Wait() {
	q.wg.Wait()
}

func (q *MailQueue) worker(ctx context.Context, id int) {
	defer q.wg.Done()
	logger.Debug("Mail worker started", "worker", id)
	for {
		select {
		case <-ctx.Done():
			logger.Debug("Mail worker stopping", "worker", id)
			return
		case job := <-q.jobs:
			q.process(ctx, job)
		}
	}
}

func (q *MailQueue) process(ctx context.Context, job mailJob) {
	err := q.sender.Send(ctx, job.msg)
	if err == nil {
		logger.Info("Mail sent", "job", job.id, "to", job.msg.To)
		return
	}

	if job.retries >= q.maxRetries {
		logger.Error("Mail dropped after retries", "job", job.id, "to", job.msg.To, "retries", job.retries, "error", err)
		return
	}

	job.retries++
	backoff := time.Duration(job.retries*job.retries) * q.backoffUnit
	logger.Warn("Mail send failed, retrying", "job", job.id, "attempt", job.retries, "backoff", backoff, "error", err)
	time.AfterFunc(backoff, func() {
		if err := q.push(job); err != nil {
			logger.Error("Mail retry dropped", "job", job.id, "error", err)
		}
	})
}

// Enqueue schedules msg for delivery without blocking.
func (q *MailQueue) Enqueue(msg MailMessage) error {
	return q.push(mailJob{id: uuid.NewString(), msg: msg})
}

func (q *MailQueue) push(job mailJob) error {
	select {
	case q.jobs <- job:
		return nil
	default:
		return ErrMailQueueFull
	}
}
