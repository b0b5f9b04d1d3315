// Package service implements the purchase order processing pipeline behind
// the A2A endpoints: decode, validate, summarize, and task lifecycle.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	pfotel "github.com/poforge/poforge/internal/adapter/otel"
	"github.com/poforge/poforge/internal/domain/purchaseorder"
	"github.com/poforge/poforge/internal/port/a2a"
	"github.com/poforge/poforge/internal/port/taskstore"
)

// cancelNotice is the system-authored text attached to cancelled tasks.
const cancelNotice = "Purchase order processing task was cancelled by user request"

// Processor handles purchase order submissions and the task lifecycle.
type Processor struct {
	store   taskstore.Store
	metrics *pfotel.Metrics
	now     func() time.Time
}

// NewProcessor creates a Processor backed by the given store. metrics may be
// nil to disable instrument recording.
func NewProcessor(store taskstore.Store, metrics *pfotel.Metrics) *Processor {
	return &Processor{
		store:   store,
		metrics: metrics,
		now:     time.Now,
	}
}

// SendTask decodes a purchase order from the envelope, validates it, and
// stores the outcome as a new task. Validation failures become a stored
// failed task; only decode failure is returned as an error.
func (p *Processor) SendTask(ctx context.Context, msg a2a.Message) (*a2a.Task, error) {
	start := p.now()
	taskID := uuid.NewString()

	ctx, span := pfotel.StartProcessSpan(ctx, taskID)
	defer span.End()

	po, err := extractPurchaseOrder(msg)
	if err != nil {
		if p.metrics != nil {
			p.metrics.DecodeFailures.Add(ctx, 1)
		}
		return nil, err
	}

	errs, warnings := purchaseorder.Validate(po)
	processedAt := p.now().UTC()
	result := buildResult(po, errs, warnings, processedAt)

	dataPart, err := a2a.DataPart(result)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}

	state := a2a.TaskStateCompleted
	if len(errs) > 0 {
		state = a2a.TaskStateFailed
	}

	task := &a2a.Task{
		ID: taskID,
		Status: a2a.TaskStatus{
			State: state,
			Message: &a2a.Message{
				Role:  "assistant",
				Parts: []a2a.Part{a2a.TextPart(result.CSVLine()), dataPart},
			},
			Timestamp: processedAt.Format(time.RFC3339),
		},
	}

	if err := p.store.Put(ctx, task); err != nil {
		return nil, fmt.Errorf("store task: %w", err)
	}

	slog.Info("purchase order processed",
		"task_id", taskID,
		"po_number", po.PONumber,
		"state", state,
		"errors", len(errs),
		"warnings", len(warnings),
	)

	if p.metrics != nil {
		p.metrics.TasksSubmitted.Add(ctx, 1)
		if state == a2a.TaskStateCompleted {
			p.metrics.TasksCompleted.Add(ctx, 1)
		} else {
			p.metrics.TasksFailed.Add(ctx, 1)
		}
		p.metrics.ProcessDuration.Record(ctx, p.now().Sub(start).Seconds())
	}

	return task, nil
}

// GetTask returns a copy of the task with the given ID.
func (p *Processor) GetTask(ctx context.Context, id string) (*a2a.Task, error) {
	return p.store.Get(ctx, id)
}

// CancelTask marks an existing task as failed, attaches a cancellation
// notice, and refreshes the status timestamp. Cancelling an already terminal
// task succeeds and re-stamps it.
func (p *Processor) CancelTask(ctx context.Context, id string) (*a2a.Task, error) {
	ctx, span := pfotel.StartCancelSpan(ctx, id)
	defer span.End()

	task, err := p.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	task.Status.State = a2a.TaskStateFailed
	task.Status.Message = &a2a.Message{
		Role:  "system",
		Parts: []a2a.Part{a2a.TextPart(cancelNotice)},
	}
	task.Status.Timestamp = p.now().UTC().Format(time.RFC3339)

	if err := p.store.Put(ctx, task); err != nil {
		return nil, fmt.Errorf("store cancelled task: %w", err)
	}

	slog.Info("task cancelled", "task_id", id)
	if p.metrics != nil {
		p.metrics.TasksCanceled.Add(ctx, 1)
	}

	return task, nil
}
