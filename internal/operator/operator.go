package operator

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/fintrack-server/internal/operator/actions"
	"github.com/carson-networks/fintrack-server/internal/storage"
)

// Notifier receives the names of the store collections a committed write
// touched. The live hub implements it.
type Notifier interface {
	Notify(ctx context.Context, collections ...string)
}

// Operator is the worker that processes items from the queue.
type Operator struct {
	storage  *storage.Storage
	queue    chan ActionItem
	notifier Notifier
	log      *logrus.Logger
}

func NewOperator(s *storage.Storage, queue chan ActionItem, notifier Notifier, log *logrus.Logger) *Operator {
	return &Operator{
		storage:  s,
		queue:    queue,
		notifier: notifier,
		log:      log,
	}
}

// Run listens to the queue and processes items. Exits when the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		o.processItem(item)
	}
}

func (o *Operator) processItem(item ActionItem) {
	writer, err := o.storage.Write(item.ctx)
	if err != nil {
		item.response <- ActionItemResponse{err: err}
		return
	}

	err = item.action.Perform(item.ctx, writer)
	if err != nil {
		if rollbackErr := writer.Rollback(); rollbackErr != nil {
			o.log.WithError(rollbackErr).Error("Operator.processItem.rollback")
		}
		item.response <- ActionItemResponse{err: err}
		return
	}

	if err = writer.Commit(); err != nil {
		item.response <- ActionItemResponse{err: err}
		return
	}

	if o.notifier != nil {
		o.notifier.Notify(item.ctx, item.action.Collections()...)
	}

	item.response <- ActionItemResponse{}
}

type ActionItem struct {
	ctx      context.Context
	action   actions.IAction
	response chan ActionItemResponse
}

type ActionItemResponse struct {
	err error
}
