package events

import (
	"context"
	"fmt"

	"jobsportal/services/jobs/internal/errors"
	"jobsportal/services/jobs/internal/models"
	"jobsportal/services/jobs/internal/processor"

	"github.com/nats-io/nats.go"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const processingQueue = "processing-service"

type jobReply struct {
	Job *models.JobPosting `json:"job,omitempty"`
}

// Handler consumes job management commands. Commands are handled one at a
// time per subscription, in arrival order.
type Handler struct {
	logger       *zap.Logger
	nc           *nats.Conn
	jobProcessor *processor.JobProcessor
	subs         []*nats.Subscription
}

func NewHandler(logger *zap.Logger, nc *nats.Conn, jobProcessor *processor.JobProcessor) *Handler {
	return &Handler{
		logger:       logger,
		nc:           nc,
		jobProcessor: jobProcessor,
	}
}

func (h *Handler) RegisterSubscriptions(lc fx.Lifecycle) error {
	for _, subject := range []string{CreateSubject, UpdateSubject, DeleteSubject} {
		sub, err := h.nc.QueueSubscribe(subject, processingQueue, h.handleCommand)
		if err != nil {
			return fmt.Errorf("subscribe to %s: %w", subject, err)
		}
		h.subs = append(h.subs, sub)
	}

	h.logger.Info("Registered NATS subscriptions", zap.Int("count", len(h.subs)))

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			for _, sub := range h.subs {
				if err := sub.Unsubscribe(); err != nil {
					return err
				}
			}
			return nil
		},
	})

	return nil
}

func (h *Handler) handleCommand(msg *nats.Msg) {
	ctx, span := tracer.Start(context.Background(), "handleCommand")
	defer span.End()

	reply := h.handle(ctx, msg.Subject, msg.Data)
	if msg.Reply == "" {
		return
	}
	if err := msg.Respond(reply); err != nil {
		h.logger.Warn("Failed to send reply",
			zap.String("subject", msg.Subject),
			zap.Error(err))
	}
}

func (h *Handler) handle(ctx context.Context, subject string, data []byte) []byte {
	var (
		job *models.JobPosting
		err error
	)

	switch subject {
	case CreateSubject:
		job, err = h.jobProcessor.CreateJob(ctx, data)
	case UpdateSubject:
		job, err = h.jobProcessor.UpdateJob(ctx, data)
	case DeleteSubject:
		err = h.jobProcessor.DeleteJob(ctx, data)
	default:
		err = errors.InvalidInput(fmt.Sprintf("unsupported subject %q", subject), nil)
	}

	if err != nil {
		h.logger.Error("Failed to process job command",
			zap.Error(err),
			zap.String("subject", subject),
		)
		return errorPayload(err)
	}

	h.logger.Info("Successfully processed job command",
		zap.String("subject", subject),
	)
	return marshalReply(h.logger, jobReply{Job: job})
}
