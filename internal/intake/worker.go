package intake

import (
	"context"
	"errors"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

const receiveBatchSize = 10

// SQSClient is the subset of the SQS API the worker uses.
type SQSClient interface {
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

// Worker long-polls an SQS queue for storage notifications and runs each
// referenced object through the processor sequentially. Messages are
// deleted on success (and on skip); failed messages are left on the
// queue for redelivery after the visibility timeout, which is the
// queue-side analogue of a partial batch response. The consolidated
// table tolerates redelivery for replace and timestamp kinds only; the
// additive kind double-counts on redelivery.
type Worker struct {
	client    SQSClient
	queueURL  string
	processor Processor
	logger    *slog.Logger

	// WaitTimeSeconds is the long-poll duration, at most 20.
	WaitTimeSeconds int32
	// FreeOSMemory returns heap pages to the OS after each message,
	// keeping the resident set close to one merge's working set.
	FreeOSMemory bool
}

// NewWorker creates a worker bound to one queue.
func NewWorker(client SQSClient, queueURL string, processor Processor, logger *slog.Logger) *Worker {
	return &Worker{
		client:          client,
		queueURL:        queueURL,
		processor:       processor,
		logger:          logger,
		WaitTimeSeconds: 20,
	}
}

// Run polls until the context is canceled.
func (w *Worker) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		out, err := w.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            aws.String(w.queueURL),
			MaxNumberOfMessages: receiveBatchSize,
			WaitTimeSeconds:     w.WaitTimeSeconds,
		})
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return nil
			}
			w.logger.Error("receive messages", "error", err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(5 * time.Second):
			}
			continue
		}
		w.logger.Debug("incoming batch", "messages", len(out.Messages))
		for _, msg := range out.Messages {
			w.handle(ctx, msg)
			if w.FreeOSMemory {
				debug.FreeOSMemory()
			}
		}
	}
}

func (w *Worker) handle(ctx context.Context, msg types.Message) {
	log := w.logger.With("message_id", aws.ToString(msg.MessageId))

	refs, err := ParseNotification([]byte(aws.ToString(msg.Body)))
	if err != nil {
		// Left on the queue: the dead-letter policy decides when to
		// give up on malformed notifications.
		log.Error("cannot parse notification", "error", err)
		return
	}
	if len(refs) == 0 {
		log.Warn("no storage records in notification")
		w.delete(ctx, msg, log)
		return
	}

	// Notifications carry one record per message in practice; process
	// the first, as the original pipeline does.
	ref := refs[0]
	out, err := w.processor.Process(ctx, ref)
	if err != nil {
		log.Error("processing failed", "object", ref.URI(), "error", err)
		return
	}
	if out.Skipped {
		log.Info("no table to update for object", "object", ref.URI())
	} else {
		log.Info("object consolidated", "object", ref.URI(), "rows", out.Rows)
	}
	w.delete(ctx, msg, log)
}

func (w *Worker) delete(ctx context.Context, msg types.Message, log *slog.Logger) {
	_, err := w.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(w.queueURL),
		ReceiptHandle: msg.ReceiptHandle,
	})
	if err != nil {
		log.Error("delete message", "error", err)
	}
}
