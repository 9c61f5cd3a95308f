package eventx

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

// SQSAPI is the subset of the SQS client used by SQSPublisher
type SQSAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSPublisher sends events as JSON envelopes to one queue
type SQSPublisher struct {
	client   SQSAPI
	queueURL string
}

// NewSQSPublisher creates a publisher for queueURL
func NewSQSPublisher(client SQSAPI, queueURL string) *SQSPublisher {
	return &SQSPublisher{client: client, queueURL: queueURL}
}

// QueueURL returns the target queue
func (p *SQSPublisher) QueueURL() string {
	return p.queueURL
}

// Publish implements Publisher. The event type is copied into the
// "event_type" message attribute for subscription filters.
func (p *SQSPublisher) Publish(ctx context.Context, event Event) error {
	body, err := ToJSON(event)
	if err != nil {
		return err
	}

	_, err = p.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"event_type": {
				DataType:    aws.String("String"),
				StringValue: aws.String(event.Type()),
			},
		},
	})
	if err != nil {
		return ErrorRegistry.NewWithCause(ErrPublishFailed, err).
			WithDetail("queue_url", p.queueURL).
			WithDetail("event_id", event.ID())
	}
	return nil
}
