package notify

import (
	"context"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
)

// SNSNotifier publishes log confirmations to an SNS topic that the
// phone app subscribes to.
type SNSNotifier struct {
	client   *awssns.Client
	topicARN string
}

func NewSNSNotifier(ctx context.Context, topicARN string) (*SNSNotifier, error) {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "ap-south-1"
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}

	return &SNSNotifier{
		client:   awssns.NewFromConfig(cfg),
		topicARN: topicARN,
	}, nil
}

func (n *SNSNotifier) Notify(ctx context.Context, title, message string) error {
	_, err := n.client.Publish(ctx, &awssns.PublishInput{
		TopicArn: aws.String(n.topicARN),
		Subject:  aws.String(title),
		Message:  aws.String(message),
	})
	return err
}
