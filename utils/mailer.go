package utils

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

var (
	sesClient *ses.Client
	sesOnce   sync.Once
)

func sesClientLazy() *ses.Client {
	sesOnce.Do(func() {
		cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(os.Getenv("AWS_REGION")))
		if err != nil {
			log.Printf("AWS config load failed: %v", err)
			return
		}
		sesClient = ses.NewFromConfig(cfg)
	})
	return sesClient
}

// generic SES sender
func sendEmail(to string, subject string, body string) error {
	client := sesClientLazy()
	if client == nil {
		return fmt.Errorf("ses client not available")
	}
	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(subject),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data: aws.String(body),
				},
			},
		},
		Source: aws.String(os.Getenv("SES_EMAIL")),
	}

	_, err := client.SendEmail(context.TODO(), input)
	if err != nil {
		log.Printf("SES send error: %v", err)
		return fmt.Errorf("email send failed: %v", err)
	}
	return nil
}

// SendIntakeAlertEmail notifies a user that a daily intake limit was passed.
func SendIntakeAlertEmail(to string, message string) error {
	subject := "Daily intake alert"
	body := fmt.Sprintf("%s\n\nOpen the app to review today's consumption.", message)
	return sendEmail(to, subject, body)
}
