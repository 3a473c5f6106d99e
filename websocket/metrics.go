// Package websocket - websocket/metrics.go
// file: websocket/metrics.go

package websocket

import (
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/cloudwatch"
	"go-con-board/logger"
)

// Namespace for all board metrics
var metricsNamespace = "ConBoard"

// Reuse a single CloudWatch client for all metrics calls
var cwClient = cloudwatch.New(session.Must(session.NewSession()))

// PublishBoardConnections pushes current WebSocket viewer count
func PublishBoardConnections(count int, eventSlug string) {
	putMetric("BoardConnections", float64(count), "Count", eventSlug)
}

// PublishVoteCast counts a vote landing on a board
func PublishVoteCast(eventSlug string) {
	putMetric("VotesCast", 1, "Count", eventSlug)
}

// PublishBroadcastBacklog pushes a gauge for broadcast queue depth
func PublishBroadcastBacklog(depth int, eventSlug string) {
	putMetric("BroadcastQueueDepth", float64(depth), "Count", eventSlug)
}

// -----------------------------------------------------------
// internal helper function to package up CloudWatch calls
// -----------------------------------------------------------
func putMetric(metricName string, value float64, unit string, eventSlug string) {
	_, err := cwClient.PutMetricData(&cloudwatch.PutMetricDataInput{
		Namespace: aws.String(metricsNamespace),
		MetricData: []*cloudwatch.MetricDatum{
			{
				MetricName: aws.String(metricName),
				Dimensions: []*cloudwatch.Dimension{
					{
						Name:  aws.String("Event"),
						Value: aws.String(eventSlug),
					},
				},
				Timestamp: aws.Time(time.Now()),
				Value:     aws.Float64(value),
				Unit:      aws.String(unit),
			},
		},
	})

	if err != nil {
		logger.Error.Printf("[putMetric] CloudWatch metric failed (%s): %v", metricName, err)
	}
}
