package logx

import (
	"context"

	"github.com/aws/aws-lambda-go/lambdacontext"
)

// FromContext returns the default logger prefixed with the Lambda request id
// carried by ctx. Outside of Lambda it returns the default logger unchanged.
func FromContext(ctx context.Context) *Logger {
	if ctx == nil {
		return defaultLogger
	}
	lc, ok := lambdacontext.FromContext(ctx)
	if !ok || lc.AwsRequestID == "" {
		return defaultLogger
	}
	return defaultLogger.WithPrefix(lc.AwsRequestID)
}
