package extractx

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/Abraxas-365/imagetext/errx"
	"github.com/Abraxas-365/imagetext/logx"
	"github.com/aws/aws-lambda-go/events"
)

// Handler adapts a Pipeline to API Gateway proxy events
type Handler struct {
	pipeline *Pipeline
}

// NewHandler creates a handler for pipeline
func NewHandler(pipeline *Pipeline) *Handler {
	return &Handler{pipeline: pipeline}
}

// Handle runs the pipeline on the request body. Failures, panics included,
// become error responses and the returned error is always nil.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (resp events.APIGatewayProxyResponse, err error) {
	log := logx.FromContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			perr := extractErrors.New(ErrPanic).WithDetail("panic", fmt.Sprint(r))
			log.Error("recovered panic: %v", r)
			resp, err = errorResponse(perr), nil
		}
	}()

	payload := req.Body
	if req.IsBase64Encoded {
		raw, derr := base64.StdEncoding.DecodeString(req.Body)
		if derr != nil {
			return errorResponse(extractErrors.NewWithCause(ErrDecode, derr)), nil
		}
		payload = string(raw)
	}

	out, rerr := h.pipeline.Run(ctx, payload)
	if rerr != nil {
		log.Error("%s", errx.Print(rerr))
		return errorResponse(rerr), nil
	}

	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers: map[string]string{
			"Content-Type": "text/plain; charset=utf-8",
			"X-Object-Key": out.Key,
		},
		Body: out.Text,
	}, nil
}

func errorResponse(err error) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: errx.StatusCode(err),
		Headers:    map[string]string{"Content-Type": "text/plain; charset=utf-8"},
		Body:       describe(err),
	}
}
