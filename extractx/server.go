package extractx

import (
	"encoding/json"
	"strings"

	"github.com/Abraxas-365/imagetext/auth"
	"github.com/Abraxas-365/imagetext/docx"
	"github.com/aws/aws-lambda-go/events"
	"github.com/gofiber/fiber/v2"
)

// MaxBodySize bounds dev server uploads
const MaxBodySize = 20 * 1024 * 1024

// NewApp serves the handler over HTTP for local development. When tokens is
// non-nil POST /extract requires a bearer token.
func NewApp(h *Handler, tokens *auth.TokenService) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "imagetext",
		BodyLimit:             MaxBodySize,
		DisableStartupMessage: true,
	})

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "provider": h.pipeline.Provider()})
	})

	handlers := []fiber.Handler{}
	if tokens != nil {
		handlers = append(handlers, auth.RequireBearer(tokens))
	}
	handlers = append(handlers, extractRoute(h))
	app.Post("/extract", handlers...)

	apiDoc(tokens != nil).RegisterWithFiber(app, "/docs")

	return app
}

func apiDoc(secured bool) *docx.RouterDoc {
	extract := docx.NewEndpoint("/extract", docx.POST).
		WithSummary("Extract text from a base64 image").
		WithDescription("Body is the base64 image, optionally as a data URL, or a JSON object {\"body\": \"...\"}. "+
			"Every failure is answered with 500 and a message naming the failed step.").
		WithHeader(fiber.HeaderContentType, fiber.MIMETextPlain, "text/plain for a raw payload, application/json for an envelope", false).
		WithRequestExample("iVBORw0KGgo...").
		WithResponseExample("COME ON\nLET'S PARTY\n")
	if secured {
		extract.WithAuth(docx.Bearer)
	}

	return docx.NewRouterDoc("").
		AddEndpoint(extract).
		AddEndpoint(docx.NewEndpoint("/healthz", docx.GET).
			WithSummary("Liveness check").
			WithResponseExample(`{"status":"ok","provider":"textract"}`))
}

// extractRoute accepts the raw base64 body or a JSON {"body": "..."} envelope
func extractRoute(h *Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := events.APIGatewayProxyRequest{Body: string(c.Body())}

		if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
			var envelope struct {
				Body            string `json:"body"`
				IsBase64Encoded bool   `json:"isBase64Encoded"`
			}
			if err := json.Unmarshal(c.Body(), &envelope); err != nil {
				return c.Status(fiber.StatusBadRequest).SendString("invalid JSON body: " + err.Error())
			}
			req.Body = envelope.Body
			req.IsBase64Encoded = envelope.IsBase64Encoded
		}

		resp, err := h.Handle(c.UserContext(), req)
		if err != nil {
			return err
		}
		for k, v := range resp.Headers {
			c.Set(k, v)
		}
		return c.Status(resp.StatusCode).SendString(resp.Body)
	}
}
