package docx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestGenerateCurl(t *testing.T) {
	e := NewEndpoint("/extract", POST).
		WithAuth(Bearer).
		WithHeader("Content-Type", "text/plain", "", true).
		WithRequestExample("aGVsbG8=")

	got := GenerateCurl("http://localhost:8080/", e)
	want := `curl -X POST "http://localhost:8080/extract" -H "Content-Type: text/plain" -H "Authorization: Bearer <TOKEN>" --data "aGVsbG8="`
	if got != want {
		t.Fatalf("GenerateCurl() =\n%s\nwant\n%s", got, want)
	}
}

func TestGenerateCurlPlaceholderHeader(t *testing.T) {
	e := NewEndpoint("/healthz", GET).WithHeader("X-Trace", "", "", false)
	if got := GenerateCurl("http://h", e); got != `curl -X GET "http://h/healthz" -H "X-Trace: <VALUE>"` {
		t.Fatalf("GenerateCurl() = %s", got)
	}
}

func TestRegisterWithFiber(t *testing.T) {
	doc := NewRouterDoc("").
		AddEndpoint(NewEndpoint("/healthz", GET).WithSummary("Liveness"))

	app := fiber.New()
	doc.RegisterWithFiber(app, "/docs")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "http://example.com/docs", nil))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var body struct {
		Endpoints []Endpoint `json:"endpoints"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if len(body.Endpoints) != 1 || body.Endpoints[0].Curl != `curl -X GET "http://example.com/healthz"` {
		t.Fatalf("unexpected docs: %+v", body.Endpoints)
	}
	if doc.Endpoints[0].Curl != "" {
		t.Fatalf("registered endpoints must not be mutated")
	}
}
