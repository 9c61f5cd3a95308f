package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/fatih/color"
)

func TestReadImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "img.png")
	if err := os.WriteFile(path, []byte("local"), 0o600); err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("remote"))
	}))
	defer srv.Close()

	ctx := context.Background()
	if got, err := readImage(ctx, path); err != nil || string(got) != "local" {
		t.Fatalf("readImage(file) = %q, %v", got, err)
	}
	if got, err := readImage(ctx, srv.URL+"/img.png"); err != nil || string(got) != "remote" {
		t.Fatalf("readImage(url) = %q, %v", got, err)
	}
	if _, err := readImage(ctx, srv.URL+"/missing"); err == nil {
		t.Fatalf("expected error for 404")
	}
	if _, err := readImage(ctx, filepath.Join(dir, "nope.png")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestPrintExtractions(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	err := printExtractions(&buf, []extraction{
		{source: "a.png", resp: events.APIGatewayProxyResponse{StatusCode: 200, Body: "LET'S PARTY\n"}},
		{source: "b.png", resp: events.APIGatewayProxyResponse{StatusCode: 500, Body: "Error processing image with OCR: boom"}},
	})

	if err == nil || !strings.Contains(err.Error(), "1 of 2") {
		t.Fatalf("expected failure count, got %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "== a.png (200)\nLET'S PARTY\n") || !strings.Contains(out, "Error processing image with OCR: boom") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestRootHasSubcommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"extract", "serve", "token"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Fatalf("missing subcommand %s", name)
		}
	}
}

func TestRunExtractionsKeepsGoingPastUnreadableSource(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.png")
	if err := os.WriteFile(good, []byte("image"), 0o600); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(dir, "missing.png")

	handle := func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return events.APIGatewayProxyResponse{StatusCode: http.StatusOK, Body: "LET'S PARTY\n"}, nil
	}

	results, err := runExtractions(context.Background(), handle, []string{missing, good}, 2)
	if err != nil {
		t.Fatalf("runExtractions() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %+v", results)
	}
	if results[0].source != missing || results[0].resp.StatusCode != http.StatusInternalServerError ||
		!strings.HasPrefix(results[0].resp.Body, "failed to read "+missing) {
		t.Fatalf("unexpected failure result: %+v", results[0])
	}
	if results[1].resp.StatusCode != http.StatusOK || results[1].resp.Body != "LET'S PARTY\n" {
		t.Fatalf("unexpected success result: %+v", results[1])
	}
}
