package main

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/Abraxas-365/imagetext/asyncx"
	"github.com/Abraxas-365/imagetext/errx"
	"github.com/Abraxas-365/imagetext/extractx"
	"github.com/aws/aws-lambda-go/events"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type extraction struct {
	source string
	resp   events.APIGatewayProxyResponse
}

func newExtractCmd() *cobra.Command {
	var (
		imageURL    string
		concurrency int
		timeout     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "extract [files...]",
		Short: "Run the pipeline on local images or an image URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			sources := append([]string(nil), args...)
			if imageURL != "" {
				sources = append(sources, imageURL)
			}
			if len(sources) == 0 {
				return fmt.Errorf("no images given, pass files or --url")
			}

			settings, err := extractx.LoadSettings()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			pipeline, err := extractx.Build(ctx, settings)
			if err != nil {
				return err
			}
			handler := extractx.NewHandler(pipeline)

			results, err := runExtractions(ctx, handler.Handle, sources, concurrency)
			if err != nil {
				return err
			}

			return printExtractions(cmd.OutOrStdout(), results)
		},
	}

	cmd.Flags().StringVar(&imageURL, "url", "", "download the image from this URL")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "images processed at once")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall deadline")
	return cmd
}

type handleFunc func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// runExtractions handles every source. A source that cannot be read is
// reported in its own result and does not stop the others.
func runExtractions(ctx context.Context, handle handleFunc, sources []string, concurrency int) ([]extraction, error) {
	return asyncx.AsyncAll(ctx, sources, concurrency, func(ctx context.Context, source string) (extraction, error) {
		image, err := readImage(ctx, source)
		if err != nil {
			return extraction{source: source, resp: failedResponse(err)}, nil
		}
		resp, err := handle(ctx, events.APIGatewayProxyRequest{
			Body: base64.StdEncoding.EncodeToString(image),
		})
		return extraction{source: source, resp: resp}, err
	})
}

func failedResponse(err error) events.APIGatewayProxyResponse {
	body := err.Error()
	var xerr *errx.Error
	if errors.As(err, &xerr) {
		body = xerr.Describe()
	}
	return events.APIGatewayProxyResponse{StatusCode: errx.StatusCode(err), Body: body}
}

func readImage(ctx context.Context, source string) ([]byte, error) {
	if !isURL(source) {
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, errx.Wrap(err, "failed to read "+source, errx.TypeSystem)
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, errx.Wrap(err, "invalid image URL", errx.TypeValidation)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, errx.Wrap(err, "failed to download "+source, errx.TypeExternal)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errx.New(fmt.Sprintf("downloading %s returned %s", source, resp.Status), errx.TypeExternal)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, extractx.MaxBodySize))
	if err != nil {
		return nil, errx.Wrap(err, "failed to download "+source, errx.TypeExternal)
	}
	return data, nil
}

func isURL(s string) bool {
	return len(s) > 8 && (s[:7] == "http://" || s[:8] == "https://")
}

// printExtractions writes each result under a header. It fails when any
// image failed so the exit status reflects it.
func printExtractions(w io.Writer, results []extraction) error {
	header := color.New(color.FgCyan, color.Bold)
	failed := color.New(color.FgRed)

	var failures int
	for _, r := range results {
		header.Fprintf(w, "== %s (%d)\n", r.source, r.resp.StatusCode)
		if r.resp.StatusCode != http.StatusOK {
			failures++
			failed.Fprintln(w, r.resp.Body)
			continue
		}
		fmt.Fprint(w, r.resp.Body)
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d images failed", failures, len(results))
	}
	return nil
}
