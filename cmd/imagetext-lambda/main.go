package main

import (
	"context"

	"github.com/Abraxas-365/imagetext/errx"
	"github.com/Abraxas-365/imagetext/extractx"
	"github.com/Abraxas-365/imagetext/logx"
	"github.com/aws/aws-lambda-go/lambda"
)

func main() {
	settings, err := extractx.LoadSettings()
	if err != nil {
		logx.Fatal("invalid configuration: %s", errx.Print(err))
	}

	pipeline, err := extractx.Build(context.Background(), settings)
	if err != nil {
		logx.Fatal("failed to build pipeline: %s", errx.Print(err))
	}

	logx.Info("starting with provider=%s bucket=%s", pipeline.Provider(), settings.Bucket)
	lambda.Start(extractx.NewHandler(pipeline).Handle)
}
