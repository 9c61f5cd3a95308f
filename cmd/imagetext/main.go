package main

import (
	"os"

	"github.com/Abraxas-365/imagetext/errx"
	"github.com/Abraxas-365/imagetext/logx"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "imagetext",
		Short:         "Extract text from images with the imagetext pipeline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newExtractCmd(), newServeCmd(), newTokenCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logx.Error("%s", errx.Print(err))
		os.Exit(1)
	}
}
