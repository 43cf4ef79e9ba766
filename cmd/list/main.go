// Command list runs the List grocery handler on AWS Lambda.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/jacentio/groceries/internal/bootstrap"
)

func main() {
	h, err := bootstrap.NewHandler(context.Background())
	if err != nil {
		slog.Error("failed to initialize handler", "error", err)
		os.Exit(1)
	}
	lambda.Start(h.List)
}
