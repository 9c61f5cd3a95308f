// Package logx provides leveled, printf-style logging configured from the
// environment, with output tuned for local terminals and AWS CloudWatch.
//
// Environment Variables:
//   - LOG_LEVEL: minimum level (TRACE, DEBUG, INFO, WARN, ERROR, OFF)
//   - LOG_FORMAT: console, cloudwatch or json
//   - LOG_COLOR: colored level tags on the console (default: true)
//   - LOG_CALLER: include file:line of the caller (default: true)
//
// Basic Usage:
//
//	logx.Info("uploaded %s to %s", key, bucket)
//	logx.Warn("could not remove temporary file %s: %v", path, err)
//
// Inside a Lambda invocation, prefer the request-scoped logger so every line
// carries the AWS request id:
//
//	log := logx.FromContext(ctx)
//	log.Info("extracted %d lines", n)
//
// Format Examples:
//
//	console:    [2025-06-08 18:57:52] [INFO] pipeline.go:64: extracted 3 lines
//	cloudwatch: [2025-06-08T18:57:52.000Z] 8f2c... [INFO] pipeline.go:64: extracted 3 lines
//	json:       {"caller":"pipeline.go:64","level":"INFO","message":"extracted 3 lines","timestamp":"..."}
package logx
