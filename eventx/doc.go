// Package eventx publishes domain events to pluggable backends.
//
// Two publishers are provided: SQSPublisher sends each event as a JSON
// message to an SQS queue and MemoryBus delivers events to in-process
// handlers.
//
//	event := eventx.NewEvent("image.text_extracted", payload, eventx.WithSource("imagetext"))
//	if err := publisher.Publish(ctx, event); err != nil {
//		logx.Warn("publish failed: %v", err)
//	}
package eventx
