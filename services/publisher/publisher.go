package publisher

// Publisher represents a service for publishing accepted records to
// downstream consumers. Publishing is best effort: a failure is logged and
// never blocks the sink.
type Publisher interface {
	// Publish publishes a message under a key to a stream
	Publish(key string, message []byte) error

	// TrimStreams trims all streams to the configured maximum length
	TrimStreams() error

	// Close closes the publisher connection
	Close() error
}
