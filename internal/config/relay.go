package config

import "time"

// Relay controls how the outbox relay polls for unprocessed messages.
type Relay struct {
	// BatchSize is the most messages locked and produced per poll.
	BatchSize uint32        `env:"RELAY_BATCH_SIZE" envDefault:"100"`
	Interval  time.Duration `env:"RELAY_INTERVAL" envDefault:"1s"`
}
