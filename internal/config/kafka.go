package config

type Kafka struct {
	Addresses []string `env:"KAFKA_ADDRESSES,required" envSeparator:","`

	// Group is the consumer group of the catalog event service.
	Group string `env:"KAFKA_GROUP" envDefault:"catalog-events"`
}
