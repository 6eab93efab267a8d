package config

type HTTP struct {
	Port    uint32 `env:"HTTP_PORT" envDefault:"8000"`
	Swagger bool   `env:"HTTP_SWAGGER" envDefault:"true"`

	// ExposeErrors puts the underlying error text in 500 responses.
	ExposeErrors bool     `env:"HTTP_EXPOSE_ERRORS" envDefault:"true"`
	CorsOrigins  []string `env:"HTTP_CORS_ORIGINS" envDefault:"*" envSeparator:","`
}
