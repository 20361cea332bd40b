package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

type Environment string

const (
	EnvLocal      Environment = "local"
	EnvDev        Environment = "dev"
	EnvStage      Environment = "stage"
	EnvProduction Environment = "production"
)

type ConfigBasicClient struct {
	Username string
	Password string
}

type Config struct {
	App struct {
		Version  string      `env:"APP_VERSION" envDefault:"local"`
		Env      Environment `env:"APP_ENV" envDefault:"local"`
		Timezone string      `env:"APP_TIMEZONE" envDefault:"Asia/Kathmandu"`
	}

	HTTP struct {
		Port string `env:"HTTP_SERVER_PORT" envDefault:"8080"`
		Host string `env:"HTTP_SERVER_HOST" envDefault:"localhost"`
	}

	Postgres struct {
		DSN string `env:"POSTGRES_DSN" envDefault:"host=localhost user=swasthya password=swasthya dbname=swasthya port=5432 sslmode=disable"`
	}

	Auth struct {
		BasicClientsString string `env:"AUTH_BASIC_CLIENTS" envDefault:"slots_service:slots_service"`
		BasicClients       []ConfigBasicClient
	}

	RabbitMQ struct {
		Enabled  bool   `env:"RABBITMQ_ENABLED"`
		AmqpURI  string `env:"RABBITMQ_URL"`
		Exchange string `env:"RABBITMQ_EXCHANGE" envDefault:"swasthya.events"`

		AppointmentQueueName string `env:"RABBITMQ_APPOINTMENT_QUEUE" envDefault:"slots-svc.appointment"`
		AppointmentQueueBind string `env:"RABBITMQ_APPOINTMENT_BIND" envDefault:"swasthya.slots-svc.appointment.#"`
		ScheduleQueueName    string `env:"RABBITMQ_SCHEDULE_QUEUE" envDefault:"slots-svc.doctorschedule"`
		ScheduleQueueBind    string `env:"RABBITMQ_SCHEDULE_BIND" envDefault:"swasthya.slots-svc.doctorschedule.#"`
		LeaveQueueName       string `env:"RABBITMQ_LEAVE_QUEUE" envDefault:"slots-svc.doctorleave"`
		LeaveQueueBind       string `env:"RABBITMQ_LEAVE_BIND" envDefault:"swasthya.slots-svc.doctorleave.#"`
	}

	Cache struct {
		Enabled   bool   `env:"CACHE_ENABLED"`
		Size      int    `env:"CACHE_SIZE" envDefault:"1000"`
		SweepSpec string `env:"CACHE_SWEEP_CRON" envDefault:"30 0 * * *"`
	}
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.App.Env = Environment(strings.ToLower(string(cfg.App.Env)))

	if cfg.Auth.BasicClients == nil {
		cfg.Auth.BasicClients = []ConfigBasicClient{}
	}
	clientPairs := strings.Split(cfg.Auth.BasicClientsString, ",")
	for _, pair := range clientPairs {
		parts := strings.Split(pair, ":")
		if len(parts) == 2 {
			cfg.Auth.BasicClients = append(cfg.Auth.BasicClients, ConfigBasicClient{
				Username: parts[0],
				Password: parts[1],
			})
		}
	}

	// Without invalidation events the cache would go stale on every booking.
	if !cfg.RabbitMQ.Enabled {
		cfg.Cache.Enabled = false
	}

	return cfg, nil
}

func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) IsLocal() bool {
	return c.App.Env == EnvLocal
}

func (c *Config) IsNotLocal() bool {
	return c.App.Env == EnvDev || c.App.Env == EnvStage || c.App.Env == EnvProduction
}
