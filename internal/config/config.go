package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"

	NotifyDirect = "direct"
	NotifyKafka  = "kafka"

	SessionMemory = "memory"
	SessionRedis  = "redis"
)

type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	StoreDriver    string `env:"STORE_DRIVER" envDefault:"postgres"`
	DatabaseURL    string `env:"DATABASE_URL"`
	MigrationsPath string `env:"MIGRATIONS_PATH" envDefault:"file://db/migrations"`

	ShopPasscodes map[string]string `env:"SHOP_PASSCODES"`
	Shops         []string          `env:"SHOPS"`
	Products      []string          `env:"PRODUCTS"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     string `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	MailFrom     string `env:"MAIL_FROM"`
	AuditBCC     string `env:"AUDIT_BCC"`

	NotifyMode    string        `env:"NOTIFY_MODE" envDefault:"direct"`
	NotifyTimeout time.Duration `env:"NOTIFY_TIMEOUT" envDefault:"30s"`
	KafkaServers  string        `env:"KAFKA_BOOTSTRAP_SERVERS"`
	KafkaTopic    string        `env:"KAFKA_TOPIC" envDefault:"warranty_registrations"`
	KafkaGroupID  string        `env:"KAFKA_GROUP_ID" envDefault:"warranty_notification_group"`

	SessionBackend string        `env:"SESSION_BACKEND" envDefault:"memory"`
	RedisURL       string        `env:"REDIS_URL"`
	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"12h"`
}

// Load reads an optional .env file and then the process environment.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			log.Warn("Could not load .env file.")
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.trimLists()
	if len(cfg.Shops) == 0 {
		for shop := range cfg.ShopPasscodes {
			cfg.Shops = append(cfg.Shops, shop)
		}
		slices.Sort(cfg.Shops)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// trimLists drops the padding left by comma-separated values such as "north:1111, south:2222".
func (c *Config) trimLists() {
	if c.ShopPasscodes != nil {
		passcodes := make(map[string]string, len(c.ShopPasscodes))
		for shop, code := range c.ShopPasscodes {
			if shop = strings.TrimSpace(shop); shop != "" {
				passcodes[shop] = strings.TrimSpace(code)
			}
		}
		c.ShopPasscodes = passcodes
	}
	c.Shops = trimAll(c.Shops)
	c.Products = trimAll(c.Products)
}

func trimAll(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (c Config) Validate() error {
	var errs []error
	switch c.StoreDriver {
	case StorePostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is not set"))
		}
	case StoreMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver))
	}
	switch c.NotifyMode {
	case NotifyDirect:
	case NotifyKafka:
		if c.KafkaServers == "" {
			errs = append(errs, errors.New("KAFKA_BOOTSTRAP_SERVERS is not set"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown NOTIFY_MODE %q", c.NotifyMode))
	}
	switch c.SessionBackend {
	case SessionMemory:
	case SessionRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL is not set"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown SESSION_BACKEND %q", c.SessionBackend))
	}
	if len(c.ShopPasscodes) == 0 {
		log.Warn("SHOP_PASSCODES is empty, no shop can log in")
	}
	return errors.Join(errs...)
}

// SMTPConfigured reports whether every setting needed to send mail is present.
func (c Config) SMTPConfigured() bool {
	return c.SMTPHost != "" && c.SMTPPort != "" && c.SMTPUser != "" && c.SMTPPassword != "" && c.MailFrom != ""
}
