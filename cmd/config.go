package cmd

import (
	"fmt"
	"net/url"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is prepended to every variable. Nested groups add their own
// segment: LOGISTICS_LOG_LEVEL, LOGISTICS_HTTP_PORT, LOGISTICS_DB_DSN.
const EnvPrefix = "LOGISTICS"

type Config struct {
	AppConfig
	HTTP   HTTPConfig
	DB     DBConfig
	Redis  RedisConfig
	Notify NotifyConfig
	Jobs   JobsConfig
}

// LoadConfig reads the environment. Callers load .env beforehand if they want one.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type AppConfig struct {
	ServiceName string `envconfig:"SERVICE_NAME" default:"logistics"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat   string `envconfig:"LOG_FORMAT" default:"json"`
}

type HTTPConfig struct {
	Port            string        `envconfig:"PORT" default:"8080"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"15s"`
}

type DBConfig struct {
	Driver string `envconfig:"DRIVER" default:"postgres"`
	DSN    string `envconfig:"DSN"`

	Host     string `envconfig:"HOST" default:"localhost"`
	Port     int    `envconfig:"PORT" default:"5432"`
	User     string `envconfig:"USERNAME"`
	Password string `envconfig:"PASSWORD"`
	Name     string `envconfig:"NAME"`
	SSLMode  string `envconfig:"SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CONN_MAX_LIFETIME" default:"1h"`
	AutoMigrate     bool          `envconfig:"AUTO_MIGRATE" default:"true"`
	LogQueries      bool          `envconfig:"LOG_QUERIES" default:"false"`
}

// ensureDSN builds a postgres URL from the discrete settings when DSN is empty.
func (c *DBConfig) ensureDSN() error {
	if c.DSN != "" {
		return nil
	}
	if c.Driver != "" && c.Driver != "postgres" {
		return fmt.Errorf("LOGISTICS_DB_DSN is required for driver %q", c.Driver)
	}
	if c.User == "" || c.Name == "" {
		return fmt.Errorf("either LOGISTICS_DB_DSN or LOGISTICS_DB_USERNAME and LOGISTICS_DB_NAME are required")
	}

	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   c.Name,
	}
	q := u.Query()
	q.Set("sslmode", c.SSLMode)
	u.RawQuery = q.Encode()
	c.DSN = u.String()
	return nil
}

type RedisConfig struct {
	// Empty URL and Address disable the redis notification sink.
	URL          string        `envconfig:"URL"`
	Address      string        `envconfig:"ADDRESS"`
	Password     string        `envconfig:"PASSWORD"`
	DB           int           `envconfig:"DB" default:"0"`
	PoolSize     int           `envconfig:"POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `envconfig:"DIAL_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"3s"`
}

func (c RedisConfig) Enabled() bool {
	return c.URL != "" || c.Address != ""
}

type NotifyConfig struct {
	QueueSize   int           `envconfig:"QUEUE_SIZE" default:"256"`
	SinkTimeout time.Duration `envconfig:"SINK_TIMEOUT" default:"5s"`
}

// JobsConfig schedules use the six-field cron format with seconds.
// An empty schedule disables the job.
type JobsConfig struct {
	RedispatchSchedule   string        `envconfig:"REDISPATCH_SCHEDULE"`
	RedispatchBatch      int           `envconfig:"REDISPATCH_BATCH" default:"50"`
	RedispatchBackoff    time.Duration `envconfig:"REDISPATCH_BACKOFF" default:"1m"`
	RedispatchMaxBackoff time.Duration `envconfig:"REDISPATCH_MAX_BACKOFF" default:"30m"`
	ReconcileSchedule    string        `envconfig:"RECONCILE_SCHEDULE"`
}
