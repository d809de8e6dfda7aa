package thurgood

import (
	"context"
	"fmt"
	"time"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"github.com/viant/thurgood/internal/logging"
	"github.com/viant/thurgood/service/api"
	"github.com/viant/thurgood/service/dao"
	"github.com/viant/thurgood/service/messaging"
	"github.com/viant/thurgood/service/provision"
	"github.com/viant/thurgood/tracing"
	"gopkg.in/yaml.v3"
)

// Config is a serialisable representation of the dispatcher configuration. It
// can be populated from JSON or YAML; zero-value sections inherit DefaultConfig.
type Config struct {
	Store     StoreConfig                 `json:"store" yaml:"store"`
	Queue     QueueConfig                 `json:"queue" yaml:"queue"`
	HTTP      HTTPConfig                  `json:"http" yaml:"http"`
	Log       logging.Config              `json:"log" yaml:"log"`
	Tracing   tracing.Config              `json:"tracing" yaml:"tracing"`
	Provision *provision.PapertrailConfig `json:"provision,omitempty" yaml:"provision,omitempty"`
	Syslog    SyslogConfig                `json:"syslog" yaml:"syslog"`
	Events    EventsConfig                `json:"events" yaml:"events"`
}

// EventsConfig enables the in-process lifecycle event queue
type EventsConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
	Buffer  int  `json:"buffer" yaml:"buffer"`
}

// StoreConfig selects entity store vendor
type StoreConfig struct {
	Vendor  dao.Vendor `json:"vendor" yaml:"vendor"`
	BaseURL string     `json:"baseURL" yaml:"baseURL"`
}

// QueueConfig selects work queue vendor. The memory vendor lives inside the process: workers in
// other processes cannot consume it and publishing fails once Buffer messages are pending. It
// serves embedding and tests; a served dispatcher uses the fs vendor (see ServeConfig).
type QueueConfig struct {
	Vendor       messaging.Vendor `json:"vendor" yaml:"vendor"`
	Name         string           `json:"name" yaml:"name"`
	BaseURL      string           `json:"baseURL" yaml:"baseURL"`
	Buffer       int              `json:"buffer" yaml:"buffer"`
	MaxRetries   int              `json:"maxRetries" yaml:"maxRetries"`
	RetryDelayMs int              `json:"retryDelayMs" yaml:"retryDelayMs"`
}

// RetryDelay returns retry delay duration
func (c *QueueConfig) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelayMs) * time.Millisecond
}

// HTTPConfig represents HTTP endpoint settings
type HTTPConfig struct {
	Addr   string `json:"addr" yaml:"addr"`
	Prefix string `json:"prefix" yaml:"prefix"`
}

// SyslogConfig represents job message forwarding
type SyslogConfig struct {
	Forward bool   `json:"forward" yaml:"forward"`
	Network string `json:"network" yaml:"network"`
	// Address overrides the logger endpoint, empty uses the job logger host
	Address string `json:"address" yaml:"address"`
}

// DefaultConfig returns in-memory vendors and local HTTP endpoint, suited to embedding and tests
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{Vendor: dao.VendorMemory},
		Queue: QueueConfig{
			Vendor:       messaging.VendorMemory,
			Name:         "jobs",
			Buffer:       1024,
			MaxRetries:   3,
			RetryDelayMs: 100,
		},
		HTTP:    HTTPConfig{Addr: ":8080", Prefix: api.DefaultPrefix},
		Log:     logging.Config{Level: "info", Encoding: "json"},
		Tracing: tracing.Config{ServiceName: "thurgood"},
		Syslog:  SyslogConfig{Network: "udp"},
		Events:  EventsConfig{Buffer: 1024},
	}
}

// ServeConfig returns DefaultConfig with durable fs store and queue rooted at baseURL
func ServeConfig(baseURL string) *Config {
	ret := DefaultConfig()
	ret.Store = StoreConfig{Vendor: dao.VendorFS, BaseURL: url.Join(baseURL, "store")}
	ret.Queue.Vendor = messaging.VendorFS
	ret.Queue.BaseURL = url.Join(baseURL, "queue")
	return ret
}

// ValidateServe validates settings for a served dispatcher, which needs a queue workers can read
func (c *Config) ValidateServe() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c != nil && c.Queue.Vendor == messaging.VendorMemory {
		return fmt.Errorf("queue.vendor %v is in-process only, use %v to serve workers", messaging.VendorMemory, messaging.VendorFS)
	}
	return nil
}

// Validate returns error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	switch c.Store.Vendor {
	case dao.VendorMemory:
	case dao.VendorFS:
		if c.Store.BaseURL == "" {
			return fmt.Errorf("store.baseURL is required for %v vendor", c.Store.Vendor)
		}
	default:
		return fmt.Errorf("unsupported store.vendor: %q", c.Store.Vendor)
	}
	switch c.Queue.Vendor {
	case messaging.VendorMemory:
	case messaging.VendorFS:
		if c.Queue.BaseURL == "" {
			return fmt.Errorf("queue.baseURL is required for %v vendor", c.Queue.Vendor)
		}
	default:
		return fmt.Errorf("unsupported queue.vendor: %q", c.Queue.Vendor)
	}
	if c.Queue.Name == "" {
		return fmt.Errorf("queue.name is required")
	}
	if c.Queue.Buffer < 0 || c.Queue.MaxRetries < 0 || c.Queue.RetryDelayMs < 0 {
		return fmt.Errorf("queue.buffer, queue.maxRetries and queue.retryDelayMs must be >= 0")
	}
	if p := c.Provision; p != nil && (p.AccountsURL == "" || p.LoggersURL == "") {
		return fmt.Errorf("provision.accountsURL and provision.loggersURL are required")
	}
	return nil
}

// LoadConfig reads YAML (or JSON) configuration from URL over DefaultConfig
func LoadConfig(ctx context.Context, fs afs.Service, URL string) (*Config, error) {
	ret, err := loadConfig(ctx, fs, URL, DefaultConfig())
	if err != nil {
		return nil, err
	}
	if err = ret.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %v: %w", URL, err)
	}
	return ret, nil
}

// LoadServeConfig reads configuration from URL over ServeConfig(baseURL)
func LoadServeConfig(ctx context.Context, fs afs.Service, URL, baseURL string) (*Config, error) {
	ret, err := loadConfig(ctx, fs, URL, ServeConfig(baseURL))
	if err != nil {
		return nil, err
	}
	if err = ret.ValidateServe(); err != nil {
		return nil, fmt.Errorf("invalid config %v: %w", URL, err)
	}
	return ret, nil
}

func loadConfig(ctx context.Context, fs afs.Service, URL string, base *Config) (*Config, error) {
	if fs == nil {
		fs = afs.New()
	}
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %v: %w", URL, err)
	}
	if err = yaml.Unmarshal(data, base); err != nil {
		return nil, fmt.Errorf("failed to decode config %v: %w", URL, err)
	}
	return base, nil
}
