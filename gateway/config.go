package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/viant/afs"
	tconfig "github.com/viant/tapper/config"
	"github.com/viant/toolbox"
	"gopkg.in/yaml.v3"
)

// Config represents gateway configuration
type Config struct {
	Name        string
	Port        int
	HealthURI   string
	TimeoutMs   int // upstream call budget, covers all forwarding attempts
	MaxRetries  int // extra forwarding attempts on transport failure, at most 1
	Concurrency int
	MetricPort  int             // if specified HTTP endpoint port to expose metrics
	AccessLog   *tconfig.Stream // optional access log destination
	Routes      Routes
}

//Timeout returns upstream call budget
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

//Init sets default Config values
func (c *Config) Init() {
	if c.Name == "" {
		c.Name = "Gateway"
	}
	if c.Port == 0 {
		c.Port = 3003
	}
	if c.HealthURI == "" {
		c.HealthURI = "/health"
	}
	if c.TimeoutMs == 0 {
		c.TimeoutMs = 5000
	}
	if c.Concurrency == 0 {
		c.Concurrency = 20
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.MaxRetries > 1 {
		c.MaxRetries = 1
	}
	if len(c.Routes) == 0 {
		c.Routes = DefaultRoutes()
	}
	for _, route := range c.Routes {
		route.Init()
	}
}

//Validate checks if Config is valid
func (c *Config) Validate() error {
	if c.Port <= 0 {
		return fmt.Errorf("port was invalid: %v", c.Port)
	}
	if len(c.Routes) == 0 {
		return fmt.Errorf("routes were empty")
	}
	byURI := map[string]bool{}
	for _, route := range c.Routes {
		if route.Resource == "" {
			return fmt.Errorf("route resource was empty")
		}
		if route.Upstream == nil || route.Upstream.URL == "" {
			return fmt.Errorf("route %v upstream URL was empty", route.Resource)
		}
		if byURI[route.URI] {
			return fmt.Errorf("route URI was duplicated: %v", route.URI)
		}
		byURI[route.URI] = true
	}
	return nil
}

//DefaultRoutes returns the fixed resource to upstream mapping
func DefaultRoutes() Routes {
	return Routes{
		{Resource: "users", Upstream: &Upstream{URL: "http://user-service:3000"}},
		{Resource: "products", Upstream: &Upstream{URL: "http://product-service:3001"}},
		{Resource: "orders", Upstream: &Upstream{URL: "http://order-service:3002"}},
	}
}

//NewConfigWithURL creates a config loaded from supplied URL
func NewConfigWithURL(ctx context.Context, URL string) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load config %v", URL)
	}
	any := map[string]interface{}{}
	if err = yaml.Unmarshal(data, &any); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config %v", URL)
	}
	config := &Config{}
	if err = toolbox.DefaultConverter.AssignConverted(config, any); err != nil {
		return nil, err
	}
	config.Init()
	return config, config.Validate()
}
