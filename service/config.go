package service

import (
	"fmt"
	"strings"
	"time"
)

// Config represents backend service configuration
type Config struct {
	Name             string
	Port             int
	URI              string // resource endpoint, e.g. /users
	HealthURI        string
	SeedURL          string // optional seed payload location
	WatchFrequencyMs int    // seed change check frequency, 0 disables watching
}

//WatchFrequency returns seed check frequency
func (c *Config) WatchFrequency() time.Duration {
	return time.Duration(c.WatchFrequencyMs) * time.Millisecond
}

//Init sets default Config values
func (c *Config) Init() {
	if c.HealthURI == "" {
		c.HealthURI = "/health"
	}
	if c.URI == "" && c.Name != "" {
		c.URI = "/" + strings.ToLower(c.Name) + "s"
	}
}

//Validate checks if Config is valid
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("name was empty")
	}
	if c.Port <= 0 {
		return fmt.Errorf("port was invalid: %v", c.Port)
	}
	if c.URI == "" {
		return fmt.Errorf("URI was empty")
	}
	return nil
}
