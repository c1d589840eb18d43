package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/nguyentantai21042004/cogniscribe-batch/internal/domain"
)

const (
	DefaultURL     = "http://localhost:8080"
	DefaultOutput  = "batch_output"
	DefaultTimeout = 10 * time.Minute
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Request   RequestConfig   `yaml:"request"`
	Paths     PathsConfig     `yaml:"paths"`
	Artifacts ArtifactsConfig `yaml:"artifacts"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type ServerConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

type RequestConfig struct {
	Ratio   float64 `yaml:"ratio"`
	Subject string  `yaml:"subject"`
}

type PathsConfig struct {
	Output string `yaml:"output"`
}

type ArtifactsConfig struct {
	Docx bool `yaml:"docx"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file or override is present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			URL:     DefaultURL,
			Timeout: DefaultTimeout,
		},
		Request: RequestConfig{
			Ratio: domain.DefaultRatio,
		},
		Paths: PathsConfig{
			Output: DefaultOutput,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// ProcessingRequest returns the per-file parameters shared by the whole run.
func (c *Config) ProcessingRequest() domain.Request {
	return domain.Request{
		Ratio:   c.Request.Ratio,
		Subject: strings.TrimSpace(c.Request.Subject),
	}
}

func (c *Config) Validate() error {
	if err := c.ProcessingRequest().Validate(); err != nil {
		return err
	}
	if c.Server.Timeout < 0 {
		return fmt.Errorf("server.timeout must be positive")
	}

	if c.Server.URL == "" {
		c.Server.URL = DefaultURL
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = DefaultTimeout
	}
	if c.Paths.Output == "" {
		c.Paths.Output = DefaultOutput
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}

	return nil
}
