// Package config provides configuration management for go-supplydemand.
package config

import (
	"net"
	"strconv"
	"strings"
)

var AppVersion = "-unset-" // will be set at build time

const (
	// HostedEnv marks a managed hosting platform when set to a non-empty value
	HostedEnv = "SUPPLYDEMAND_HOSTED"

	// Bind defaults
	HostedHost      = "0.0.0.0"
	DevelopmentHost = "127.0.0.1"
	DefaultPort     = 5000

	// Web defaults
	DefaultTemplateDir   = "web/templates"
	DefaultStaticDir     = "web/static"
	DefaultIndexTemplate = "index.html"
	DefaultProfilerAddr  = "127.0.0.1:51111"
)

// ServerConfig holds the bind address and debug mode of the web server.
// It is built once at startup and not modified afterwards.
type ServerConfig struct {
	Host   string `json:"host"`
	Port   int    `json:"port"`
	Debug  bool   `json:"debug"`
	Hosted bool   `json:"hosted"`
}

// Addr returns the host:port listen address
func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Mode returns a short name for log lines
func (c ServerConfig) Mode() string {
	if c.Hosted {
		return "hosted"
	}
	return "development"
}

// WebConfig holds file locations used by the web interface
type WebConfig struct {
	TemplateDir   string `json:"template_dir"`
	StaticDir     string `json:"static_dir"`
	IndexTemplate string `json:"index_template"`
	ProfilerAddr  string `json:"profiler_addr"` // pprof endpoint, debug mode only
}

// ResolveConfig selects hosted or development mode from the environment.
// getenv is usually os.Getenv; tests pass a map lookup instead.
func ResolveConfig(getenv func(string) string) ServerConfig {
	if getenv != nil && strings.TrimSpace(getenv(HostedEnv)) != "" {
		return ServerConfig{
			Host:   HostedHost,
			Port:   DefaultPort,
			Debug:  false,
			Hosted: true,
		}
	}
	return ServerConfig{
		Host:  DevelopmentHost,
		Port:  DefaultPort,
		Debug: true,
	}
}

// DefaultWebConfig returns the web configuration with sensible defaults
func DefaultWebConfig() *WebConfig {
	return &WebConfig{
		TemplateDir:   DefaultTemplateDir,
		StaticDir:     DefaultStaticDir,
		IndexTemplate: DefaultIndexTemplate,
		ProfilerAddr:  DefaultProfilerAddr,
	}
}
