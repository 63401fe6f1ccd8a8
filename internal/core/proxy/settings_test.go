package proxy

import (
	"testing"

	"storefront/internal/core/config"

	"github.com/stretchr/testify/assert"
)

func TestSettings(t *testing.T) {
	tests := []struct {
		name      string
		settings  Settings
		hasProxy  bool
		forwarder bool
		hostPort  string
		fullURL   string
	}{
		{
			name:     "Disabled",
			settings: Settings{Enabled: false, Hostname: "proxy.local", Port: 3128},
		},
		{
			name:     "MissingPort",
			settings: Settings{Enabled: true, Hostname: "proxy.local"},
		},
		{
			name:     "Anonymous",
			settings: Settings{Enabled: true, Hostname: "proxy.local", Port: 3128},
			hasProxy: true,
			hostPort: "http://proxy.local:3128",
			fullURL:  "http://proxy.local:3128",
		},
		{
			name:      "WithCredentials",
			settings:  Settings{Enabled: true, Hostname: "proxy.local", Port: 3128, Username: "u", Password: "p"},
			hasProxy:  true,
			forwarder: true,
			hostPort:  "http://proxy.local:3128",
			fullURL:   "http://u:p@proxy.local:3128",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.hasProxy, tt.settings.HasProxy())
			assert.Equal(t, tt.forwarder, tt.settings.NeedsForwarder())
			assert.Equal(t, tt.hostPort, tt.settings.HostPort())
			assert.Equal(t, tt.fullURL, tt.settings.FullURL())
		})
	}
}

func TestFromConfig(t *testing.T) {
	s := FromConfig(config.ProxyConfig{
		Enabled:  true,
		Hostname: "proxy.local",
		Port:     8000,
		Username: "user",
		Password: "secret",
	})

	assert.Equal(t, Settings{Enabled: true, Hostname: "proxy.local", Port: 8000, Username: "user", Password: "secret"}, s)
}
