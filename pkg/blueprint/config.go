package blueprint

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// BaseURL is the REST API root, e.g. https://api.blueprint.build/v1
	BaseURL string
	// GatewayURL is the websocket endpoint for the realtime bridge.
	GatewayURL string
	// TokenFile persists the session token between runs. Empty disables
	// persistence.
	TokenFile string
	CacheTTL  time.Duration
	UserAgent string
}

// LoadConfig pulls the client settings out of the already-read viper
// configuration, with workable defaults for a local gateway.
func LoadConfig() Config {
	viper.SetDefault("client.base_url", "http://localhost:5000/api")
	viper.SetDefault("client.gateway_url", "ws://localhost:5000/ws")
	viper.SetDefault("client.token_file", ".blueprint-token")
	viper.SetDefault("client.user_agent", "blueprint-go")
	viper.SetDefault("cache.ttl", "5m")

	return Config{
		BaseURL:    viper.GetString("client.base_url"),
		GatewayURL: viper.GetString("client.gateway_url"),
		TokenFile:  viper.GetString("client.token_file"),
		CacheTTL:   viper.GetDuration("cache.ttl"),
		UserAgent:  viper.GetString("client.user_agent"),
	}
}
