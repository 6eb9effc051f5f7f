package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadClampsNonPositiveDurations(t *testing.T) {
	t.Setenv("LUMEN_WS_KEEPALIVE_INTERVAL", "0s")
	t.Setenv("LUMEN_WS_WRITE_TIMEOUT", "-5s")
	t.Setenv("LUMEN_WS_TICKET_TTL", "0s")

	cfg := Load()

	assert.Equal(t, 30*time.Second, cfg.Chat.KeepaliveInterval)
	assert.Equal(t, 10*time.Second, cfg.Chat.WriteTimeout)
	assert.Equal(t, time.Minute, cfg.Chat.TicketTTL)
}

func TestLoadServiceNameShadowsConventional(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("LUMEN_SERVER_PORT", "9090")

	cfg := Load()

	assert.Equal(t, 9090, cfg.Server.Port)
}
