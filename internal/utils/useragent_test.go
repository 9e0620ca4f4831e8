package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseUserAgent(t *testing.T) {
	t.Run("Desktop Chrome", func(t *testing.T) {
		info := ParseUserAgent("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
		assert.Equal(t, "desktop", info.DeviceType)
		assert.Contains(t, info.OS, "Windows")
		assert.Equal(t, "Chrome", info.Browser)
		assert.False(t, info.IsBot)
	})

	t.Run("Android Phone", func(t *testing.T) {
		info := ParseUserAgent("Mozilla/5.0 (Linux; Android 13; Pixel 7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Mobile Safari/537.36")
		assert.Equal(t, "mobile", info.DeviceType)
		assert.Contains(t, info.OS, "Android")
	})

	t.Run("iPad", func(t *testing.T) {
		info := ParseUserAgent("Mozilla/5.0 (iPad; CPU OS 16_6 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.6 Mobile/15E148 Safari/604.1")
		assert.Equal(t, "tablet", info.DeviceType)
	})

	t.Run("Empty String", func(t *testing.T) {
		info := ParseUserAgent("")
		assert.Equal(t, "unknown", info.DeviceType)
		assert.Equal(t, "Unknown", info.OS)
		assert.Equal(t, "Unknown", info.Browser)
	})
}
