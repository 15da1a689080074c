package systems

import (
	"math/rand"
	"testing"

	"github.com/decker502/cursorfx/pkg/config"
)

// newTestConfig 返回已验证的默认配置，mutate 可在验证前修改字段
func newTestConfig(t *testing.T, mutate func(cfg *config.EffectConfig)) *config.EffectConfig {
	t.Helper()
	cfg := config.DefaultEffectConfig()
	if mutate != nil {
		mutate(cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return cfg
}

func newTestRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
