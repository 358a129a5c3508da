package main

import (
	"testing"

	"alcyxob/coaching-app/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupMetrics(t *testing.T) {
	t.Run("enabled", func(t *testing.T) {
		m, gatherer := setupMetrics(config.MetricsConfig{Enabled: true, Namespace: "coaching"})
		require.NotNil(t, m)
		require.NotNil(t, gatherer)

		m.CounterPlansCreated.Inc()
		families, err := gatherer.Gather()
		require.NoError(t, err)

		names := make(map[string]bool, len(families))
		for _, f := range families {
			names[f.GetName()] = true
		}
		assert.True(t, names["coaching_server_plans_created"])
		assert.True(t, names["go_goroutines"])
	})

	t.Run("disabled", func(t *testing.T) {
		m, gatherer := setupMetrics(config.MetricsConfig{Enabled: false, Namespace: "coaching"})
		require.NotNil(t, m)
		assert.Nil(t, gatherer)
		assert.NotPanics(t, func() { m.CounterPlansCreated.Inc() })
	})
}
