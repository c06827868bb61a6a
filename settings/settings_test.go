package settings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// check settings object is initialised
func TestInitialiseSettings(t *testing.T) {
	tSettings := NewSettings()

	if tSettings.ChainCfgParams == nil {
		t.Errorf("ChainCfgParams is nil")
	}

	require.NotNil(t, tSettings.Policy)
	require.NotNil(t, tSettings.BlockChain.StoreURL)
	require.Equal(t, "memory", tSettings.BlockChain.StoreURL.Scheme)
	require.Equal(t, 1000, tSettings.Policy.MaxStackSizePolicy)
	require.Equal(t, 10000, tSettings.Policy.MaxScriptNumLengthPolicy)
	require.Equal(t, 20, tSettings.Policy.MaxPubKeysPerMultisigPolicy)
	require.True(t, tSettings.BlockValidation.CheckPowLimit)
}

func TestNetworkSetting(t *testing.T) {
	tests := []struct {
		network string
		expect  string
	}{
		{"regtest", "regtest"},
		{"testnet3", "testnet"},
		{"dogecoin", "dogecoin"},
	}

	for _, tt := range tests {
		t.Run(tt.network, func(t *testing.T) {
			t.Setenv("network", tt.network)

			tSettings := NewSettings()
			require.Equal(t, tt.expect, tSettings.ChainCfgParams.Name)
		})
	}
}

func TestUnknownNetworkPanics(t *testing.T) {
	t.Setenv("network", "moonnet")

	require.Panics(t, func() {
		NewSettings()
	})
}

func TestStoreSettings(t *testing.T) {
	t.Setenv("chainstore", "sqlite:///tmp/chain.db")
	t.Setenv("chainstore_cacheTTL", "5m")
	t.Setenv("validator_scriptConcurrency", "3")

	tSettings := NewSettings()
	require.Equal(t, "sqlite", tSettings.BlockChain.StoreURL.Scheme)
	require.Equal(t, "/tmp/chain.db", tSettings.BlockChain.StoreURL.Path)
	require.Equal(t, 5*time.Minute, tSettings.BlockChain.CacheTTL)
	require.Equal(t, 3, tSettings.Validator.ScriptConcurrency)
}

func TestInvalidDurationFallsBack(t *testing.T) {
	t.Setenv("chainstore_cacheTTL", "soon")

	require.Equal(t, time.Duration(0), NewSettings().BlockChain.CacheTTL)
}
