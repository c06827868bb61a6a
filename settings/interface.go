package settings

import (
	"net/url"
	"time"

	"github.com/bsv-blockchain/litenode/chaincfg"
)

// PolicySettings are the script execution limits. A zero value means unlimited.
type PolicySettings struct {
	MaxScriptSizePolicy         int
	MaxOpsPerScriptPolicy       int
	MaxStackSizePolicy          int
	MaxScriptNumLengthPolicy    int
	MaxPubKeysPerMultisigPolicy int
}

type BlockChainSettings struct {
	// StoreURL selects the chain store backend, see stores/blockchain.NewStore.
	StoreURL *url.URL
	// CacheTTL wraps the store in a read cache when non-zero.
	CacheTTL time.Duration
}

type BlockValidationSettings struct {
	// CheckPowLimit rejects headers whose target is easier than the network limit.
	CheckPowLimit bool
}

type ValidatorSettings struct {
	// ScriptConcurrency bounds the number of inputs verified at once, 0 uses all CPUs.
	ScriptConcurrency int
}

type Settings struct {
	ClientName      string
	LogLevel        string
	ChainCfgParams  *chaincfg.Params
	Policy          *PolicySettings
	BlockChain      BlockChainSettings
	BlockValidation BlockValidationSettings
	Validator       ValidatorSettings
}
