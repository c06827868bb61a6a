package settings

import (
	"github.com/bsv-blockchain/litenode/chaincfg"
)

func NewSettings() *Settings {
	params, err := chaincfg.GetChainParams(getString("network", "mainnet"))
	if err != nil {
		panic(err)
	}

	return &Settings{
		ClientName:     getString("clientName", "litenode"),
		LogLevel:       getString("logLevel", "INFO"),
		ChainCfgParams: params,
		Policy: &PolicySettings{
			MaxScriptSizePolicy:         getInt("policy_maxScriptSize", 500000), // 500KB
			MaxOpsPerScriptPolicy:       getInt("policy_maxOpsPerScript", 0),    // 0 is unlimited
			MaxStackSizePolicy:          getInt("policy_maxStackSize", 1000),
			MaxScriptNumLengthPolicy:    getInt("policy_maxScriptNumLength", 10000), // 10K
			MaxPubKeysPerMultisigPolicy: getInt("policy_maxPubKeysPerMultisig", 20),
		},
		BlockChain: BlockChainSettings{
			StoreURL: getURL("chainstore", "memory://"),
			CacheTTL: getDuration("chainstore_cacheTTL", 0),
		},
		BlockValidation: BlockValidationSettings{
			CheckPowLimit: getBool("blockvalidation_checkPowLimit", true),
		},
		Validator: ValidatorSettings{
			ScriptConcurrency: getInt("validator_scriptConcurrency", 0),
		},
	}
}
