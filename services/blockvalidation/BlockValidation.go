// Package blockvalidation checks that a block header is connected to the known
// chain, carries enough proof of work and declares the difficulty target the
// retarget rules of the network require.
package blockvalidation

import (
	"context"
	"time"

	"github.com/bsv-blockchain/litenode/chaincfg"
	"github.com/bsv-blockchain/litenode/errors"
	"github.com/bsv-blockchain/litenode/hashing"
	"github.com/bsv-blockchain/litenode/model"
	"github.com/bsv-blockchain/litenode/services/blockchain"
	"github.com/bsv-blockchain/litenode/settings"
	blockchain_store "github.com/bsv-blockchain/litenode/stores/blockchain"
	"github.com/bsv-blockchain/litenode/ulogger"
)

// rules, used as the metric label of a rejection
const (
	ruleProofOfWork  = "pow"
	rulePowLimit     = "pow_limit"
	ruleMerkleRoot   = "merkle_root"
	ruleUnconnected  = "unconnected"
	ruleDifficulty   = "difficulty"
	ruleStoreFailure = "store"
)

type BlockValidation struct {
	logger       ulogger.Logger
	settings     *settings.Settings
	chainParams  *chaincfg.Params
	store        blockchain_store.Store
	difficulty   *blockchain.Difficulty
	hashProvider hashing.Provider
}

// New creates a block validator for the network in tSettings. Missing
// dependencies are reported as configuration errors.
func New(logger ulogger.Logger, tSettings *settings.Settings, store blockchain_store.Store, hashProvider hashing.Provider) (*BlockValidation, error) {
	if tSettings == nil || tSettings.ChainCfgParams == nil {
		return nil, errors.NewConfigurationError("blockvalidation: chain params are not configured")
	}

	if store == nil {
		return nil, errors.NewConfigurationError("blockvalidation: chain store is nil")
	}

	if hashProvider == nil {
		return nil, errors.NewConfigurationError("blockvalidation: hash provider is nil")
	}

	difficulty, err := blockchain.NewDifficulty(store, logger, tSettings.ChainCfgParams)
	if err != nil {
		return nil, err
	}

	initPrometheusMetrics()

	return &BlockValidation{
		logger:       logger,
		settings:     tSettings,
		chainParams:  tSettings.ChainCfgParams,
		store:        store,
		difficulty:   difficulty,
		hashProvider: hashProvider,
	}, nil
}

// ValidateBlock validates the header of block against the chain in the store.
// When the block carries transactions their merkle root must match the header.
func (bv *BlockValidation) ValidateBlock(ctx context.Context, block *model.Block) *model.ValidationResult {
	start := time.Now()

	defer func() {
		prometheusBlockValidationValidateBlock.Observe(time.Since(start).Seconds())
	}()

	rule, result := bv.validateBlock(ctx, block)
	if !result.OK() {
		prometheusBlockValidationInvalid.WithLabelValues(rule).Inc()
		bv.logger.Debugf("[ValidateBlock] block %s rejected: %s", block.Hash(), result.Reason)

		return result
	}

	prometheusBlockValidationValid.Inc()

	return result
}

func (bv *BlockValidation) validateBlock(ctx context.Context, block *model.Block) (string, *model.ValidationResult) {
	header := block.Header
	blockHash := header.Hash()

	if blockHash.IsEqual(bv.chainParams.GenesisHash) {
		return "", model.NewValidResult()
	}

	// proof of work against the claimed target
	target := header.Bits.CalculateTarget()
	if target.Sign() <= 0 {
		return ruleProofOfWork, model.NewInvalidResult("block %s has invalid difficulty bits %s", blockHash, header.Bits)
	}

	if bv.settings.BlockValidation.CheckPowLimit && target.Cmp(bv.chainParams.PowLimit) > 0 {
		return rulePowLimit, model.NewInvalidResult("block %s difficulty target is above the proof of work limit", blockHash)
	}

	powHash, err := header.PowHash(bv.hashProvider)
	if err != nil {
		return ruleProofOfWork, model.NewInvalidResult("unable to hash block %s: %v", blockHash, err)
	}

	if model.HashToBig(powHash).Cmp(target) >= 0 {
		return ruleProofOfWork, model.NewInvalidResult("block %s does not meet difficulty target %s", blockHash, header.Bits)
	}

	if len(block.Transactions) > 0 {
		if merkleRoot := block.CalculateMerkleRoot(); !merkleRoot.IsEqual(header.HashMerkleRoot) {
			return ruleMerkleRoot, model.NewInvalidResult("block %s merkle root %s does not match transactions %s", blockHash, header.HashMerkleRoot, merkleRoot)
		}
	}

	// the parent must be on the canonical chain
	prevHeight, err := bv.store.GetBlockHeight(ctx, header.HashPrevBlock)
	if err != nil {
		if errors.Is(err, errors.ErrBlockNotFound) {
			return ruleUnconnected, model.NewInvalidResult("block %s is unconnected, parent %s not found", blockHash, header.HashPrevBlock)
		}

		bv.logger.Errorf("[ValidateBlock] failed to get height of %s: %v", header.HashPrevBlock, err)

		return ruleStoreFailure, model.NewInvalidResult("unable to get height of parent %s: %v", header.HashPrevBlock, err)
	}

	canonicalHash, err := bv.store.GetBlockHashAtHeight(ctx, prevHeight)
	if err != nil || !canonicalHash.IsEqual(header.HashPrevBlock) {
		return ruleUnconnected, model.NewInvalidResult("block %s is unconnected, parent %s is not on the main chain at height %d", blockHash, header.HashPrevBlock, prevHeight)
	}

	prevHeader, _, err := bv.store.GetBlockHeader(ctx, header.HashPrevBlock)
	if err != nil {
		bv.logger.Errorf("[ValidateBlock] failed to get parent header %s: %v", header.HashPrevBlock, err)

		return ruleStoreFailure, model.NewInvalidResult("unable to get parent header %s: %v", header.HashPrevBlock, err)
	}

	expectedBits, err := bv.difficulty.CalcNextWorkRequired(ctx, prevHeader, prevHeight, header.Timestamp)
	if err != nil {
		return ruleDifficulty, model.NewInvalidResult("unable to compute required difficulty for block %s: %v", blockHash, err)
	}

	if *expectedBits != header.Bits {
		return ruleDifficulty, model.NewInvalidResult("block %s has incorrect difficulty bits %s, expected %s", blockHash, header.Bits, expectedBits)
	}

	return "", model.NewValidResult()
}

// BlockHeight returns the height block would have on the chain in the store.
func (bv *BlockValidation) BlockHeight(ctx context.Context, block *model.Block) (uint32, error) {
	if block.Hash().IsEqual(bv.chainParams.GenesisHash) {
		return 0, nil
	}

	prevHeight, err := bv.store.GetBlockHeight(ctx, block.Header.HashPrevBlock)
	if err != nil {
		return 0, err
	}

	return prevHeight + 1, nil
}
