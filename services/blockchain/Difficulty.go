package blockchain

import (
	"context"
	"math/big"
	"time"

	"github.com/bsv-blockchain/litenode/chaincfg"
	"github.com/bsv-blockchain/litenode/errors"
	"github.com/bsv-blockchain/litenode/model"
	blockchain_store "github.com/bsv-blockchain/litenode/stores/blockchain"
	"github.com/bsv-blockchain/litenode/ulogger"
)

// Difficulty computes the proof of work target a block must carry from the
// chain it extends, following the retarget policy of the network.
type Difficulty struct {
	logger        ulogger.Logger
	store         blockchain_store.Store
	chainParams   *chaincfg.Params
	powLimitnBits model.NBit
}

func NewDifficulty(store blockchain_store.Store, logger ulogger.Logger, params *chaincfg.Params) (*Difficulty, error) {
	if store == nil {
		return nil, errors.NewConfigurationError("difficulty: chain store is nil")
	}

	if params == nil {
		return nil, errors.NewConfigurationError("difficulty: chain params are nil")
	}

	if err := params.Retarget.Validate(); err != nil {
		return nil, err
	}

	return &Difficulty{
		logger:        logger,
		store:         store,
		chainParams:   params,
		powLimitnBits: params.PowLimitNBit(),
	}, nil
}

// CalcNextWorkRequired returns the bits required of a block with the given
// timestamp built on top of bestBlockHeader, which is at bestBlockHeight.
func (d *Difficulty) CalcNextWorkRequired(ctx context.Context, bestBlockHeader *model.BlockHeader, bestBlockHeight uint32, timestamp uint32) (*model.NBit, error) {
	policy := d.chainParams.Retarget

	// regtest never adjusts the difficulty
	if policy.NoRetargeting {
		bits := bestBlockHeader.Bits
		return &bits, nil
	}

	height := bestBlockHeight + 1
	era := policy.EraAt(height)
	retarget := policy.IsRetargetHeight(height)

	// For networks that support it, allow special reduction of the
	// required difficulty once too much time has elapsed without
	// mining a block. Per block retargeting eras apply it on every block.
	if policy.AllowMinDifficulty && (!retarget || era.Interval == 1) {
		spacing := int64(d.chainParams.TargetTimePerBlock / time.Second)

		if int64(timestamp) > int64(bestBlockHeader.Timestamp)+2*spacing {
			d.logger.Debugf("block at height %d arrived more than %ds after its parent, minimum difficulty allowed", height, 2*spacing)

			bits := d.powLimitnBits

			return &bits, nil
		}
	}

	if !retarget {
		if policy.ScanPastMinDifficulty {
			return d.lastNonMinDifficultyBits(ctx, bestBlockHeader, bestBlockHeight, era.Interval)
		}

		bits := bestBlockHeader.Bits

		return &bits, nil
	}

	firstHeight := policy.FirstBlockHeight(height)

	firstBlockHeader, err := d.headerAtHeight(ctx, firstHeight)
	if err != nil {
		return nil, errors.NewProcessingError("unable to obtain retarget window start at height %d", firstHeight, err)
	}

	nBits := d.computeTarget(era, firstBlockHeader, bestBlockHeader)

	d.logger.Debugf("retarget at height %d: %s -> %s", height, bestBlockHeader.Bits, nBits)

	return nBits, nil
}

// lastNonMinDifficultyBits walks back from the given block past blocks mined at
// the proof of work limit, stopping at the start of the retarget interval.
func (d *Difficulty) lastNonMinDifficultyBits(ctx context.Context, header *model.BlockHeader, height uint32, interval uint32) (*model.NBit, error) {
	var err error

	for height > 0 && height%interval != 0 && header.Bits == d.powLimitnBits {
		height--

		header, err = d.headerAtHeight(ctx, height)
		if err != nil {
			return nil, errors.NewProcessingError("unable to scan past minimum difficulty block at height %d", height, err)
		}
	}

	bits := header.Bits

	return &bits, nil
}

func (d *Difficulty) headerAtHeight(ctx context.Context, height uint32) (*model.BlockHeader, error) {
	hash, err := d.store.GetBlockHashAtHeight(ctx, height)
	if err != nil {
		return nil, err
	}

	header, _, err := d.store.GetBlockHeader(ctx, hash)
	if err != nil {
		return nil, err
	}

	return header, nil
}

// computeTarget scales the target of lastBlockHeader by the measured timespan
// of the window, limited to the band of the era, over the desired timespan.
// The result goes through the compact encoding and is capped at the network limit.
func (d *Difficulty) computeTarget(era chaincfg.RetargetEra, firstBlockHeader, lastBlockHeader *model.BlockHeader) *model.NBit {
	actualTimespan := int64(lastBlockHeader.Timestamp) - int64(firstBlockHeader.Timestamp)
	adjustedTimespan := era.AdjustedTimespan(actualTimespan)
	targetTimespan := int64(era.TargetTimespan / time.Second)

	newTarget := lastBlockHeader.Bits.CalculateTarget()
	newTarget.Mul(newTarget, big.NewInt(adjustedTimespan))
	newTarget.Div(newTarget, big.NewInt(targetTimespan))
	newTarget = model.RoundTripTarget(newTarget)

	if newTarget.Cmp(d.chainParams.PowLimit) > 0 {
		newTarget.Set(d.chainParams.PowLimit)
	}

	nBits := model.NewNBitFromUint32(model.BigToCompact(newTarget))

	return &nBits
}
