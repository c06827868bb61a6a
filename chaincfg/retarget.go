package chaincfg

import (
	"time"

	"github.com/bsv-blockchain/litenode/errors"
)

// AdjustmentBand bounds the measured timespan of a retarget window to
// [TargetTimespan*MinNum/MinDen, TargetTimespan*MaxNum/MaxDen].
type AdjustmentBand struct {
	MinNum, MinDen int64
	MaxNum, MaxDen int64
}

// RetargetEra describes how difficulty is adjusted from StartHeight onwards,
// until the StartHeight of the next era.
type RetargetEra struct {
	// StartHeight is the first block height the era applies to.
	StartHeight uint32

	// Interval is the number of blocks between retargets.
	Interval uint32

	// TargetTimespan is the desired time for Interval blocks.
	TargetTimespan time.Duration

	Band AdjustmentBand

	// AmplitudeDivisor, when non-zero, dampens the measured timespan to
	// target + (actual - target) / AmplitudeDivisor before clamping.
	AmplitudeDivisor int64
}

func (e RetargetEra) MinTimespan() int64 {
	return int64(e.TargetTimespan/time.Second) * e.Band.MinNum / e.Band.MinDen
}

func (e RetargetEra) MaxTimespan() int64 {
	return int64(e.TargetTimespan/time.Second) * e.Band.MaxNum / e.Band.MaxDen
}

// AdjustedTimespan applies the amplitude filter and the band to a measured timespan in seconds.
func (e RetargetEra) AdjustedTimespan(actual int64) int64 {
	target := int64(e.TargetTimespan / time.Second)

	if e.AmplitudeDivisor > 0 {
		actual = target + (actual-target)/e.AmplitudeDivisor
	}

	if minTimespan := e.MinTimespan(); actual < minTimespan {
		actual = minTimespan
	}

	if maxTimespan := e.MaxTimespan(); actual > maxTimespan {
		actual = maxTimespan
	}

	return actual
}

// RetargetPolicy is the difficulty adjustment rule set of a network.
type RetargetPolicy struct {
	Name string

	// Eras ordered by ascending StartHeight, the first starting at 0.
	Eras []RetargetEra

	// AllowMinDifficulty permits a block at the proof-of-work limit when it
	// arrives more than twice the target spacing after its predecessor.
	AllowMinDifficulty bool

	// ScanPastMinDifficulty makes a non min-difficulty block inherit the
	// target of the last block before a run of min-difficulty blocks.
	ScanPastMinDifficulty bool

	// ExtraAncestorStep measures the retarget window from one block further
	// back, except for the first retarget of the chain.
	ExtraAncestorStep bool

	// NoRetargeting keeps the target of the previous block forever.
	NoRetargeting bool
}

// Validate rejects policies the retarget calculation can not work with.
func (p RetargetPolicy) Validate() error {
	if len(p.Eras) == 0 {
		return errors.NewConfigurationError("retarget policy %q has no eras", p.Name)
	}

	if p.Eras[0].StartHeight != 0 {
		return errors.NewConfigurationError("retarget policy %q: first era must start at height 0", p.Name)
	}

	for i, era := range p.Eras {
		if era.Interval == 0 {
			return errors.NewConfigurationError("retarget policy %q: era %d has a zero retarget interval", p.Name, i)
		}

		if era.TargetTimespan < time.Second {
			return errors.NewConfigurationError("retarget policy %q: era %d target timespan %s is too small", p.Name, i, era.TargetTimespan)
		}

		if era.Band.MinDen <= 0 || era.Band.MaxDen <= 0 || era.Band.MinNum <= 0 || era.Band.MaxNum <= 0 {
			return errors.NewConfigurationError("retarget policy %q: era %d has an invalid adjustment band", p.Name, i)
		}

		if era.AmplitudeDivisor < 0 {
			return errors.NewConfigurationError("retarget policy %q: era %d has a negative amplitude divisor", p.Name, i)
		}

		if i > 0 && era.StartHeight <= p.Eras[i-1].StartHeight {
			return errors.NewConfigurationError("retarget policy %q: eras are not in ascending height order", p.Name)
		}
	}

	return nil
}

// EraAt returns the era that applies to a block at height.
func (p RetargetPolicy) EraAt(height uint32) RetargetEra {
	era := p.Eras[0]

	for _, e := range p.Eras[1:] {
		if e.StartHeight > height {
			break
		}

		era = e
	}

	return era
}

// IsRetargetHeight reports whether a block at height recomputes the target.
func (p RetargetPolicy) IsRetargetHeight(height uint32) bool {
	if p.NoRetargeting {
		return false
	}

	return height%p.EraAt(height).Interval == 0
}

// FirstBlockHeight returns the height of the block that opens the retarget
// window measured for a block at height.
func (p RetargetPolicy) FirstBlockHeight(height uint32) uint32 {
	interval := p.EraAt(height).Interval

	if height < interval {
		return 0
	}

	first := height - interval
	if p.ExtraAncestorStep && first > 0 {
		first--
	}

	return first
}

var (
	bitcoinBand = AdjustmentBand{MinNum: 1, MinDen: 4, MaxNum: 4, MaxDen: 1}

	// StandardRetarget retargets every 2016 blocks against a two week
	// timespan, limiting each adjustment to a factor of four.
	StandardRetarget = RetargetPolicy{
		Name: "standard",
		Eras: []RetargetEra{
			{StartHeight: 0, Interval: 2016, TargetTimespan: 14 * 24 * time.Hour, Band: bitcoinBand},
		},
	}

	// MinDifficultyRetarget is StandardRetarget with the testnet3 minimum difficulty exception.
	MinDifficultyRetarget = RetargetPolicy{
		Name:                  "min-difficulty",
		Eras:                  StandardRetarget.Eras,
		AllowMinDifficulty:    true,
		ScanPastMinDifficulty: true,
	}

	// NoRetarget never changes the target, used by regtest.
	NoRetarget = RetargetPolicy{
		Name:          "none",
		Eras:          StandardRetarget.Eras,
		NoRetargeting: true,
	}

	// DogecoinRetarget retargets every 240 blocks with bands that narrow at
	// heights 5000 and 10000, then switches to a per block digishield
	// retarget at 145000.
	DogecoinRetarget = RetargetPolicy{
		Name: "dogecoin",
		Eras: []RetargetEra{
			{StartHeight: 0, Interval: 240, TargetTimespan: 4 * time.Hour, Band: AdjustmentBand{MinNum: 1, MinDen: 16, MaxNum: 4, MaxDen: 1}},
			{StartHeight: 5000 + 1, Interval: 240, TargetTimespan: 4 * time.Hour, Band: AdjustmentBand{MinNum: 1, MinDen: 8, MaxNum: 4, MaxDen: 1}},
			{StartHeight: 10000 + 1, Interval: 240, TargetTimespan: 4 * time.Hour, Band: AdjustmentBand{MinNum: 1, MinDen: 4, MaxNum: 4, MaxDen: 1}},
			{StartHeight: 145000, Interval: 1, TargetTimespan: time.Minute, Band: AdjustmentBand{MinNum: 3, MinDen: 4, MaxNum: 3, MaxDen: 2}, AmplitudeDivisor: 8},
		},
		ExtraAncestorStep: true,
	}

	// DogecoinTestNetRetarget is DogecoinRetarget with minimum difficulty
	// blocks allowed, without the backwards scan.
	DogecoinTestNetRetarget = RetargetPolicy{
		Name:               "dogecoin-testnet",
		Eras:               DogecoinRetarget.Eras,
		AllowMinDifficulty: true,
		ExtraAncestorStep:  true,
	}
)
