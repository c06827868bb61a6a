// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"math/big"
	"sort"
	"time"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/litenode/errors"
	"github.com/bsv-blockchain/litenode/hashing"
	"github.com/bsv-blockchain/litenode/model"
	"github.com/bsv-blockchain/litenode/wire"
)

// These variables are the chain proof-of-work limit parameters for each default
// network.
var (
	// bigOne is 1 represented as a big.Int.  It is defined here to avoid
	// the overhead of creating it multiple times.
	bigOne = big.NewInt(1)

	// mainPowLimit is the highest proof of work value a Bitcoin block can
	// have for the main network.  It is the value 2^224 - 1.
	mainPowLimit = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 224), bigOne)

	// regressionPowLimit is the highest proof of work value a Bitcoin block
	// can have for the regression test network.  It is the value 2^255 - 1.
	regressionPowLimit = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 255), bigOne)

	// testNet3PowLimit is the highest proof of work value a Bitcoin block
	// can have for the test network (version 3).  It is the value
	// 2^224 - 1.
	testNet3PowLimit = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 224), bigOne)

	// dogecoinPowLimit is the highest proof of work value a Dogecoin block
	// can have.  It is the value 2^236 - 1.
	dogecoinPowLimit = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 236), bigOne)
)

// Params defines a network by its parameters.  These parameters may be
// used by applications to differentiate networks as well as addresses
// and keys for one network from those intended for use on another network.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// Net defines the magic bytes used to identify the network.
	Net wire.BitcoinNet

	// DefaultPort defines the default peer-to-peer port for the network.
	DefaultPort string

	// GenesisBlock defines the first block of the chain.
	GenesisBlock *model.Block

	// GenesisHash is the starting block hash.
	GenesisHash *chainhash.Hash

	// PowLimit defines the highest allowed proof of work value for a block
	// as a uint256.
	PowLimit *big.Int

	// PowLimitBits defines the highest allowed proof of work value for a
	// block in compact form.
	PowLimitBits uint32

	// PowHash is the algorithm block headers are hashed with for the
	// proof-of-work check.
	PowHash hashing.Algorithm

	// CoinbaseMaturity is the number of blocks required before newly mined
	// coins (coinbase transactions) can be spent.
	CoinbaseMaturity uint16

	// BaseSubsidy is the block reward of the first block, in satoshis.
	BaseSubsidy int64

	// SubsidyReductionInterval is the interval of blocks before the subsidy
	// is halved.  Zero keeps the subsidy constant.
	SubsidyReductionInterval uint32

	// TargetTimePerBlock is the desired amount of time to generate each
	// block.
	TargetTimePerBlock time.Duration

	// Retarget defines how the difficulty is adjusted.
	Retarget RetargetPolicy
}

// MainNetParams defines the network parameters for the main Bitcoin network.
var MainNetParams = Params{
	Name:        "mainnet",
	Net:         wire.MainNet,
	DefaultPort: "8333",

	// Chain parameters
	GenesisBlock:             &genesisBlock,
	GenesisHash:              genesisHash,
	PowLimit:                 mainPowLimit,
	PowLimitBits:             0x1d00ffff,
	PowHash:                  hashing.DoubleSHA256,
	CoinbaseMaturity:         100,
	BaseSubsidy:              50 * model.SatoshisPerCoin,
	SubsidyReductionInterval: 210000,
	TargetTimePerBlock:       time.Minute * 10, // 10 minutes
	Retarget:                 StandardRetarget,
}

// RegressionNetParams defines the network parameters for the regression test
// network.  Not to be confused with the test network (version 3), this
// network is sometimes simply called "testnet".
var RegressionNetParams = Params{
	Name:        "regtest",
	Net:         wire.TestNet,
	DefaultPort: "18444",

	// Chain parameters
	GenesisBlock:             &regTestGenesisBlock,
	GenesisHash:              regTestGenesisHash,
	PowLimit:                 regressionPowLimit,
	PowLimitBits:             0x207fffff,
	PowHash:                  hashing.DoubleSHA256,
	CoinbaseMaturity:         100,
	BaseSubsidy:              50 * model.SatoshisPerCoin,
	SubsidyReductionInterval: 150,
	TargetTimePerBlock:       time.Minute * 10, // 10 minutes
	Retarget:                 NoRetarget,
}

// TestNet3Params defines the network parameters for the test Bitcoin network
// (version 3).  Not to be confused with the regression test network, this
// network is sometimes simply called "testnet".
var TestNet3Params = Params{
	Name:        "testnet",
	Net:         wire.TestNet3,
	DefaultPort: "18333",

	// Chain parameters
	GenesisBlock:             &testNet3GenesisBlock,
	GenesisHash:              testNet3GenesisHash,
	PowLimit:                 testNet3PowLimit,
	PowLimitBits:             0x1d00ffff,
	PowHash:                  hashing.DoubleSHA256,
	CoinbaseMaturity:         100,
	BaseSubsidy:              50 * model.SatoshisPerCoin,
	SubsidyReductionInterval: 210000,
	TargetTimePerBlock:       time.Minute * 10, // 10 minutes
	Retarget:                 MinDifficultyRetarget,
}

// DogecoinParams defines the network parameters for the Dogecoin main network.
var DogecoinParams = Params{
	Name:        "dogecoin",
	Net:         wire.DogecoinMainNet,
	DefaultPort: "22556",

	// Chain parameters
	GenesisBlock:       &dogecoinGenesisBlock,
	GenesisHash:        dogecoinGenesisHash,
	PowLimit:           dogecoinPowLimit,
	PowLimitBits:       0x1e0fffff,
	PowHash:            hashing.Scrypt,
	CoinbaseMaturity:   240,
	BaseSubsidy:        10_000 * model.SatoshisPerCoin,
	TargetTimePerBlock: time.Minute, // 1 minute
	Retarget:           DogecoinRetarget,
}

// DogecoinTestNetParams defines the network parameters for the Dogecoin test network.
var DogecoinTestNetParams = Params{
	Name:        "dogecoin-testnet",
	Net:         wire.DogecoinTestNet,
	DefaultPort: "44556",

	// Chain parameters
	GenesisBlock:       &dogecoinTestNetGenesisBlock,
	GenesisHash:        dogecoinTestNetGenesisHash,
	PowLimit:           dogecoinPowLimit,
	PowLimitBits:       0x1e0fffff,
	PowHash:            hashing.Scrypt,
	CoinbaseMaturity:   240,
	BaseSubsidy:        10_000 * model.SatoshisPerCoin,
	TargetTimePerBlock: time.Minute, // 1 minute
	Retarget:           DogecoinTestNetRetarget,
}

var (
	// ErrDuplicateNet describes an error where the parameters for a
	// network could not be set due to the network already being a standard
	// network or previously-registered into this package.
	ErrDuplicateNet = errors.NewConfigurationError("duplicate network")

	registeredNets   = make(map[wire.BitcoinNet]*Params)
	registeredByName = make(map[string]*Params)
)

// Register registers the network parameters for a network.  This may
// error with ErrDuplicateNet if the network is already registered (either
// due to a previous Register call, or the network being one of the default
// networks), or with a configuration error when the retarget policy is invalid.
func Register(params *Params) error {
	if err := params.Validate(); err != nil {
		return err
	}

	if _, ok := registeredNets[params.Net]; ok {
		return ErrDuplicateNet
	}

	if _, ok := registeredByName[params.Name]; ok {
		return ErrDuplicateNet
	}

	registeredNets[params.Net] = params
	registeredByName[params.Name] = params

	return nil
}

// mustRegister performs the same function as Register except it panics if there
// is an error.  This should only be called from package init functions.
func mustRegister(params *Params) {
	if err := Register(params); err != nil {
		panic("failed to register network: " + err.Error())
	}
}

// Validate checks the parameters the validators depend on.
func (p *Params) Validate() error {
	if p.GenesisBlock == nil || p.GenesisBlock.Header == nil || p.GenesisHash == nil {
		return errors.NewConfigurationError("network %q has no genesis block", p.Name)
	}

	if p.PowLimit == nil || p.PowLimit.Sign() <= 0 {
		return errors.NewConfigurationError("network %q has no proof of work limit", p.Name)
	}

	if p.TargetTimePerBlock < time.Second {
		return errors.NewConfigurationError("network %q target time per block %s is too small", p.Name, p.TargetTimePerBlock)
	}

	return p.Retarget.Validate()
}

// PowLimitNBit returns PowLimitBits as an NBit.
func (p *Params) PowLimitNBit() model.NBit {
	return model.NewNBitFromUint32(p.PowLimitBits)
}

// HashProvider returns a hash registry whose BlockHash is the network proof-of-work hash.
func (p *Params) HashProvider() *hashing.Registry {
	return hashing.NewRegistry(hashing.WithBlockHash(p.PowHash))
}

// CalcBlockSubsidy returns the subsidy amount a block at the provided height
// should have.
func (p *Params) CalcBlockSubsidy(height uint32) int64 {
	if p.SubsidyReductionInterval == 0 {
		return p.BaseSubsidy
	}

	halvings := height / p.SubsidyReductionInterval
	if halvings >= 64 {
		return 0
	}

	// Equivalent to: baseSubsidy / 2^(height/subsidyHalvingInterval)
	return p.BaseSubsidy >> halvings
}

// newHashFromStr converts the passed big-endian hex string into a
// chainhash.Hash.  It only differs from the one available in chainhash in that
// it panics on an error since it will only (and must only) be called with
// hard-coded, and therefore known good, hashes.
func newHashFromStr(hexStr string) *chainhash.Hash {
	hash, err := chainhash.NewHashFromStr(hexStr)
	if err != nil {
		panic(err)
	}

	return hash
}

// GetChainParams returns the registered parameters for a network name.
// "testnet3" is accepted as an alias of "testnet".
func GetChainParams(network string) (*Params, error) {
	if network == "testnet3" {
		network = TestNet3Params.Name
	}

	params, ok := registeredByName[network]
	if !ok {
		return nil, errors.NewConfigurationError("unknown network %s", network)
	}

	return params, nil
}

// Networks returns the names of all registered networks, sorted.
func Networks() []string {
	names := make([]string, 0, len(registeredByName))
	for name := range registeredByName {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

func init() {
	// Register all default networks when the package is initialized.
	mustRegister(&MainNetParams)
	mustRegister(&TestNet3Params)
	mustRegister(&RegressionNetParams)
	mustRegister(&DogecoinParams)
	mustRegister(&DogecoinTestNetParams)
}
