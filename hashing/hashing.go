// Package hashing provides the hash algorithms used by the chain code, keyed by a
// stable Algorithm identifier so the proof-of-work hash can be swapped per network.
package hashing

import (
	"crypto/sha1" //nolint:gosec // OP_SHA1 is part of the script language
	"crypto/sha256"
	"fmt"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/litenode/errors"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // OP_RIPEMD160 is part of the script language
	"golang.org/x/crypto/scrypt"
)

type Algorithm int

const (
	DoubleSHA256 Algorithm = iota
	SHA256
	SHA1
	RIPEMD160
	// Hash160 is RIPEMD-160 of SHA-256.
	Hash160
	// BlockHash is the proof-of-work hash of a block header. It resolves to
	// DoubleSHA256 unless the registry is configured otherwise.
	BlockHash
	// Scrypt is scrypt with N=1024, r=1, p=1 and the input used as its own salt.
	Scrypt
)

var algorithmNames = map[Algorithm]string{
	DoubleSHA256: "double-sha256",
	SHA256:       "sha256",
	SHA1:         "sha1",
	RIPEMD160:    "ripemd160",
	Hash160:      "hash160",
	BlockHash:    "blockhash",
	Scrypt:       "scrypt",
}

func (a Algorithm) String() string {
	if name, ok := algorithmNames[a]; ok {
		return name
	}

	return fmt.Sprintf("algorithm(%d)", int(a))
}

// ParseAlgorithm returns the Algorithm for a name as printed by String.
func ParseAlgorithm(name string) (Algorithm, error) {
	for a, n := range algorithmNames {
		if n == name {
			return a, nil
		}
	}

	return 0, errors.NewConfigurationError("unknown hash algorithm %q", name)
}

// Func hashes data and returns the digest in the byte order the algorithm produces.
type Func func(data []byte) []byte

// Provider looks up a hash function by identifier.
type Provider interface {
	Get(a Algorithm) (Func, error)
}

type Registry struct {
	funcs map[Algorithm]Func
}

type Option func(r *Registry)

// WithBlockHash selects the algorithm that BlockHash resolves to.
func WithBlockHash(a Algorithm) Option {
	return func(r *Registry) {
		if a == BlockHash {
			return
		}

		if f, ok := r.funcs[a]; ok {
			r.funcs[BlockHash] = f
		}
	}
}

// WithFunc registers or replaces the function for a.
func WithFunc(a Algorithm, f Func) Option {
	return func(r *Registry) {
		r.funcs[a] = f
	}
}

func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		funcs: map[Algorithm]Func{
			DoubleSHA256: DoubleSHA256Sum,
			SHA256:       SHA256Sum,
			SHA1:         SHA1Sum,
			RIPEMD160:    RIPEMD160Sum,
			Hash160:      Hash160Sum,
			BlockHash:    DoubleSHA256Sum,
			Scrypt:       ScryptSum,
		},
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *Registry) Get(a Algorithm) (Func, error) {
	f, ok := r.funcs[a]
	if !ok {
		return nil, errors.NewInvalidArgumentError("no hash function registered for %s", a)
	}

	return f, nil
}

// Sum is a convenience for Get followed by calling the function.
func Sum(p Provider, a Algorithm, data []byte) ([]byte, error) {
	f, err := p.Get(a)
	if err != nil {
		return nil, err
	}

	return f(data), nil
}

// SumHash hashes data with a 32 byte algorithm and returns it as a chainhash.Hash.
func SumHash(p Provider, a Algorithm, data []byte) (chainhash.Hash, error) {
	var h chainhash.Hash

	b, err := Sum(p, a, data)
	if err != nil {
		return h, err
	}

	if len(b) != chainhash.HashSize {
		return h, errors.NewInvalidArgumentError("%s produces %d bytes, not a 32 byte hash", a, len(b))
	}

	copy(h[:], b)

	return h, nil
}

func DoubleSHA256Sum(data []byte) []byte {
	return chainhash.DoubleHashB(data)
}

func SHA256Sum(data []byte) []byte {
	h := sha256.Sum256(data)
	return h[:]
}

func SHA1Sum(data []byte) []byte {
	h := sha1.Sum(data) //nolint:gosec // OP_SHA1
	return h[:]
}

func RIPEMD160Sum(data []byte) []byte {
	h := ripemd160.New()
	_, _ = h.Write(data)

	return h.Sum(nil)
}

func Hash160Sum(data []byte) []byte {
	return RIPEMD160Sum(SHA256Sum(data))
}

func ScryptSum(data []byte) []byte {
	// parameters are constant and valid, scrypt.Key can not fail with them
	b, _ := scrypt.Key(data, data, 1024, 1, 1, 32)
	return b
}
