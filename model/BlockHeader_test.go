package model

import (
	"encoding/hex"
	"testing"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/litenode/errors"
	"github.com/bsv-blockchain/litenode/hashing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	block1       = "0000002006226e46111a0b59caaf126043eb5bbf28c34f3a5e332a1fc7b2b73cf188910f1633819a69afbd7ce1f1a01c3b786fcbb023274f3b15172b24feadd4c80e6c6a8b491267ffff7f20040000000102000000010000000000000000000000000000000000000000000000000000000000000000ffffffff03510101ffffffff0100f2052a01000000232103656065e6886ca1e947de3471c9e723673ab6ba34724476417fa9fcef8bafa604ac00000000"
	block1Header = block1[:160]

	// regtest block 34424 with 4 transactions
	blockBytes, _ = hex.DecodeString("00000020a324e51a37547c5957868beb9f97d34f9b32ae96427513f4fe79ab3ee30f271a8acb3554ad71fbdc6070e6358ea9048c05bc83f1b962cf24295d9d07583d81698b5e3b67ffff7f20010000000402000000010000000000000000000000000000000000000000000000000000000000000000ffffffff06037886000101ffffffff01a82f000000000000232103a920b957d6d2268812e02dfd8799ed2a867e2df86c4f8d1eaecb4c35266692b5ac000000000200000001afb41c129af22ca5c05cc677993e7d8e040b2610baaca5778e7f71549fa74b89010000006b483045022100914fac419890679f1f4ba2efe22ac9721416283f4fd150f0af169026056d2f780220109a8787d494d9aa71ac0198651458f4930cb998ed6029c0221a42e2044470334121030cfa8aaa20d16e6c1f8e42ca3a0a80c6b9496d2fa39182d7ea9a0c44298c6877feffffff0200e1f505000000001976a91462e907b15cbf27d5425399ebf6f0fb50ebb88f1888ac80d7b0c4000000001976a91432dd05fe95dbc4172cc6b8335f180cdd987f278588ac778600000200000001a11489634e961ebed5143033c539675cb0682fb30d4b42e2b3ff3b71f01f359b0000000049483045022100f051603a90395cd56ab752a1124838d18d1f56d5382889c22aaf298ee6b0cc89022046a23b5d21f45bba54bf3e33942c9305c3507f0da3aa16cc2ca869d3377ca7b441feffffff0200e1f505000000001976a91462e907b15cbf27d5425399ebf6f0fb50ebb88f1888ac00021024010000001976a91442f37d99df083ec79802c38e00a21fe6b1f4583588ac778600000200000001dc1011b70ec59e1e0d24d15018fae10e0428d03ced79d2bcdf855ecf3b4f1ff700000000494830450221008de2576427d3cdada7037dcc739391ed5a732b3b02fe727942d703bc2c9c4abf02201b2a563f313914727523f81890566a25bb760b21d704c8a5747b5a9847fb450e41feffffff0200021024010000001976a9144fb3e816665c1daf8130ba9bc446b29e15b1f83788ac00e1f505000000001976a91462e907b15cbf27d5425399ebf6f0fb50ebb88f1888ac77860000")

	mainnetGenesisHeader = "0100000000000000000000000000000000000000000000000000000000000000000000003ba3edfd7a7b12b27ac72c3e67768f617fc81bc3888a51323a9fb8aa4b1e5e4a29ab5f49ffff001d1dac2b7c"
	dogecoinGenesisHeader = "010000000000000000000000000000000000000000000000000000000000000000000000696ad20e2dd4365c7459b4a4a5af743d5e92c6da3229e6532cd605f6533f2a5b24a6a152f0ff0f1e67860100"
)

func TestNewBlockHeaderFromBytes(t *testing.T) {
	t.Run("block 1 from bytes", func(t *testing.T) {
		blockHeaderBytes, _ := hex.DecodeString(block1Header)
		blockHeader, err := NewBlockHeaderFromBytes(blockHeaderBytes)
		require.NoError(t, err)

		assert.Equal(t, uint32(0x20000000), blockHeader.Version)
		assert.Equal(t, "0f9188f13cb7b2c71f2a335e3a4fc328bf5beb436012afca590b1a11466e2206", blockHeader.HashPrevBlock.String())
		assert.Equal(t, "6a6c0ec8d4adfe242b17153b4f2723b0cb6f783b1ca0f1e17cbdaf699a813316", blockHeader.HashMerkleRoot.String())
		assert.Equal(t, uint32(1729251723), blockHeader.Timestamp)
		assert.Equal(t, "207fffff", blockHeader.Bits.String())
		assert.Equal(t, uint32(4), blockHeader.Nonce)
	})

	t.Run("block 1 from string", func(t *testing.T) {
		blockHeader, err := NewBlockHeaderFromString(block1Header)
		require.NoError(t, err)

		assert.Equal(t, uint32(0x20000000), blockHeader.Version)
		assert.Equal(t, "207fffff", blockHeader.Bits.String())
	})

	t.Run("block 1 bytes", func(t *testing.T) {
		blockHeaderBytes, _ := hex.DecodeString(block1Header)
		blockHeader, err := NewBlockHeaderFromBytes(blockHeaderBytes)
		require.NoError(t, err)

		assert.Equal(t, blockHeaderBytes, blockHeader.Bytes())
		assert.Equal(t, "4c74e0128fef1a01469380c05b215afaf4cfe51183461f4a7996a84295b6925a", blockHeader.Hash().String())
		assert.Equal(t, block1Header, blockHeader.String())
	})

	t.Run("block hash - block 1", func(t *testing.T) {
		hashPrevBlock, _ := chainhash.NewHashFromStr("0f9188f13cb7b2c71f2a335e3a4fc328bf5beb436012afca590b1a11466e2206")
		hashMerkleRoot, _ := chainhash.NewHashFromStr("6a6c0ec8d4adfe242b17153b4f2723b0cb6f783b1ca0f1e17cbdaf699a813316")
		nBits, _ := NewNBitFromString("207fffff")
		blockHeader := &BlockHeader{
			Version:        0x20000000,
			HashPrevBlock:  hashPrevBlock,
			HashMerkleRoot: hashMerkleRoot,
			Timestamp:      1729251723,
			Bits:           *nBits,
			Nonce:          4,
		}

		assert.Equal(t, "4c74e0128fef1a01469380c05b215afaf4cfe51183461f4a7996a84295b6925a", blockHeader.Hash().String())
	})

	t.Run("mainnet genesis", func(t *testing.T) {
		blockHeader, err := NewBlockHeaderFromString(mainnetGenesisHeader)
		require.NoError(t, err)

		assert.Equal(t, "000000000019d6689c085ae165831e934ff763ae46a2a6c172b3f1b60a8ce26f", blockHeader.Hash().String())
		assert.True(t, IsZeroHash(blockHeader.HashPrevBlock))
		assert.True(t, blockHeader.Valid(hashing.NewRegistry()))
	})
}

func TestBlockHeaderDecodeErrors(t *testing.T) {
	headerBytes, _ := hex.DecodeString(block1Header)

	_, err := NewBlockHeaderFromBytes(headerBytes[:79])
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrTruncatedInput))

	_, err = NewBlockHeaderFromBytes(append(headerBytes, 0x00))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrMalformedInput))

	_, err = NewBlockHeaderFromString("zz")
	require.Error(t, err)
}

func TestBlockHeaderProofOfWork(t *testing.T) {
	t.Run("regtest block meets target", func(t *testing.T) {
		header, err := NewBlockHeaderFromBytes(blockBytes[:80])
		require.NoError(t, err)

		assert.Equal(t, "611fd97881064670555ac01db182c46134e770aa47d1a794b7df2767e42f3f89", header.Hash().String())
		assert.True(t, header.Valid(hashing.NewRegistry()))
	})

	t.Run("hash above target", func(t *testing.T) {
		header, err := NewBlockHeaderFromString(mainnetGenesisHeader)
		require.NoError(t, err)

		header.Nonce++
		assert.False(t, header.Valid(hashing.NewRegistry()))
	})

	t.Run("scrypt proof of work", func(t *testing.T) {
		header, err := NewBlockHeaderFromString(dogecoinGenesisHeader)
		require.NoError(t, err)

		assert.Equal(t, "1a91e3dace36e2be3bf030a65679fe821aa1d6ef92e7c9902eb318182c355691", header.Hash().String())

		powHash, err := header.PowHash(hashing.NewRegistry(hashing.WithBlockHash(hashing.Scrypt)))
		require.NoError(t, err)
		assert.Equal(t, "0000026f3f7874ca0c251314eaed2d2fcf83d7da3acfaacf59417d485310b448", powHash.String())

		assert.True(t, header.Valid(hashing.NewRegistry(hashing.WithBlockHash(hashing.Scrypt))))
		// the double SHA-256 of the same header is far above the target
		assert.False(t, header.Valid(hashing.NewRegistry()))
	})
}

func TestBlockHeaderEqual(t *testing.T) {
	a, err := NewBlockHeaderFromString(block1Header)
	require.NoError(t, err)

	b, err := NewBlockHeaderFromString(block1Header)
	require.NoError(t, err)

	assert.True(t, a.Equal(b))

	b.Timestamp++
	assert.False(t, a.Equal(b))
	assert.False(t, a.Equal(nil))
}
