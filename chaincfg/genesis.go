package chaincfg

import (
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/litenode/model"
)

// genesisCoinbaseTx is the coinbase transaction of the genesis block shared by
// mainnet, testnet3 and regtest.
var genesisCoinbaseTx = mustTx("01000000010000000000000000000000000000000000000000000000000000000000000000ffffffff4d04ffff001d0104455468652054696d65732030332f4a616e2f32303039204368616e63656c6c6f72206f6e206272696e6b206f66207365636f6e64206261696c6f757420666f722062616e6b73ffffffff0100f2052a01000000434104678afdb0fe5548271967f1a67130b7105cd6a828e03909a67962e0ea1f61deb649f6bc3f4cef38c4f35504e51ec112de5c384df7ba0b8d578a4c702b6bf11d5fac00000000")

// genesisMerkleRoot is the hash of the first transaction in the genesis block.
var genesisMerkleRoot = newHashFromStr("4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b")

var genesisBlock = model.Block{
	Header: &model.BlockHeader{
		Version:        1,
		HashPrevBlock:  &chainhash.Hash{},
		HashMerkleRoot: genesisMerkleRoot,
		Timestamp:      1231006505, // 2009-01-03 18:15:05 +0000 UTC
		Bits:           model.NewNBitFromUint32(0x1d00ffff),
		Nonce:          0x7c2bac1d, // 2083236893
	},
	Transactions: []*model.Transaction{genesisCoinbaseTx},
}

var genesisHash = newHashFromStr("000000000019d6689c085ae165831e934ff763ae46a2a6c172b3f1b60a8ce26f")

var testNet3GenesisBlock = model.Block{
	Header: &model.BlockHeader{
		Version:        1,
		HashPrevBlock:  &chainhash.Hash{},
		HashMerkleRoot: genesisMerkleRoot,
		Timestamp:      1296688602, // 2011-02-02 23:16:42 +0000 UTC
		Bits:           model.NewNBitFromUint32(0x1d00ffff),
		Nonce:          0x18aea41a, // 414098458
	},
	Transactions: []*model.Transaction{genesisCoinbaseTx},
}

var testNet3GenesisHash = newHashFromStr("000000000933ea01ad0ee984209779baaec3ced90fa3f408719526f8d77f4943")

var regTestGenesisBlock = model.Block{
	Header: &model.BlockHeader{
		Version:        1,
		HashPrevBlock:  &chainhash.Hash{},
		HashMerkleRoot: genesisMerkleRoot,
		Timestamp:      1296688602,
		Bits:           model.NewNBitFromUint32(0x207fffff),
		Nonce:          2,
	},
	Transactions: []*model.Transaction{genesisCoinbaseTx},
}

var regTestGenesisHash = newHashFromStr("0f9188f13cb7b2c71f2a335e3a4fc328bf5beb436012afca590b1a11466e2206")

var dogecoinGenesisCoinbaseTx = mustTx("01000000010000000000000000000000000000000000000000000000000000000000000000ffffffff1004ffff001d0104084e696e746f6e646fffffffff010058850c020000004341040184710fa689ad5023690c80f3a49c8f13f8d45b8c857fbcbc8bc4a8e4d3eb4b10f4d4604fa08dce601aaf0f470216fe1b51850b4acf21b179c45070ac7b03a9ac00000000")

var dogecoinGenesisMerkleRoot = newHashFromStr("5b2a3f53f605d62c53e62932dac6925e3d74afa5a4b459745c36d42d0ed26a69")

var dogecoinGenesisBlock = model.Block{
	Header: &model.BlockHeader{
		Version:        1,
		HashPrevBlock:  &chainhash.Hash{},
		HashMerkleRoot: dogecoinGenesisMerkleRoot,
		Timestamp:      1386325540, // 2013-12-06 10:25:40 +0000 UTC
		Bits:           model.NewNBitFromUint32(0x1e0ffff0),
		Nonce:          99943,
	},
	Transactions: []*model.Transaction{dogecoinGenesisCoinbaseTx},
}

var dogecoinGenesisHash = newHashFromStr("1a91e3dace36e2be3bf030a65679fe821aa1d6ef92e7c9902eb318182c355691")

var dogecoinTestNetGenesisBlock = model.Block{
	Header: &model.BlockHeader{
		Version:        1,
		HashPrevBlock:  &chainhash.Hash{},
		HashMerkleRoot: dogecoinGenesisMerkleRoot,
		Timestamp:      1391503289, // 2014-02-04 08:41:29 +0000 UTC
		Bits:           model.NewNBitFromUint32(0x1e0ffff0),
		Nonce:          997879,
	},
	Transactions: []*model.Transaction{dogecoinGenesisCoinbaseTx},
}

var dogecoinTestNetGenesisHash = newHashFromStr("bb0a78264637406b6360aad926284d544d7049f45189db5664f3c4d07350559e")

func mustTx(s string) *model.Transaction {
	tx, err := model.NewTransactionFromString(s)
	if err != nil {
		panic(err)
	}

	return tx
}
