package vault

import "github.com/ethereum/go-ethereum/common"

// FactoryAddress is the vault factory emitting VaultCreated events.
const FactoryAddress = "0x008D4Dd934f9811E768F71AbCe59E193DC407CF8"

// Event signatures matched against topic0.
// VaultCreatedSig is keccak256 of the VaultCreated event declaration,
// 0xb9f84b8e65164b14439ae3620519ba4d2af4c96b1396b1772946e897159a45a7.
var VaultCreatedSig = common.Hash{
	0xb9, 0xf8, 0x4b, 0x8e, 0x65, 0x16, 0x4b, 0x14,
	0x43, 0x9a, 0xe3, 0x62, 0x05, 0x19, 0xba, 0x4d,
	0x2a, 0xf4, 0xc9, 0x6b, 0x13, 0x96, 0xb1, 0x77,
	0x29, 0x46, 0xe8, 0x97, 0x15, 0x9a, 0x45, 0xa7,
}

// PositionOpenedSig is keccak256 of the PositionOpened event declaration,
// 0x3c92d699a2f0cd9742c8a14eba5a8ad4b514a480ee8a297e3304a1e97c2b332d.
var PositionOpenedSig = common.Hash{
	0x3c, 0x92, 0xd6, 0x99, 0xa2, 0xf0, 0xcd, 0x97,
	0x42, 0xc8, 0xa1, 0x4e, 0xba, 0x5a, 0x8a, 0xd4,
	0xb5, 0x14, 0xa4, 0x80, 0xee, 0x8a, 0x29, 0x7e,
	0x33, 0x04, 0xa1, 0xe9, 0x7c, 0x2b, 0x33, 0x2d,
}

// Topic0Filter returns the topic0 values the extractor matches, for use
// in eth_getLogs queries.
func Topic0Filter() []common.Hash {
	return []common.Hash{VaultCreatedSig, PositionOpenedSig}
}
