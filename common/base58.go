package common

import (
	"fmt"

	"github.com/mr-tron/base58"
)

// EncodeBytesToBase58 encodes bytes directly to base58
func EncodeBytesToBase58(bytes []byte) string {
	return base58.Encode(bytes)
}

// DecodeBase58ToBytes decodes base58 string to bytes
func DecodeBase58ToBytes(base58Str string) ([]byte, error) {
	bytes, err := base58.Decode(base58Str)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base58 string: %w", err)
	}
	return bytes, nil
}

// DecodeID decodes a base58 string into a 32-byte identifier
func DecodeID(base58Str string) ([32]byte, error) {
	var id [32]byte
	bytes, err := DecodeBase58ToBytes(base58Str)
	if err != nil {
		return id, err
	}
	if len(bytes) != len(id) {
		return id, fmt.Errorf("invalid identifier length: %d", len(bytes))
	}
	copy(id[:], bytes)
	return id, nil
}

// ShortID renders the first bytes of an identifier for log lines
func ShortID(id [32]byte) string {
	s := base58.Encode(id[:])
	if len(s) > 8 {
		return s[:8]
	}
	return s
}
