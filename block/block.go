package block

import (
	"encoding/binary"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/mezonai/ledgerkv/common"
	"github.com/mezonai/ledgerkv/jsonx"
	"github.com/mezonai/ledgerkv/transaction"
)

// ID is a content-derived block identifier
type ID [32]byte

func (id ID) IsZero() bool {
	return id == ID{}
}

func (id ID) String() string {
	return common.EncodeBytesToBase58(id[:])
}

// MarshalText renders the ID as base58 so stored blocks stay readable
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *ID) UnmarshalText(text []byte) error {
	decoded, err := common.DecodeID(string(text))
	if err != nil {
		return err
	}
	*id = decoded
	return nil
}

type Block struct {
	Number       uint64                     `json:"number"`
	Previous     ID                         `json:"previous"` // ID of the predecessor block
	ID           ID                         `json:"id"`
	Timestamp    time.Time                  `json:"timestamp"`
	Producer     string                     `json:"producer"`
	Transactions []*transaction.Transaction `json:"transactions"`
}

// AssembleBlock builds a block on top of prev and derives its ID
func AssembleBlock(number uint64, prev ID, producer string, txs []*transaction.Transaction) *Block {
	b := &Block{
		Number:       number,
		Previous:     prev,
		Producer:     producer,
		Timestamp:    time.Now().UTC(),
		Transactions: txs,
	}
	b.ID = b.ComputeID()
	return b
}

// ComputeID hashes the header fields and the encoded transactions
func (b *Block) ComputeID() ID {
	h, _ := blake2b.New256(nil)
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, b.Number)
	h.Write(buf)
	h.Write(b.Previous[:])
	h.Write([]byte(b.Producer))
	binary.BigEndian.PutUint64(buf, uint64(b.Timestamp.UnixNano()))
	h.Write(buf)
	for _, tx := range b.Transactions {
		raw, err := jsonx.Marshal(tx)
		if err != nil {
			continue
		}
		h.Write(raw)
	}
	var out ID
	copy(out[:], h.Sum(nil))
	return out
}

// OperationCount returns the total number of operations carried by the block
func (b *Block) OperationCount() int {
	n := 0
	for _, tx := range b.Transactions {
		n += tx.OperationCount()
	}
	return n
}
