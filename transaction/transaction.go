package transaction

import (
	"github.com/holiman/uint256"
)

const (
	OpTypeTransfer    = 0
	OpTypeUserContent = 1
	OpTypeStake       = 2
)

// Operation is the atomic unit counted by the importer
type Operation struct {
	Type      int32        `json:"type"`
	Sender    string       `json:"sender"`
	Recipient string       `json:"recipient,omitempty"`
	Amount    *uint256.Int `json:"amount,omitempty"`
	TextData  string       `json:"text_data,omitempty"`
}

// Transaction groups the operations signed together. Within one import pass a
// transaction is identified by its pointer, not by its contents.
type Transaction struct {
	Nonce      uint64      `json:"nonce"`
	Timestamp  uint64      `json:"timestamp"`
	Signature  string      `json:"signature,omitempty"`
	Operations []Operation `json:"operations"`
}

func NewTransfer(sender, recipient string, amount uint64) Operation {
	return Operation{
		Type:      OpTypeTransfer,
		Sender:    sender,
		Recipient: recipient,
		Amount:    uint256.NewInt(amount),
	}
}

// OperationCount returns the number of operations in the transaction
func (tx *Transaction) OperationCount() int {
	return len(tx.Operations)
}
