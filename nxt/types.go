package nxt

// Transaction type/subtype pairs used by the swap protocol. The node defines
// many more; anything outside this set is not a swap leg.
const (
	TypePayment         = 0
	SubtypeOrdinary     = 0
	TypeColoredCoins    = 2
	SubtypeAssetXfer    = 1
	TypeMonetarySystem  = 5
	SubtypeCurrencyXfer = 3
)

// OneNXT is the base fee unit in NQT.
const OneNXT int64 = 100000000

// Attachment is the appendix part of a transaction as reported by the node.
// Only the fields the swap protocol reads are modelled; the node sends more.
type Attachment struct {
	Message                 string   `json:"message,omitempty"`
	MessageIsText           bool     `json:"messageIsText,omitempty"`
	PhasingLinkedFullHashes []string `json:"phasingLinkedFullHashes,omitempty"`
	PhasingFinishHeight     int64    `json:"phasingFinishHeight,omitempty"`
	Asset                   string   `json:"asset,omitempty"`
	QuantityQNT             string   `json:"quantityQNT,omitempty"`
	Currency                string   `json:"currency,omitempty"`
	Units                   string   `json:"units,omitempty"`
}

// Transaction is a transaction record as returned by getBlockchainTransactions
// or parseTransaction. Quantities are decimal strings on the wire.
type Transaction struct {
	Transaction string      `json:"transaction,omitempty"`
	FullHash    string      `json:"fullHash,omitempty"`
	SenderRS    string      `json:"senderRS,omitempty"`
	RecipientRS string      `json:"recipientRS,omitempty"`
	Type        int         `json:"type"`
	Subtype     int         `json:"subtype"`
	AmountNQT   string      `json:"amountNQT,omitempty"`
	Height      int64       `json:"height,omitempty"`
	Timestamp   int64       `json:"timestamp,omitempty"`
	Attachment  *Attachment `json:"attachment,omitempty"`
}

// UnsignedTransaction holds the artifacts of a transaction built on the node
// with broadcast=false. Either field may be empty if the node reply was
// incomplete; callers decide whether that is fatal.
type UnsignedTransaction struct {
	FullHash      string
	UnsignedBytes string
}

// Phasing describes the by-transaction phasing condition attached to a swap
// leg: the leg only executes if the linked transaction is confirmed before
// FinishHeight.
type Phasing struct {
	LinkedFullHash string
	Deadline       int64
	FinishHeight   int64
}
