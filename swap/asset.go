package swap

import (
	"strconv"

	"github.com/quackswap/quack/nxt"
)

// Kind tags the ledger asset class of one swap leg.
type Kind string

const (
	// KindNative is the ledger's own coin.
	KindNative Kind = "NXT"
	// KindToken is an asset-exchange token.
	KindToken Kind = "A"
	// KindCurrency is a monetary-system currency.
	KindCurrency Kind = "M"
)

// Asset identifies one transferable unit in a swap leg. ID is nil when the
// asset is unspecified; such entries are skipped when submitting legs. The
// JSON shape is part of the on-ledger announcement format.
type Asset struct {
	ID       *string `json:"id"`
	Kind     Kind    `json:"type"`
	Quantity int64   `json:"quantity"`
}

func NativeAsset(amountNQT int64) Asset {
	id := "1"
	return Asset{ID: &id, Kind: KindNative, Quantity: amountNQT}
}

func TokenAsset(id string, quantityQNT int64) Asset {
	return Asset{ID: &id, Kind: KindToken, Quantity: quantityQNT}
}

func CurrencyAsset(id string, units int64) Asset {
	return Asset{ID: &id, Kind: KindCurrency, Quantity: units}
}

// legKind is the closed set of transaction type/subtype pairs that can carry
// a swap leg. Everything else is legUnsupported.
type legKind int

const (
	legPayment legKind = iota
	legAssetTransfer
	legCurrencyTransfer
	legUnsupported
)

func legKindOf(txType, txSubtype int) legKind {
	switch {
	case txType == nxt.TypePayment && txSubtype == nxt.SubtypeOrdinary:
		return legPayment
	case txType == nxt.TypeColoredCoins && txSubtype == nxt.SubtypeAssetXfer:
		return legAssetTransfer
	case txType == nxt.TypeMonetarySystem && txSubtype == nxt.SubtypeCurrencyXfer:
		return legCurrencyTransfer
	default:
		return legUnsupported
	}
}

// classify builds the Asset transferred by a leg transaction. It reports
// false for unsupported type/subtype pairs and for unreadable quantities;
// such transactions contribute no leg.
func classify(tx nxt.Transaction) (Asset, bool) {
	switch legKindOf(tx.Type, tx.Subtype) {
	case legPayment:
		qty, ok := parseQuantity(tx.AmountNQT)
		if !ok {
			return Asset{}, false
		}
		return NativeAsset(qty), true
	case legAssetTransfer:
		if tx.Attachment == nil {
			return Asset{}, false
		}
		qty, ok := parseQuantity(tx.Attachment.QuantityQNT)
		if !ok {
			return Asset{}, false
		}
		return Asset{ID: emptyToNil(tx.Attachment.Asset), Kind: KindToken, Quantity: qty}, true
	case legCurrencyTransfer:
		if tx.Attachment == nil {
			return Asset{}, false
		}
		qty, ok := parseQuantity(tx.Attachment.Units)
		if !ok {
			return Asset{}, false
		}
		return Asset{ID: emptyToNil(tx.Attachment.Currency), Kind: KindCurrency, Quantity: qty}, true
	default:
		return Asset{}, false
	}
}

// parseQuantity reads the node's decimal-string quantities. An absent field
// counts as zero, a malformed one as unreadable.
func parseQuantity(s string) (int64, bool) {
	if s == "" {
		return 0, true
	}
	qty, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return qty, true
}

func emptyToNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
