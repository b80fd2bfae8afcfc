package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/quackswap/quack/swap"
)

// parseAssets turns repeated --offer/--expect flags into asset descriptors.
// Format is KIND:ID:QUANTITY, e.g. "NXT:1:100000000", "A:8717394:10",
// "M:4229784:500".
func parseAssets(specs []string) ([]swap.Asset, error) {
	assets := make([]swap.Asset, 0, len(specs))
	for _, spec := range specs {
		parts := strings.SplitN(spec, ":", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid asset %q, want KIND:ID:QUANTITY", spec)
		}
		qty, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid quantity in %q: %v", spec, err)
		}
		switch swap.Kind(parts[0]) {
		case swap.KindNative:
			assets = append(assets, swap.NativeAsset(qty))
		case swap.KindToken:
			assets = append(assets, swap.TokenAsset(parts[1], qty))
		case swap.KindCurrency:
			assets = append(assets, swap.CurrencyAsset(parts[1], qty))
		default:
			return nil, fmt.Errorf("unknown asset kind %q, want NXT, A or M", parts[0])
		}
	}
	return assets, nil
}
