package pipeline

import (
	"github.com/roninwatch/tokendash/internal/model"
)

// enrichBestSwaps fills each record's per-horizon best-swap suggestion:
// the symbol of the counterpart token (excluding self) with the highest
// change in that horizon. Ties resolve to the first candidate in
// registry order. Brute force over ~30 tokens; not worth more.
func enrichBestSwaps(tokens []model.Token) {
	for i := range tokens {
		tokens[i].BestSwap = model.BestSwap{
			H24: bestSwap(tokens, i, func(t model.Token) float64 { return t.PriceChanges.H24 }),
			D7:  bestSwap(tokens, i, func(t model.Token) float64 { return t.PriceChanges.D7 }),
			D30: bestSwap(tokens, i, func(t model.Token) float64 { return t.PriceChanges.D30 }),
		}
	}
}

func bestSwap(tokens []model.Token, self int, change func(model.Token) float64) string {
	best := -1
	for j := range tokens {
		if j == self {
			continue
		}
		if best == -1 || change(tokens[j]) > change(tokens[best]) {
			best = j
		}
	}
	if best == -1 {
		return model.BestSwapNone
	}
	return tokens[best].Symbol
}
