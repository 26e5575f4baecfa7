package rule

import "github.com/shopspring/decimal"

// WeightShouldNotBeNegative is broken when any source indicator weight is below zero.
type WeightShouldNotBeNegative struct {
	weights []decimal.Decimal
}

func NewWeightShouldNotBeNegative(weights []decimal.Decimal) WeightShouldNotBeNegative {
	return WeightShouldNotBeNegative{weights: weights}
}

func (r WeightShouldNotBeNegative) IsBroken() bool {
	for _, w := range r.weights {
		if w.IsNegative() {
			return true
		}
	}
	return false
}

func (r WeightShouldNotBeNegative) Message() string {
	return "source indicator weights must not be negative"
}
