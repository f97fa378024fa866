package wildfire

// Bernoulli draws true with probability p.
type Bernoulli interface {
	Chance(p float64) bool
}

// Rule is the fire / regrowth transition function.
type Rule struct {
	// FireChance is the spontaneous ignition probability of a green cell with
	// no burning neighbour.
	FireChance float64
	// RegrowChance is the probability that an empty cell turns green.
	RegrowChance float64
}

// Next returns the state following cur given the states of its neighbours.
// src is only consulted on the stochastic branches.
func (r Rule) Next(cur State, neighbors []State, src Bernoulli) State {
	switch cur {
	case Green:
		for _, n := range neighbors {
			if n == Burning {
				return Burning
			}
		}
		if src.Chance(r.FireChance) {
			return Burning
		}
		return Green
	case Burning:
		return Empty
	default:
		if src.Chance(r.RegrowChance) {
			return Green
		}
		return Empty
	}
}
