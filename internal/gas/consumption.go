package gas

import "math/big"

// u256Max is the ceiling GasConsumption saturates to infinite past,
// mirroring GasMeter.cpp's use of u256(-1) as the overflow threshold.
var u256Max = func() *big.Int {
	max := new(big.Int).Lsh(big.NewInt(1), 256)
	return max.Sub(max, big.NewInt(1))
}()

// GasConsumption is libevmasm's GasConsumption ported directly: a
// value that is either a concrete quantity or, once any step of the
// estimate can't be bounded, permanently infinite. Addition saturates
// rather than wrapping, and infinite is absorbing.
type GasConsumption struct {
	Value    *big.Int
	Infinite bool
}

func Known(v uint64) GasConsumption {
	return GasConsumption{Value: new(big.Int).SetUint64(v)}
}

func KnownBig(v *big.Int) GasConsumption {
	return GasConsumption{Value: new(big.Int).Set(v)}
}

func Infinite() GasConsumption {
	return GasConsumption{Infinite: true}
}

// Add combines two consumptions the way "operator+=" does in
// GasMeter.cpp: infinite absorbs, and a sum that would exceed the
// 256-bit range becomes infinite rather than wrapping.
func (g GasConsumption) Add(other GasConsumption) GasConsumption {
	if g.Infinite || other.Infinite {
		return Infinite()
	}
	sum := new(big.Int).Add(g.Value, other.Value)
	if sum.Cmp(u256Max) > 0 {
		return Infinite()
	}
	return GasConsumption{Value: sum}
}

// Mul scales a consumption by a known multiplier, saturating to
// infinite on overflow the same way Add does.
func (g GasConsumption) Mul(factor uint64) GasConsumption {
	if g.Infinite {
		return Infinite()
	}
	product := new(big.Int).Mul(g.Value, new(big.Int).SetUint64(factor))
	if product.Cmp(u256Max) > 0 {
		return Infinite()
	}
	return GasConsumption{Value: product}
}

func (g GasConsumption) String() string {
	if g.Infinite {
		return "inf"
	}
	return g.Value.String()
}
