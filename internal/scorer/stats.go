package scorer

import "golang.org/x/exp/constraints"

type number interface {
	constraints.Integer | constraints.Float
}

func mean[T number](xs []T) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += float64(x)
	}
	return sum / float64(len(xs))
}

// variance is the sample variance (n-1 denominator). ok is false for fewer
// than two values.
func variance[T number](xs []T) (v float64, ok bool) {
	if len(xs) < 2 {
		return 0, false
	}
	m := mean(xs)
	var ss float64
	for _, x := range xs {
		d := float64(x) - m
		ss += d * d
	}
	return ss / float64(len(xs)-1), true
}

func maxOf[T constraints.Ordered](xs []T) T {
	var ret T
	for i, x := range xs {
		if i == 0 || x > ret {
			ret = x
		}
	}
	return ret
}
