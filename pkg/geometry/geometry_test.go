package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNorm(t *testing.T) {
	assert.Equal(t, 1.0, Norm(Vector2{X: 1, Y: 0}))
	assert.Equal(t, 1.0, Norm(Vector2{X: 0, Y: 1}))
	assert.Equal(t, 5.0, Norm(Vector2{X: 3, Y: 4}))
	assert.InDelta(t, math.Sqrt2, Norm(Vector2{X: 1, Y: 1}), 1e-12)
}

func TestEuclidDistanceSymmetricAndNonNegative(t *testing.T) {
	a := Vector2{X: 1, Y: 0}
	b := Vector2{X: 2, Y: 0}
	c := Vector2{X: 4, Y: 5}
	d := Vector2{X: 1, Y: 1}

	assert.Equal(t, 1.0, EuclidDistance(a, b))
	assert.Equal(t, 1.0, EuclidDistance(b, a))
	assert.Equal(t, 0.0, EuclidDistance(a, a))
	assert.Equal(t, 5.0, EuclidDistance(c, d))
	assert.Equal(t, EuclidDistance(c, d), EuclidDistance(d, c))
}

func TestCircleIntersection(t *testing.T) {
	a := Circle{Origin: Vector2{X: 0, Y: 0}, Radius: 2}
	b := Circle{Origin: Vector2{X: 4, Y: 0}, Radius: 2}
	c := Circle{Origin: Vector2{X: 6, Y: 5}, Radius: 2.4}
	d := Circle{Origin: Vector2{X: 2, Y: 2}, Radius: 2.4}

	assert.False(t, CircleIntersection(a, c))
	assert.False(t, CircleIntersection(c, a))
	assert.True(t, CircleIntersection(a, b))
	assert.True(t, CircleIntersection(a, d))
	assert.True(t, CircleIntersection(d, a))
}

func TestCircleEnclosureOf(t *testing.T) {
	outer := Circle{Origin: Vector2{X: 0, Y: 0}, Radius: 5}
	inner := Circle{Origin: Vector2{X: 1, Y: 0}, Radius: 1}
	tooFar := Circle{Origin: Vector2{X: 4, Y: 4}, Radius: 1}
	biggerThanOuter := Circle{Origin: Vector2{X: 0, Y: 0}, Radius: 6}

	assert.True(t, CircleEnclosureOf(outer, inner))
	assert.False(t, CircleEnclosureOf(outer, tooFar))
	assert.False(t, CircleEnclosureOf(outer, biggerThanOuter))
}

// circleEnclosureOf(a,b) ⇒ ¬circleEnclosureOf(b,a) unless radii and centres
// coincide (invariant 9).
func TestCircleEnclosureAsymmetricUnlessIdentical(t *testing.T) {
	outer := Circle{Origin: Vector2{X: 0, Y: 0}, Radius: 5}
	inner := Circle{Origin: Vector2{X: 1, Y: 0}, Radius: 1}

	assert.True(t, CircleEnclosureOf(outer, inner))
	assert.False(t, CircleEnclosureOf(inner, outer))

	identical := Circle{Origin: Vector2{X: 0, Y: 0}, Radius: 5}
	assert.True(t, CircleEnclosureOf(outer, identical))
	assert.True(t, CircleEnclosureOf(identical, outer))
}

func TestAngleDifferenceIsWithinZeroToPi(t *testing.T) {
	assert.InDelta(t, 0.0, AngleDifference(0, 0), 1e-12)
	assert.InDelta(t, math.Pi, AngleDifference(0, math.Pi), 1e-9)
	assert.InDelta(t, math.Pi/2, AngleDifference(0, math.Pi/2), 1e-9)
	// wrap-around: -pi and pi are the same direction
	assert.InDelta(t, 0.0, AngleDifference(-math.Pi, math.Pi), 1e-9)

	for _, d := range []float64{0, 0.1, 1, 2, 3, 4, 5, 6, -1, -3.5} {
		got := AngleDifference(d, 0)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, math.Pi+1e-9)
	}
}

func TestLinearPathLengthCalculator(t *testing.T) {
	c := NewLinearPathLengthCalculator()
	assert.Equal(t, 0.0, c.Length())

	c.AddVertex(Vector2{X: 0, Y: 0})
	assert.Equal(t, 0.0, c.Length(), "first vertex never changes length")

	c.AddVertex(Vector2{X: 3, Y: 4})
	assert.Equal(t, 5.0, c.Length())

	c.AddVertex(Vector2{X: 3, Y: 0})
	assert.Equal(t, 9.0, c.Length())

	c.Reset()
	assert.Equal(t, 0.0, c.Length())
	c.AddVertex(Vector2{X: 10, Y: 10})
	assert.Equal(t, 0.0, c.Length())
}

func TestLinearPathLengthCalculatorBiasedAndFrom(t *testing.T) {
	biased := NewBiasedLinearPathLengthCalculator(42)
	assert.Equal(t, 42.0, biased.Length())

	from := NewLinearPathLengthCalculatorFrom(Vector2{X: 0, Y: 0})
	assert.Equal(t, 0.0, from.Length())
	from.AddVertex(Vector2{X: 3, Y: 4})
	assert.Equal(t, 5.0, from.Length())
}
