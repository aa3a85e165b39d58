package fixed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	p, err := Parse("123.456")
	require.NoError(t, err)
	assert.Equal(t, "123.456", p.String())

	_, err = Parse("not a number")
	assert.Error(t, err)
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustParse("oops")
	})
}

func TestArithmetic(t *testing.T) {
	a := MustParse("10.5")
	b := MustParse("2.5")

	assert.True(t, a.Add(b).Eq(FromInt(13, 0)))
	assert.True(t, a.Sub(b).Eq(FromInt(8, 0)))
	assert.True(t, a.Mul(b).Eq(MustParse("26.25")))
	assert.True(t, a.Div(b).Eq(MustParse("4.2")))
	assert.True(t, a.MulInt64(4).Eq(FromInt(42, 0)))
	assert.True(t, a.DivInt64(2).Eq(MustParse("5.25")))
}

func TestComparisons(t *testing.T) {
	a := FromInt(1, 0)
	b := FromInt(2, 0)

	assert.True(t, a.Lt(b))
	assert.True(t, b.Gt(a))
	assert.True(t, a.Lte(a))
	assert.True(t, a.Gte(a))
	assert.False(t, a.Eq(b))
}

func TestAbsNeg(t *testing.T) {
	p := MustParse("-3.5")
	assert.True(t, p.Abs().Eq(MustParse("3.5")))
	assert.True(t, p.Neg().Eq(MustParse("3.5")))
	assert.True(t, Zero.IsZero())
}

func TestFromFloat64(t *testing.T) {
	p := FromFloat64(0.25)
	assert.True(t, p.Eq(MustParse("0.25")))

	back, ok := p.Float64()
	require.True(t, ok)
	assert.InDelta(t, 0.25, back, 1e-12)
}

func TestTextRoundTrip(t *testing.T) {
	p := MustParse("99.99")

	text, err := p.MarshalText()
	require.NoError(t, err)

	var decoded Point
	require.NoError(t, decoded.UnmarshalText(text))
	assert.True(t, p.Eq(decoded))

	assert.Error(t, decoded.UnmarshalText([]byte("oops")))
}

// Exact conservation over repeated add and subtract, where float64
// accumulation would drift.
func TestNoDrift(t *testing.T) {
	tick := MustParse("0.1")

	sum := Zero
	for i := 0; i < 1000; i++ {
		sum = sum.Add(tick)
	}
	for i := 0; i < 1000; i++ {
		sum = sum.Sub(tick)
	}
	assert.True(t, sum.IsZero())
}
