package arbshrink_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/arbshrink/pkg/arbshrink"
)

func Test_Unstructured_Reads_Sequentially_When_Bytes_Available(t *testing.T) {
	t.Parallel()

	u := arbshrink.NewUnstructured([]byte{
		0x07,
		0x01, 0x02,
		0x01, 0x00, 0x00, 0x00,
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
		0x03,
	})

	b, err := u.Byte()
	require.NoError(t, err)
	assert.Equal(t, byte(7), b)

	v16, err := u.Uint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0201), v16)

	v32, err := u.Uint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(1), v32)

	v64, err := u.Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(-1), v64)

	flag, err := u.Bool()
	require.NoError(t, err)
	assert.True(t, flag)

	assert.True(t, u.IsEmpty())
	assert.Equal(t, 16, u.Used())
	assert.Equal(t, 0, u.Len())
}

func Test_Unstructured_Returns_ErrNotEnoughData_When_Exhausted(t *testing.T) {
	t.Parallel()

	u := arbshrink.NewUnstructured([]byte{1, 2, 3})

	_, err := u.Uint32()
	require.ErrorIs(t, err, arbshrink.ErrNotEnoughData)
	require.ErrorIs(t, err, arbshrink.ErrMalformedInput)
	assert.True(t, arbshrink.IsMalformed(err))
	assert.Equal(t, 0, u.Used(), "failed read must not consume")

	_, err = u.Bytes(4)
	require.ErrorIs(t, err, arbshrink.ErrNotEnoughData)

	_, err = u.Uint64()
	require.ErrorIs(t, err, arbshrink.ErrNotEnoughData)

	rest := u.Rest()
	assert.Equal(t, []byte{1, 2, 3}, rest)

	_, err = u.Byte()
	require.ErrorIs(t, err, arbshrink.ErrNotEnoughData)
}

func Test_Unstructured_Bytes_Returns_Copy_When_Buffer_Mutated(t *testing.T) {
	t.Parallel()

	buf := []byte{1, 2, 3, 4}
	u := arbshrink.NewUnstructured(buf)

	got, err := u.Bytes(2)
	require.NoError(t, err)

	buf[0] = 99
	assert.Equal(t, []byte{1, 2}, got)

	rest := u.Rest()
	buf[3] = 99
	assert.Equal(t, []byte{3, 4}, rest)
}

func Test_Unstructured_IntRange_Stays_In_Bounds_When_Bytes_Vary(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		lo, hi int
	}{
		{name: "Single", lo: 5, hi: 5},
		{name: "Small", lo: 0, hi: 9},
		{name: "Negative", lo: -50, hi: 50},
		{name: "Wide", lo: 0, hi: 1 << 20},
		{name: "Full", lo: math.MinInt64, hi: math.MaxInt64},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			for seed := range 256 {
				raw := make([]byte, 8)
				for i := range raw {
					raw[i] = byte(seed * (i + 3))
				}

				v, err := arbshrink.NewUnstructured(raw).IntRange(testCase.lo, testCase.hi)
				require.NoError(t, err)
				require.GreaterOrEqual(t, v, testCase.lo)
				require.LessOrEqual(t, v, testCase.hi)
			}
		})
	}
}

func Test_Unstructured_IntRange_Returns_Fatal_Error_When_Range_Inverted(t *testing.T) {
	t.Parallel()

	_, err := arbshrink.NewUnstructured([]byte{1}).IntRange(3, 1)
	require.Error(t, err)
	assert.False(t, arbshrink.IsMalformed(err), "inverted range is a constructor bug")
}

func Test_Unstructured_Choose_Returns_ErrEmptyChoice_When_No_Options(t *testing.T) {
	t.Parallel()

	_, err := arbshrink.NewUnstructured([]byte{1}).Choose(0)
	require.ErrorIs(t, err, arbshrink.ErrEmptyChoice)
	assert.False(t, arbshrink.IsMalformed(err))

	idx, err := arbshrink.NewUnstructured([]byte{7}).Choose(3)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
}

func Test_Unstructured_ArbitraryLen_Bounded_By_Remaining_When_Buffer_Short(t *testing.T) {
	t.Parallel()

	u := arbshrink.NewUnstructured([]byte{255, 1, 2, 3, 4, 5, 6, 7, 8})

	n, err := u.ArbitraryLen(4)
	require.NoError(t, err)
	assert.LessOrEqual(t, n, 2)

	empty := arbshrink.NewUnstructured([]byte{9})

	n, err = empty.ArbitraryLen(1)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func Test_Unstructured_String_Is_Lowercase_When_Decoded(t *testing.T) {
	t.Parallel()

	s, err := arbshrink.NewUnstructured([]byte{3, 0, 25, 26}).String(5)
	require.NoError(t, err)
	assert.Equal(t, "aza", s)

	empty, err := arbshrink.NewUnstructured(nil).String(0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func Test_FromArbitrary_Returns_Zero_Value_When_Fill_Fails(t *testing.T) {
	t.Parallel()

	constructor := arbshrink.FromArbitrary[rgb]()

	got, err := arbshrink.Construct(constructor, []byte{1, 2})
	require.ErrorIs(t, err, arbshrink.ErrNotEnoughData)
	assert.Equal(t, rgb{}, got)

	got, err = arbshrink.Construct(constructor, []byte{4, 5, 6, 7})
	require.NoError(t, err)
	assert.Equal(t, rgb{R: 4, G: 5, B: 6}, got)
}

func Test_Construct_Is_Pure_When_Called_Twice(t *testing.T) {
	t.Parallel()

	buf := []byte{3, 1, 4, 1, 5, 9, 2, 6}
	before := append([]byte(nil), buf...)

	first, err := arbshrink.Construct(sumBytes, buf)
	require.NoError(t, err)

	second, err := arbshrink.Construct(sumBytes, buf)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, before, buf, "construct must not modify the buffer")
}
