package encoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEncodeUTF16_Success tests encoding well-formed UTF-8 strings.
func TestEncodeUTF16_Success(t *testing.T) {
	t.Parallel()

	u, err := EncodeUTF16("C:\\Users\\test")
	require.NoError(t, err)
	assert.Equal(t, []uint16{'C', ':', '\\', 'U', 's', 'e', 'r', 's', '\\', 't', 'e', 's', 't'}, u)

	u, err = EncodeUTF16("")
	require.NoError(t, err)
	assert.Empty(t, u)
}

// TestEncodeUTF16_Success_BMP tests encoding characters of the basic plane.
func TestEncodeUTF16_Success_BMP(t *testing.T) {
	t.Parallel()

	u, err := EncodeUTF16("naïve日本語")
	require.NoError(t, err)
	assert.Equal(t, []uint16{'n', 'a', 0x00EF, 'v', 'e', 0x65E5, 0x672C, 0x8A9E}, u)
}

// TestEncodeUTF16_Success_SurrogatePair tests encoding astral characters into
// surrogate pairs.
func TestEncodeUTF16_Success_SurrogatePair(t *testing.T) {
	t.Parallel()

	u, err := EncodeUTF16("a\U0001F600b") // U+1F600 encodes as D83D DE00
	require.NoError(t, err)
	assert.Equal(t, []uint16{'a', 0xD83D, 0xDE00, 'b'}, u)
}

// TestEncodeUTF16_Fail_MalformedBytes tests rejection of invalid UTF-8 input.
func TestEncodeUTF16_Fail_MalformedBytes(t *testing.T) {
	t.Parallel()

	u, err := EncodeUTF16("ok\xff\xfe")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrMalformed)
	assert.Nil(t, u)

	u, err = EncodeUTF16(string([]byte{0xED, 0xA0, 0x80})) // encoded surrogate half
	require.Error(t, err)
	require.ErrorIs(t, err, ErrMalformed)
	assert.Nil(t, u)
}

// TestEncodeUTF16_Fail_InteriorNUL tests rejection of NUL characters.
func TestEncodeUTF16_Fail_InteriorNUL(t *testing.T) {
	t.Parallel()

	u, err := EncodeUTF16("a\x00b")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrUnrepresentable)
	assert.Nil(t, u)
}

// TestDecodeUTF16_Success tests decoding well-formed UTF-16 units.
func TestDecodeUTF16_Success(t *testing.T) {
	t.Parallel()

	s, err := DecodeUTF16([]uint16{'f', 'i', 'l', 'e', '.', 't', 'x', 't'})
	require.NoError(t, err)
	assert.Equal(t, "file.txt", s)

	s, err = DecodeUTF16(nil)
	require.NoError(t, err)
	assert.Empty(t, s)
}

// TestDecodeUTF16_Success_SurrogatePair tests decoding surrogate pairs back
// into astral characters.
func TestDecodeUTF16_Success_SurrogatePair(t *testing.T) {
	t.Parallel()

	s, err := DecodeUTF16([]uint16{'a', 0xD83D, 0xDE00, 'b'})
	require.NoError(t, err)
	assert.Equal(t, "a\U0001F600b", s)
}

// TestDecodeUTF16_Fail_UnpairedHigh tests rejection of a high surrogate
// without its partner.
func TestDecodeUTF16_Fail_UnpairedHigh(t *testing.T) {
	t.Parallel()

	s, err := DecodeUTF16([]uint16{'a', 0xD83D, 'b'})
	require.Error(t, err)
	require.ErrorIs(t, err, ErrMalformed)
	assert.Empty(t, s)

	s, err = DecodeUTF16([]uint16{'a', 0xD83D}) // truncated at end
	require.Error(t, err)
	require.ErrorIs(t, err, ErrMalformed)
	assert.Empty(t, s)
}

// TestDecodeUTF16_Fail_UnpairedLow tests rejection of a low surrogate
// appearing first.
func TestDecodeUTF16_Fail_UnpairedLow(t *testing.T) {
	t.Parallel()

	s, err := DecodeUTF16([]uint16{0xDE00, 'a'})
	require.Error(t, err)
	require.ErrorIs(t, err, ErrMalformed)
	assert.Empty(t, s)
}

// TestRoundTrip_Success tests that encoding and decoding are inverse for
// well-formed input.
func TestRoundTrip_Success(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"plain",
		"with spaces and.dots",
		"ümlaut-ñ",
		"日本語ファイル名",
		"mixed \U0001F4C1 folder \U0001F600",
		"\uFFFD literal replacement char",
	}

	for _, in := range inputs {
		u, err := EncodeUTF16(in)
		require.NoError(t, err)

		out, err := DecodeUTF16(u)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	}
}

// TestValidateUTF8_Success tests acceptance of well-formed strings.
func TestValidateUTF8_Success(t *testing.T) {
	t.Parallel()

	require.NoError(t, ValidateUTF8("plain"))
	require.NoError(t, ValidateUTF8("日本語"))
	require.NoError(t, ValidateUTF8(""))
}

// TestValidateUTF8_Fail_Malformed tests rejection of malformed strings.
func TestValidateUTF8_Fail_Malformed(t *testing.T) {
	t.Parallel()

	err := ValidateUTF8("bad\xc3\x28")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrMalformed)
}
