package wire

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cases := []Datagram{
		{Protocol: 12, Src: 100, Dest: 200, Time: 1.5, Data: []byte("Some test data for Datagram class (12334567890).")},
		{Protocol: 12, Src: 100, Dest: 200, Time: 0, Data: []byte{}},
	}
	for _, d := range cases {
		encoded := Encode(d)
		decoded, err := Decode(encoded)
		require.NoError(t, err)
		require.True(t, d.Equal(decoded))
	}
}

func TestDecodeRejectsShortBuffer(t *testing.T) {
	_, err := Decode(make([]byte, FixedOverhead-1))
	require.Error(t, err)
	var malformed *MalformedError
	require.True(t, errors.As(err, &malformed))
	require.True(t, errors.Is(err, ErrMalformed))
}

func TestDecodeRejectsLengthMismatch(t *testing.T) {
	d := Datagram{Protocol: 1, Src: 1, Dest: 2, Data: []byte("hello")}
	encoded := Encode(d)

	truncated := encoded[:len(encoded)-1]
	_, err := Decode(truncated)
	require.Error(t, err)

	extended := append(encoded, 0xAA)
	_, err = Decode(extended)
	require.Error(t, err)
}

func TestDecodeRejectsBitFlip(t *testing.T) {
	d := Datagram{Protocol: 7, Src: 1, Dest: 2, Data: []byte("payload")}
	encoded := Encode(d)

	for bit := 0; bit < 8; bit++ {
		corrupted := make([]byte, len(encoded))
		copy(corrupted, encoded)
		corrupted[0] ^= 1 << uint(bit)
		_, err := Decode(corrupted)
		require.Error(t, err, "flipping bit %d of byte 0 should be detected", bit)
	}
}

func TestEqualIgnoresTime(t *testing.T) {
	a := Datagram{Protocol: 1, Src: 1, Dest: 2, Time: 10, Data: []byte("x")}
	b := Datagram{Protocol: 1, Src: 1, Dest: 2, Time: 999, Data: []byte("x")}
	require.True(t, a.Equal(b))
}
