package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNormalizeLimit(t *testing.T) {
	require.Equal(t, DefaultLimit, NormalizeLimit(0))
	require.Equal(t, DefaultLimit, NormalizeLimit(-3))
	require.Equal(t, 10, NormalizeLimit(10))
	require.Equal(t, MaxLimit, NormalizeLimit(MaxLimit+1))
}

func TestCursorRoundTrip(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 30, 0, 123, time.UTC)
	encoded := EncodeCursor(Cursor{Timestamp: ts, ID: "ORD-123456789"})

	decoded, err := ParseCursor(encoded)
	require.NoError(t, err)
	require.True(t, decoded.Timestamp.Equal(ts))
	require.Equal(t, "ORD-123456789", decoded.ID)
}

func TestParseCursorRejectsGarbage(t *testing.T) {
	cursor, err := ParseCursor("")
	require.NoError(t, err)
	require.Nil(t, cursor)

	_, err = ParseCursor("not base64!")
	require.Error(t, err)

	_, err = ParseCursor(EncodeCursor(Cursor{Timestamp: time.Now()})[:4])
	require.Error(t, err)
}
