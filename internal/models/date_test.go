package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-02")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", d.String())

	_, err = ParseDate("02-01-2024")
	assert.Error(t, err)

	_, err = ParseDate("2024-1-2")
	assert.Error(t, err)

	// surrounding whitespace is tolerated
	d, err = ParseDate(" 2024-01-02 ")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", d.String())
}

func TestNewDateTruncatesToDay(t *testing.T) {
	d := NewDate(time.Date(2024, 6, 15, 23, 59, 59, 0, time.UTC))
	assert.Equal(t, "2024-06-15", d.String())

	other := NewDate(time.Date(2024, 6, 15, 0, 0, 1, 0, time.UTC))
	assert.True(t, d.Equal(other.Time))
}

func TestDateJSONRoundTrip(t *testing.T) {
	d, err := ParseDate("2024-01-02")
	require.NoError(t, err)

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-01-02"`, string(raw))

	var back Date
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, d, back)

	var zero Date
	require.NoError(t, json.Unmarshal([]byte(`null`), &zero))
	assert.True(t, zero.IsZero())
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, 3, 4, 11, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-03-04", d.String())

	require.NoError(t, d.Scan([]byte("2024-03-05")))
	assert.Equal(t, "2024-03-05", d.String())

	assert.Error(t, d.Scan(123))
}
