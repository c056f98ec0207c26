package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "noon", input: "12:00"},
		{name: "midnight", input: "00:00"},
		{name: "end of day", input: "23:59"},
		{name: "missing leading zero", input: "9:00", wantErr: true},
		{name: "hours out of range", input: "24:00", wantErr: true},
		{name: "garbage", input: "noon", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, ts.String())
		})
	}
}

func TestTimeString_Arithmetic(t *testing.T) {
	arrival := TimeString("12:30")
	departure := TimeString("15:00")

	assert.Equal(t, 12, arrival.Hour())
	assert.Equal(t, 30, arrival.Minute())
	assert.Equal(t, 750, arrival.Minutes())
	assert.Equal(t, 150, arrival.MinutesUntil(departure))
	assert.True(t, arrival.IsBefore(departure))
	assert.True(t, departure.IsAfter(arrival))
	assert.False(t, arrival.IsAfter(arrival))
}

func TestTimeString_UnmarshalText(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.UnmarshalText([]byte("19:00")))
	assert.Equal(t, TimeString("19:00"), ts)

	assert.Error(t, ts.UnmarshalText([]byte("7pm")))
}

func TestNewTimeString(t *testing.T) {
	moment := time.Date(2025, 3, 1, 18, 45, 10, 0, time.UTC)
	assert.Equal(t, TimeString("18:45"), NewTimeString(moment))
}
