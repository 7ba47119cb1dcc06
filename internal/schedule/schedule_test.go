package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTemplate(t *testing.T) {
	tpl := Default()

	want := []string{
		"08:00", "09:00", "10:00", "11:00", "12:00", "13:00",
		"14:00", "15:00", "16:00", "17:00", "18:00", "19:00",
	}
	assert.Equal(t, want, tpl.SlotTimes())
}

func TestNewTemplate(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		step    time.Duration
		want    []string
		wantErr error
	}{
		{
			name:  "half day, 30 minute slots",
			start: "09:00",
			end:   "11:00",
			step:  30 * time.Minute,
			want:  []string{"09:00", "09:30", "10:00", "10:30", "11:00"},
		},
		{
			name:  "single slot",
			start: "08:00",
			end:   "08:00",
			step:  time.Hour,
			want:  []string{"08:00"},
		},
		{
			name:    "start after end",
			start:   "18:00",
			end:     "08:00",
			step:    time.Hour,
			wantErr: ErrInvalidBounds,
		},
		{
			name:    "sub-minute step",
			start:   "08:00",
			end:     "09:00",
			step:    30 * time.Second,
			wantErr: ErrInvalidStep,
		},
		{
			name:    "bad label",
			start:   "25:00",
			end:     "26:00",
			step:    time.Hour,
			wantErr: ErrUnknownSlot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl, err := New(tt.start, tt.end, tt.step, time.UTC)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, tpl.SlotTimes())
		})
	}
}

func TestSlotInstant(t *testing.T) {
	tpl := Default()

	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	got, err := tpl.SlotInstant(day, "09:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC), got)

	// Any instant within the day selects the same calendar day.
	late := time.Date(2024, 6, 10, 23, 45, 12, 0, time.UTC)
	got, err = tpl.SlotInstant(late, "19:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 10, 19, 0, 0, 0, time.UTC), got)

	_, err = tpl.SlotInstant(day, "not-a-time")
	require.ErrorIs(t, err, ErrUnknownSlot)
}

func TestSlotInstantHonorsTimezone(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	tpl, err := New("08:00", "19:00", time.Hour, loc)
	require.NoError(t, err)

	day := time.Date(2024, 6, 10, 0, 0, 0, 0, loc)
	got, err := tpl.SlotInstant(day, "08:00")
	require.NoError(t, err)

	assert.Equal(t, loc, got.Location())
	assert.Equal(t, 8, got.Hour())
}

func TestAligns(t *testing.T) {
	tpl := Default()

	ok := time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC)
	assert.True(t, tpl.Aligns(ok))

	offGrid := time.Date(2024, 6, 10, 14, 30, 0, 0, time.UTC)
	assert.False(t, tpl.Aligns(offGrid))

	withSeconds := time.Date(2024, 6, 10, 14, 0, 30, 0, time.UTC)
	assert.False(t, tpl.Aligns(withSeconds))

	beforeOpening := time.Date(2024, 6, 10, 7, 0, 0, 0, time.UTC)
	assert.False(t, tpl.Aligns(beforeOpening))
}

func TestDayBounds(t *testing.T) {
	tpl := Default()

	probe := time.Date(2024, 6, 10, 15, 42, 7, 0, time.UTC)
	start, end := tpl.DayBounds(probe)

	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), start)
	assert.True(t, end.After(time.Date(2024, 6, 10, 23, 59, 58, 0, time.UTC)))
	assert.True(t, end.Before(time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)))
}
