package model

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v3"
)

func TestParseInt(t *testing.T) {
	assert.Equal(t, null.IntFrom(101), ParseInt("101"))
	assert.Equal(t, null.IntFrom(-3), ParseInt(" -3 "))
	assert.False(t, ParseInt("").Valid)
	assert.False(t, ParseInt("abc").Valid)
	assert.False(t, ParseInt("12.5").Valid)
}

func TestParseTime(t *testing.T) {
	want := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	got := ParseTime("2024-01-01T10:00:00")
	require.True(t, got.Valid)
	assert.True(t, got.Time.Equal(want))

	// HTML datetime-local inputs submit minute precision.
	got = ParseTime("2024-01-01T10:00")
	require.True(t, got.Valid)
	assert.True(t, got.Time.Equal(want))

	got = ParseTime("2024-01-01T10:00:00.250000")
	require.True(t, got.Valid)
	assert.True(t, got.Time.Equal(want.Add(250*time.Millisecond)))

	assert.False(t, ParseTime("not-a-date").Valid)
	assert.False(t, ParseTime("").Valid)
}

func TestTimeRoundTrip(t *testing.T) {
	// Serialising a timestamp and re-parsing it must recover the same instant.
	instants := []time.Time{
		time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 15, 23, 59, 59, 123456000, time.UTC),
	}
	for _, instant := range instants {
		rendered := FormatTime(null.TimeFrom(instant))
		parsed := ParseTime(rendered)
		require.True(t, parsed.Valid, "rendered %q", rendered)
		assert.True(t, parsed.Time.Equal(instant), "rendered %q", rendered)
	}
}

func TestPopulateFromJSON(t *testing.T) {
	src, err := DecodeJSON([]byte(`{
		"plate_number": "ABC123",
		"confidence": "92",
		"camera_id": "abc",
		"spot_number": 7,
		"entry_time": "2024-01-01T10:00:00",
		"exit_time": "not-a-date"
	}`))
	require.NoError(t, err)

	var tk Ticket
	Populate(&tk, src)

	assert.Equal(t, null.StringFrom("ABC123"), tk.PlateNumber)
	assert.Equal(t, null.IntFrom(92), tk.Confidence)
	assert.False(t, tk.CameraID.Valid, "invalid int coerces to null, not an error")
	assert.Equal(t, null.IntFrom(7), tk.SpotNumber, "JSON numbers coerce too")
	require.True(t, tk.EntryTime.Valid)
	assert.True(t, tk.EntryTime.Time.Equal(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)))
	assert.False(t, tk.ExitTime.Valid, "unparseable timestamp coerces to null")
	assert.False(t, tk.Status.Valid, "absent field stays untouched")
}

func TestPopulateMergePatch(t *testing.T) {
	tk := Ticket{
		ID:          3,
		Status:      null.StringFrom("open"),
		PlateNumber: null.StringFrom("ABC123"),
		Confidence:  null.IntFrom(92),
	}

	// Absent key retains the old value.
	src, err := DecodeJSON([]byte(`{"confidence": "88"}`))
	require.NoError(t, err)
	Populate(&tk, src)
	assert.Equal(t, null.StringFrom("open"), tk.Status)
	assert.Equal(t, null.IntFrom(88), tk.Confidence)
	assert.Equal(t, null.StringFrom("ABC123"), tk.PlateNumber)

	// Explicit null overwrites: present-key vs. absent-key must differ.
	src, err = DecodeJSON([]byte(`{"status": null}`))
	require.NoError(t, err)
	Populate(&tk, src)
	assert.False(t, tk.Status.Valid)
	assert.Equal(t, null.StringFrom("ABC123"), tk.PlateNumber)
}

func TestPopulateFromForm(t *testing.T) {
	tk := Ticket{
		Status:   null.StringFrom("open"),
		ZoneName: null.StringFrom("A1"),
	}
	values := url.Values{}
	values.Set("status", "")       // cleared input overwrites with null
	values.Set("camera_id", "101") // numeric coercion
	// zone_name not submitted at all

	Populate(&tk, FormSource{Values: values})

	assert.False(t, tk.Status.Valid)
	assert.Equal(t, null.IntFrom(101), tk.CameraID)
	assert.Equal(t, null.StringFrom("A1"), tk.ZoneName)
}

func TestAsMap(t *testing.T) {
	entry := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	tk := Ticket{
		ID:          5,
		PlateNumber: null.StringFrom("ABC123"),
		EntryTime:   null.TimeFrom(entry),
		CreatedAt:   time.Date(2024, 2, 2, 8, 30, 0, 0, time.UTC),
	}
	m := tk.AsMap()

	assert.Equal(t, uint64(5), m["id"])
	assert.Equal(t, "2024-01-01T10:00:00", m["entry_time"])
	assert.Equal(t, "2024-02-02T08:30:00", m["created_at"])
	assert.Nil(t, m["exit_time"], "null timestamps serialise as null")
	assert.Len(t, m, 22, "projection covers every persisted field and nothing else")
}
