package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatGameDate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "utc timestamp", raw: "2024-03-05T19:30:00Z", want: "05/03/2024"},
		{name: "fractional seconds", raw: "2018-10-16T00:00:00.000Z", want: "16/10/2018"},
		{name: "no zone", raw: "2024-03-05T19:30:00", want: "05/03/2024"},
		{name: "offset", raw: "2024-03-05T23:30:00+02:00", want: "05/03/2024"},
		{name: "minutes only", raw: "2024-03-05T19:30", want: "05/03/2024"},
		{name: "space separator", raw: "2024-03-05 19:30:00", want: "05/03/2024"},
		{name: "date only", raw: "2024-03-05", want: "05/03/2024"},
		{name: "garbage", raw: "not-a-date", want: "not-a-date"},
		{name: "empty", raw: "", want: ""},
		{name: "just Z", raw: "Z", want: "Z"},
		{name: "invalid month", raw: "2024-13-05", want: "2024-13-05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatGameDate(tt.raw))
		})
	}
}
