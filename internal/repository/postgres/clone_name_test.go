package postgres

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextCloneName(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		existing []string
		want     string
	}{
		{
			name:     "takes the max, not the count",
			base:     "Team A",
			existing: []string{"Team A", "Team A -copie(1)", "Team A -copie(3)"},
			want:     "Team A -copie(4)",
		},
		{
			name:     "only the base exists",
			base:     "Team A",
			existing: []string{"Team A"},
			want:     "Team A -copie(1)",
		},
		{
			name:     "case-insensitive match",
			base:     "team a",
			existing: []string{"TEAM A", "Team A -COPIE(7)"},
			want:     "team a -copie(8)",
		},
		{
			name:     "ignores names that merely share the prefix",
			base:     "Team A",
			existing: []string{"Team AB -copie(9)", "Team A -copie(2) old", "Team A -copie(x)"},
			want:     "Team A -copie(1)",
		},
		{
			name:     "double-digit suffix",
			base:     "Data",
			existing: []string{"Data -copie(9)", "Data -copie(10)"},
			want:     "Data -copie(11)",
		},
		{
			name:     "ignores a suffix with no successor",
			base:     "Big",
			existing: []string{"Big -copie(2)", "Big -copie(" + strconv.Itoa(math.MaxInt) + ")"},
			want:     "Big -copie(3)",
		},
		{
			name:     "ignores a suffix beyond int range",
			base:     "Big",
			existing: []string{"Big -copie(99999999999999999999999)"},
			want:     "Big -copie(1)",
		},
		{
			name:     "nothing exists",
			base:     "New",
			existing: nil,
			want:     "New -copie(1)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nextCloneName(tt.base, tt.existing))
		})
	}
}

func TestCloneNamePattern(t *testing.T) {
	assert.Equal(t, "TEAM A%", cloneNamePattern("Team A"))
	assert.Equal(t, `50\% OFF\_X%`, cloneNamePattern("50% off_x"))
}
