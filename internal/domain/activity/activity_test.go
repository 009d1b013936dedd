package activity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyMatchesKeywords(t *testing.T) {
	cases := []struct {
		input string
		want  Type
	}{
		{"I'm going hiking", Hiking},
		{"planning a BEACH holiday", Vacation},
		{"fishing by the river this weekend", Fishing},
		{"family picnic", Picnic},
		{"a soccer match", Sports},
		{"pitching a tent", Camping},
	}
	for _, tc := range cases {
		got, ok := Classify(tc.input)
		require.True(t, ok, tc.input)
		require.Equal(t, tc.want, got, tc.input)
	}
}

func TestClassifyNoMatch(t *testing.T) {
	_, ok := Classify("knitting indoors")
	require.False(t, ok)
}

func TestClassifyAmbiguousPrefersDeclaredOrder(t *testing.T) {
	// "beach trip" (vacation) and "hike" both match; vacation is declared first.
	got, ok := Classify("a beach trip with a short hike")
	require.True(t, ok)
	require.Equal(t, Vacation, got)
}

func TestParse(t *testing.T) {
	got, ok := Parse(" Camping ")
	require.True(t, ok)
	require.Equal(t, Camping, got)

	_, ok = Parse("skydiving")
	require.False(t, ok)
}

func TestEveryActivityHasLabelAndAdjustment(t *testing.T) {
	for _, act := range All {
		require.True(t, act.Valid())
		require.NotEmpty(t, act.Label())
		require.NotEmpty(t, act.Emoji())
		require.NotEmpty(t, keywords[act])
	}
	require.Equal(t, RiskAdjustment{Hot: 10, Windy: 15, Wet: 30}, Picnic.Adjustment())
	require.Equal(t, RiskAdjustment{Hot: 15, Cold: 10, Windy: 10, Wet: 20}, Hiking.Adjustment())
}
