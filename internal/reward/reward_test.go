package reward

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRewards(t *testing.T) {
	r, err := Parse("3k, 4o,pw")
	require.NoError(t, err)
	assert.Equal(t, []Reward{{3, Knowledge}, {4, Ore}, {1, ChargePW}}, r)

	r, err = Parse("")
	require.NoError(t, err)
	assert.Empty(t, r)

	r, err = Parse("-2c")
	require.NoError(t, err)
	assert.Equal(t, -2, r[0].Count)
}

func TestParseRejectsUnknownToken(t *testing.T) {
	_, err := Parse("3k,2zz")
	require.Error(t, err)
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "2zz", pe.Token)

	_, err = Parse("3~")
	assert.Error(t, err)
}

func TestRewardRoundTrip(t *testing.T) {
	cases := map[string]string{
		"3k,4o,1pw":    "3k,4o,1pw",
		"k, o":         "1k,1o",
		"~":            "~",
		"up-terra":     "1up-terra",
		"2lost-planet": "2lost-planet",
		"-1t":          "-1t",
	}
	for in, want := range cases {
		got, err := Canonical(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)

		again, err := Canonical(got)
		require.NoError(t, err)
		assert.Equal(t, got, again, "canonical form must be stable")
	}
}

func TestMergeAndCount(t *testing.T) {
	merged := Merge(MustParse("1o,2c"), MustParse("1o,~,-2c,3k"))
	assert.Equal(t, "2o,3k", Join(merged))
	assert.Equal(t, 3, Count(MustParse("1k,2k,1o"), Knowledge))
	assert.True(t, Equal(MustParse("1o,1o"), MustParse("2o")))
	assert.Equal(t, "-1o,-2c", Join(Negate(MustParse("1o,2c"))))
	assert.Equal(t, "3o", Join(Scale(MustParse("1o"), 3)))
}

func TestParseEvent(t *testing.T) {
	cases := []struct {
		in   string
		want Event
		out  string
	}{
		{"+1o,1k", Event{Operator: Income, Rewards: MustParse("1o,1k")}, "+1o,1k"},
		{"m >> 2vp", Event{Condition: CondMine, Operator: Trigger, Rewards: MustParse("2vp")}, "m>>2vp"},
		{"=> 4pw !", Event{Operator: Activate, Rewards: MustParse("4pw"), Activated: true}, "=>4pw!"},
		{"ts | 2vp", Event{Condition: CondTradingStation, Operator: Pass, Rewards: MustParse("2vp")}, "ts|2vp"},
		{"PA=>4pw", Event{Condition: CondBigBuilding, Operator: Activate, Rewards: MustParse("4pw")}, "PA=>4pw"},
		{"pt 1k", Event{Condition: CondPlanetType, Rewards: MustParse("1k")}, "pt 1k"},
		{"7vp", Event{Rewards: MustParse("7vp")}, "7vp"},
		{"o, q", Event{Rewards: MustParse("1o,1q")}, "1o,1q"},
		{"...4pw", Event{Operator: Special, Rewards: MustParse("4pw")}, "...4pw"},
	}
	for _, c := range cases {
		e, err := ParseEvent(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, e, c.in)
		assert.Equal(t, c.out, e.String(), c.in)

		again, err := CanonicalEvent(e.String())
		require.NoError(t, err)
		assert.Equal(t, c.out, again)
	}
}

func TestParseEventErrors(t *testing.T) {
	for _, in := range []string{"xx>>2vp", "m>>2zz", "foo 1k"} {
		_, err := ParseEvent(in)
		var pe *ParseError
		assert.True(t, errors.As(err, &pe), in)
	}
}

func TestParseEventsList(t *testing.T) {
	events, err := ParseEvents("+1o; m>>2vp ;")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, Trigger, events[1].Operator)

	stamped := WithSource(events, "booster:booster1")
	assert.Equal(t, "booster:booster1", stamped[0].Source)
	assert.Empty(t, events[0].Source)
}
