package chart

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/chatstat/internal/stats"
)

func TestSenders(t *testing.T) {
	c := Senders([]stats.SenderStats{
		{Sender: "alice", Messages: 2, Words: 5},
		{Sender: "bob", Messages: 1, Words: 1},
	})

	require.Equal(t, Bar, c.Kind)
	require.Equal(t, SendersFile, c.Filename)
	require.Equal(t, []string{"alice", "bob"}, c.Categories)
	require.Equal(t, []Series{
		{Label: "Messages", Values: []float64{2, 1}},
		{Label: "Words", Values: []float64{5, 1}},
	}, c.Series)
	require.NoError(t, c.validate())
}

func TestActivity(t *testing.T) {
	c := Activity([]stats.Bucket{{Key: "09", Count: 3}, {Key: "10", Count: 1}}, stats.Hour)

	require.Equal(t, Area, c.Kind)
	require.Equal(t, ActivityFile, c.Filename)
	require.Equal(t, "Time [hour]", c.XLabel)
	require.Equal(t, []string{"09", "10"}, c.Categories)
	require.Equal(t, []float64{3, 1}, c.Series[0].Values)
}

func TestChart_EmptyFailsValidation(t *testing.T) {
	c := Activity(nil, stats.Hour)

	require.True(t, c.Empty())
	require.ErrorIs(t, c.validate(), ErrEmptyChart)
}

func TestChart_MismatchedSeries(t *testing.T) {
	c := Chart{Title: "x", Categories: []string{"a"}, Series: []Series{{Label: "s", Values: []float64{1, 2}}}}
	require.Error(t, c.validate())
}

func TestParseOutputMode(t *testing.T) {
	m, err := ParseOutputMode("display")
	require.NoError(t, err)
	require.Equal(t, Display, m)

	m, err = ParseOutputMode("1")
	require.NoError(t, err)
	require.Equal(t, SaveToFile, m)

	_, err = ParseOutputMode("2")
	require.ErrorIs(t, err, ErrInvalidOutputMode)
}

func TestOutputMode_FlagValue(t *testing.T) {
	var m OutputMode
	require.NoError(t, m.Set("save"))
	require.Equal(t, SaveToFile, m)
	require.Equal(t, "save", m.String())
	require.ErrorIs(t, m.Set("print"), ErrInvalidOutputMode)
}
