package qbr

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture() *Dataset {
	return NewDataset([]Record{
		{Name: "Tom Brady", Team: "NWE", Year: 2010, QBR: 80, Rate: 100},
		{Name: "Tom Brady", Team: "NWE", Year: 2011, QBR: 70, Rate: 90},
		{Name: "Tom Brady", Team: "NWE", Year: 2010, QBR: 90, Rate: 120},
		{Name: "Brian Hoyer", Team: "NWE", Year: 2010, QBR: 40, Rate: 60},
		{Name: "Drew Brees", Team: "NOR", Year: 2012, QBR: 75.5, Rate: 101.25},
		{Name: "Drew Brees", Team: "SDG", Year: 2005, QBR: 60, Rate: 89.2},
	})
}

func TestSummarize_PlayerExample(t *testing.T) {
	d := NewDataset([]Record{
		{Name: "Tom Brady", Team: "NWE", Year: 2010, QBR: 80, Rate: 100},
		{Name: "Tom Brady", Team: "NWE", Year: 2010, QBR: 90, Rate: 120},
		{Name: "Tom Brady", Team: "NWE", Year: 2011, QBR: 70, Rate: 90},
	})

	rows, err := Summarize(d, "Tom Brady", ByPlayer)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, Summary{Year: 2010, QBR: 85, PasserRating: 110, NumGames: 2, NumQBs: 1}, rows[0])
	assert.Equal(t, Summary{Year: 2011, QBR: 70, PasserRating: 90, NumGames: 1, NumQBs: 1}, rows[1])
}

func TestSummarize_NoSelection(t *testing.T) {
	for _, mode := range []Mode{ByPlayer, ByTeam} {
		rows, err := Summarize(fixture(), "", mode)
		require.NoError(t, err)
		assert.NotNil(t, rows)
		assert.Empty(t, rows)
	}
}

func TestSummarize_UnknownKey(t *testing.T) {
	rows, err := Summarize(fixture(), "Joe Nobody", ByPlayer)
	require.NoError(t, err)
	assert.Empty(t, rows)

	// matching is exact and case-sensitive
	rows, err = Summarize(fixture(), "tom brady", ByPlayer)
	require.NoError(t, err)
	assert.Empty(t, rows)

	rows, err = Summarize(fixture(), "NW", ByTeam)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSummarize_EmptyDataset(t *testing.T) {
	rows, err := Summarize(NewDataset(nil), "Tom Brady", ByPlayer)
	require.NoError(t, err)
	assert.Empty(t, rows)

	rows, err = Summarize(nil, "Tom Brady", ByPlayer)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSummarize_InvalidMode(t *testing.T) {
	_, err := Summarize(fixture(), "Tom Brady", Mode(42))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	_, err = Summarize(fixture(), "", Mode(0))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSummarize_AscendingUniqueYears(t *testing.T) {
	d := fixture()
	keys := map[Mode][]string{}
	var err error
	for _, mode := range []Mode{ByPlayer, ByTeam} {
		keys[mode], err = d.Keys(mode)
		require.NoError(t, err)
	}

	for mode, ks := range keys {
		for _, k := range ks {
			rows, err := Summarize(d, k, mode)
			require.NoError(t, err)
			require.NotEmpty(t, rows, "%s %q", mode, k)
			for i := 1; i < len(rows); i++ {
				assert.Less(t, rows[i-1].Year, rows[i].Year, "%s %q", mode, k)
			}
		}
	}
}

func TestSummarize_Idempotent(t *testing.T) {
	d := fixture()
	a, err := Summarize(d, "NWE", ByTeam)
	require.NoError(t, err)
	b, err := Summarize(d, "NWE", ByTeam)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSummarize_TeamCounts(t *testing.T) {
	rows, err := Summarize(fixture(), "NWE", ByTeam)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 2010, rows[0].Year)
	assert.Equal(t, 3, rows[0].NumGames)
	assert.Equal(t, 2, rows[0].NumQBs)
	assert.Equal(t, 70.0, rows[0].QBR)
	assert.Equal(t, 93.33, rows[0].PasserRating)

	assert.Equal(t, 2011, rows[1].Year)
	assert.Equal(t, 1, rows[1].NumGames)
	assert.Equal(t, 1, rows[1].NumQBs)
}

func TestSummarize_PlayerAcrossTeams(t *testing.T) {
	rows, err := Summarize(fixture(), "Drew Brees", ByPlayer)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 2005, rows[0].Year)
	assert.Equal(t, 2012, rows[1].Year)
	assert.Equal(t, 101.25, rows[1].PasserRating)
}

func TestSummarize_MissingValues(t *testing.T) {
	d := NewDataset([]Record{
		{Name: "Kyle Orton", Team: "DEN", Year: 2009, QBR: math.NaN(), Rate: 80},
		{Name: "Kyle Orton", Team: "DEN", Year: 2009, QBR: 50, Rate: math.NaN()},
		{Name: "Kyle Orton", Team: "DEN", Year: 2010, QBR: math.NaN(), Rate: math.NaN()},
	})

	rows, err := Summarize(d, "Kyle Orton", ByPlayer)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 50.0, rows[0].QBR)
	assert.Equal(t, 80.0, rows[0].PasserRating)
	assert.Equal(t, 1, rows[0].NumGames)

	assert.True(t, math.IsNaN(rows[1].QBR))
	assert.True(t, math.IsNaN(rows[1].PasserRating))
	assert.Equal(t, 0, rows[1].NumGames)
	assert.Equal(t, 1, rows[1].NumQBs)
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
		str  string
	}{
		{87.4951, 87.5, "87.50"},
		{85, 85, "85.00"},
		{93.333333, 93.33, "93.33"},
		{0.125, 0.12, "0.12"},
		{0.375, 0.38, "0.38"},
		{158.3, 158.3, "158.30"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Round2(tt.in), "Round2(%v)", tt.in)
		assert.Equal(t, tt.str, Format2(tt.in), "Format2(%v)", tt.in)
	}
	assert.Equal(t, "nan", Format2(math.NaN()))
	assert.True(t, math.IsNaN(Round2(math.NaN())))
}

func TestRoundingFidelity_TableAndChartAgree(t *testing.T) {
	d := NewDataset([]Record{
		{Name: "A B", Team: "X", Year: 2020, QBR: 87.4902, Rate: 100},
		{Name: "A B", Team: "X", Year: 2020, QBR: 87.5000, Rate: 100},
	})
	rows, err := Summarize(d, "A B", ByPlayer)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	table := NewTable(rows, ByPlayer)
	chart := NewChart(rows)
	assert.Equal(t, "87.50", table.Rows[0].QBR)
	require.NotNil(t, chart[0].QBR)
	assert.Equal(t, 87.5, *chart[0].QBR)
	assert.Equal(t, "100.00", table.Rows[0].PasserRating)
}

func TestSummary_JSONNaN(t *testing.T) {
	in := []Summary{
		{Year: 2010, QBR: 85, PasserRating: 110, NumGames: 2, NumQBs: 1},
		{Year: 2011, QBR: math.NaN(), PasserRating: 90, NumGames: 1, NumQBs: 1},
	}
	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"qbr":null`)

	var out []Summary
	require.NoError(t, json.Unmarshal(b, &out))
	require.Len(t, out, 2)
	assert.Equal(t, in[0], out[0])
	assert.True(t, math.IsNaN(out[1].QBR))
	assert.Equal(t, 90.0, out[1].PasserRating)
}
