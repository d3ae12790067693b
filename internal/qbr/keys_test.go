package qbr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeys_PlayersBySurname(t *testing.T) {
	d := NewDataset([]Record{
		{Name: "Tom Brady", Team: "NWE", Year: 2010},
		{Name: "Aaron Rodgers", Team: "GNB", Year: 2010},
		{Name: "Drew Brees", Team: "NOR", Year: 2010},
		{Name: "Tom Brady", Team: "TAM", Year: 2020},
		{Name: "Josh Allen", Team: "BUF", Year: 2020},
		{Name: "Kyle Allen", Team: "CAR", Year: 2020},
	})

	players, err := d.Keys(ByPlayer)
	require.NoError(t, err)
	// ties on surname keep first-appearance order
	assert.Equal(t, []string{"Josh Allen", "Kyle Allen", "Tom Brady", "Drew Brees", "Aaron Rodgers"}, players)

	teams, err := d.Keys(ByTeam)
	require.NoError(t, err)
	assert.Equal(t, []string{"BUF", "CAR", "GNB", "NOR", "NWE", "TAM"}, teams)
}

func TestKeys_SingleTokenName(t *testing.T) {
	d := NewDataset([]Record{
		{Name: "Tom Brady", Team: "NWE"},
		{Name: "Alpha", Team: "NWE"},
	})
	players, err := d.Keys(ByPlayer)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha", "Tom Brady"}, players)
}

func TestKeys_ReturnsCopy(t *testing.T) {
	d := fixture()
	teams, err := d.Keys(ByTeam)
	require.NoError(t, err)
	teams[0] = "mutated"

	again, err := d.Keys(ByTeam)
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", again[0])
}

func TestKeys_InvalidMode(t *testing.T) {
	_, err := fixture().Keys(Mode(9))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestHasKey(t *testing.T) {
	d := fixture()
	assert.True(t, d.HasKey("Tom Brady", ByPlayer))
	assert.True(t, d.HasKey("SDG", ByTeam))
	assert.False(t, d.HasKey("SDG", ByPlayer))
	assert.False(t, d.HasKey("", ByTeam))
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"player", ByPlayer},
		{"qb", ByPlayer},
		{"Team", ByTeam},
		{" team ", ByTeam},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseMode("coach")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = ParseMode("")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDataset_RecordsIsolated(t *testing.T) {
	src := []Record{{Name: "Tom Brady", Team: "NWE", Year: 2010, QBR: 80, Rate: 100}}
	d := NewDataset(src)
	src[0].Name = "changed"

	got := d.Records()
	assert.Equal(t, "Tom Brady", got[0].Name)
	got[0].Name = "changed again"
	assert.Equal(t, "Tom Brady", d.Records()[0].Name)
	assert.Equal(t, 1, d.Len())
}
