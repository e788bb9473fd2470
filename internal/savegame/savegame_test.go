package savegame

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/merchant-memory/internal/model"
)

func sampleState() State {
	st := Empty()
	st.Merchants["m1"] = model.MerchantSnapshot{
		Identity:        "m1",
		DisplayName:     "Tam",
		LocationName:    "Joppa",
		Grid:            model.GridPosition{X: 2, Y: 0},
		Depth:           11,
		World:           model.WorldPosition{X: 11, Y: 22},
		PriceMultiplier: 0.37,
		LastObservedAt:  12345,
		CanRestock:      true,
		Items: []model.ItemSnapshot{
			model.NewItem("Bronze Dagger", 2, 7.25, false, "Melee Weapons"),
			model.NewItem("fresh water", 1, 0.01, true, "Water"),
		},
	}
	st.Active = model.FilterProfile{MinSpend: 3, MaxSpend: model.Unbounded, Categories: []string{"Food"}}
	st.Profiles["cheap"] = model.FilterProfile{MinSpend: 0, MaxSpend: 10, OnlyRestocking: true}
	return st
}

func TestRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	want := sampleState()
	require.NoError(t, Write(&buf, want))
	assert.True(t, strings.HasPrefix(buf.String(), FormatVersion+"\n"))

	got, recognized, err := Read(&buf)
	require.NoError(t, err)
	assert.True(t, recognized)
	assert.Equal(t, want, got)
}

func TestRoundTripEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, State{Active: model.DefaultFilterProfile()}))

	got, recognized, err := Read(&buf)
	require.NoError(t, err)
	assert.True(t, recognized)
	assert.Equal(t, Empty(), got)
}

func TestReadUnknownTag(t *testing.T) {
	for _, in := range []string{
		"",
		"version_0.4.1\n{}\n",
		"merchant-memory/v0\n{}\n{}\n{}\n",
		"merchant-memory/v1 \n{}\n{}\n{}\n",
	} {
		got, recognized, err := Read(strings.NewReader(in))
		require.NoError(t, err, "input %q", in)
		assert.False(t, recognized, "input %q", in)
		assert.Equal(t, Empty(), got)
	}
}

func TestReadCorrupt(t *testing.T) {
	_, recognized, err := Read(strings.NewReader(FormatVersion + "\n{\"m1\": [}\n"))
	assert.True(t, recognized)
	assert.ErrorIs(t, err, ErrCorrupt)

	_, _, err = Read(strings.NewReader(FormatVersion + "\n{}\n"))
	assert.ErrorIs(t, err, ErrCorrupt)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk gone") }

func TestReadIOError(t *testing.T) {
	got, recognized, err := Read(failingReader{})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCorrupt)
	assert.False(t, recognized)
	assert.Equal(t, Empty(), got)
}
