package maze

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameJSONUsesNames(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Policy = PolicyFixedList
	s := newState(t, cfg)

	data, err := json.Marshal(s.Frame())
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.Contains(text, `"wall"`))
	assert.True(t, strings.Contains(text, `"phase":"playing"`))
	assert.True(t, strings.Contains(text, `"policy":"fixed"`))

	var back Frame
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, s.Frame(), back)
}

func TestEventJSONKind(t *testing.T) {
	data, err := json.Marshal(Event{Kind: EventCollided, ObstacleID: 2, Position: Pos(3, 4)})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"kind":"collided"`)

	var back Event
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, EventCollided, back.Kind)
	assert.Equal(t, 2, back.ObstacleID)

	assert.Error(t, json.Unmarshal([]byte(`{"kind":"exploded"}`), &back))
}

func TestFrameRows(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GridSize = 4
	s := newState(t, cfg)

	assert.Equal(t, []string{
		"####",
		"@..#",
		"#..E",
		"####",
	}, s.Frame().Rows())
}
