package journal

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDynamicKeys(t *testing.T) {
	n, ok := DynamicIndex("customField_12")
	require.True(t, ok)
	assert.Equal(t, 12, n)

	_, ok = DynamicIndex("customField_12_title")
	assert.False(t, ok)
	_, ok = DynamicIndex("whatWentWell")
	assert.False(t, ok)
	_, ok = DynamicIndex("customField_abc")
	assert.False(t, ok)

	assert.Equal(t, "customField_3", DynamicKey(3))
	assert.Equal(t, 0, NextDynamicIndex(nil))
	assert.Equal(t, 6, NextDynamicIndex([]string{"customField_0", "customField_5", "customField_2"}))
	assert.Equal(t, "customField_0", NextDynamicKey(nil))
	assert.Equal(t, "customField_4", NextDynamicKey([]string{"customField_3", "whatWentWell"}))

	assert.Equal(t, "nextStep", TitleKey("nextStep"))
	assert.Equal(t, "customField_0_title", TitleKey("customField_0"))
}

func TestEntry_KeysOrder(t *testing.T) {
	e := Entry{DynamicFields: map[string]string{
		"customField_10": "ten",
		"customField_2":  "two",
		"customField_x":  "odd",
		"customField_0":  "zero",
	}}

	assert.Equal(t, []string{
		KeyWhatWentWell, KeyWhatILearned, KeyWhatWouldDoDifferently, KeyNextStep,
		"customField_0", "customField_2", "customField_10", "customField_x",
	}, e.Keys())
}

func TestEntry_SetValueAndRemoveField(t *testing.T) {
	var e Entry
	e.SetValue(KeyNextStep, "ship it")
	e.SetValue("customField_0", "wins")
	e.SetTitle("customField_0", "Wins")

	assert.Equal(t, "ship it", e.NextStep)
	assert.Equal(t, "wins", e.Value("customField_0"))
	assert.Equal(t, "Wins", e.CustomTitles["customField_0_title"])

	e.RemoveField("customField_0")
	assert.NotContains(t, e.DynamicFields, "customField_0")
	assert.NotContains(t, e.CustomTitles, "customField_0_title")
}

func TestEntry_IsBlankAndClearValues(t *testing.T) {
	e := Entry{WhatWentWell: "   ", DynamicFields: map[string]string{"customField_0": "\n"}}
	assert.True(t, e.IsBlank())

	e.SetValue("customField_0", "x")
	assert.False(t, e.IsBlank())

	e.SetTitle("customField_0", "Extra")
	e.ClearValues()
	assert.True(t, e.IsBlank())
	assert.Contains(t, e.DynamicFields, "customField_0", "keys survive clearing")
	assert.Equal(t, "Extra", e.CustomTitles["customField_0_title"])
}

func TestEntry_UnmarshalJSON_Canonical(t *testing.T) {
	in := Entry{
		Timestamp:     1755129600000,
		WhatWentWell:  "shipped",
		DynamicFields: map[string]string{"customField_0": "slept well"},
		CustomTitles:  map[string]string{"customField_0_title": "Health"},
		UserGoal:      "get hired",
	}
	b, err := json.Marshal(in)
	require.NoError(t, err)

	var out Entry
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, in, out)
}

func TestEntry_UnmarshalJSON_LegacyFlatRecord(t *testing.T) {
	raw := `{
		"timestamp": 1755129600000,
		"whatWentWell": "demo went fine",
		"whatWentWell_title": "Highlights",
		"customField_0": "ran 5k",
		"customField_0_title": "Wins",
		"userGoal": "grow network"
	}`

	var e Entry
	require.NoError(t, json.Unmarshal([]byte(raw), &e))

	assert.Equal(t, "demo went fine", e.WhatWentWell)
	assert.Equal(t, "ran 5k", e.DynamicFields["customField_0"])
	assert.Equal(t, "Highlights", e.CustomTitles["whatWentWell"])
	assert.Equal(t, "Wins", e.CustomTitles["customField_0_title"])
	assert.Equal(t, "grow network", e.UserGoal)
}

func TestEntry_UnmarshalJSON_NestedTitleWins(t *testing.T) {
	raw := `{
		"timestamp": 1,
		"customField_1": "v",
		"customField_1_title": "Flat",
		"customTitles": {"customField_1_title": "Nested"}
	}`

	var e Entry
	require.NoError(t, json.Unmarshal([]byte(raw), &e))
	assert.Equal(t, "Nested", e.CustomTitles["customField_1_title"])
}

func TestEntry_UnmarshalJSON_ValuesParkedInCustomTitles(t *testing.T) {
	raw := `{
		"timestamp": 1,
		"customTitles": {"customField_0": "value", "customField_0_title": "Title", "nextStep": "Next?"}
	}`

	var e Entry
	require.NoError(t, json.Unmarshal([]byte(raw), &e))
	assert.Equal(t, map[string]string{"customField_0": "value"}, e.DynamicFields)
	assert.Equal(t, map[string]string{"customField_0_title": "Title", "nextStep": "Next?"}, e.CustomTitles)
}

func TestEntry_UnmarshalJSON_Malformed(t *testing.T) {
	var e Entry
	require.Error(t, json.Unmarshal([]byte(`{"timestamp": "soon"`), &e))
}
