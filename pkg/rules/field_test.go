package rules_test

import (
	"encoding/json"
	"testing"

	"github.com/go-viper/mapstructure/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/outparse/pkg/rules"
)

func TestFieldRule_JSON(t *testing.T) {
	var ap rules.ArrayPattern
	doc := `{
		"key_pattern": "^storagecontrollername(\\d+)$",
		"fields": {
			"name": "value",
			"port": {"key": "storagecontrollerportcount\\1", "transform": "number", "optional": true},
			"index": {"group": 1}
		}
	}`
	require.NoError(t, json.Unmarshal([]byte(doc), &ap))

	assert.True(t, ap.Fields["name"].IsSimple())
	assert.Equal(t, "value", ap.Fields["name"].Simple)

	port := ap.Fields["port"]
	require.False(t, port.IsSimple())
	assert.Equal(t, `storagecontrollerportcount\1`, port.Complex.Key)
	assert.Equal(t, "number", port.Complex.Transform)
	assert.True(t, port.Complex.Optional)

	index := ap.Fields["index"]
	require.NotNil(t, index.Complex)
	require.NotNil(t, index.Complex.Group)
	assert.Equal(t, 1, *index.Complex.Group)

	out, err := json.Marshal(ap.Fields["name"])
	require.NoError(t, err)
	assert.JSONEq(t, `"value"`, string(out))

	out, err = json.Marshal(rules.GroupField(2, "number"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"group": 2, "transform": "number"}`, string(out))
}

func TestFieldRule_JSONRejectsOtherShapes(t *testing.T) {
	var f rules.FieldRule
	assert.Error(t, json.Unmarshal([]byte(`[1, 2]`), &f))
}

func TestFieldRule_YAML(t *testing.T) {
	doc := `
key_pattern: '^disk(\d+)$'
fields:
  path: value
  size:
    key: 'disksize\1'
    transform: number
`
	var ap rules.ArrayPattern
	require.NoError(t, yaml.Unmarshal([]byte(doc), &ap))

	assert.Equal(t, rules.SimpleField("value"), ap.Fields["path"])
	require.NotNil(t, ap.Fields["size"].Complex)
	assert.Equal(t, `disksize\1`, ap.Fields["size"].Complex.Key)
	assert.Equal(t, "number", ap.Fields["size"].Complex.Transform)

	var bad rules.FieldRule
	assert.Error(t, yaml.Unmarshal([]byte("[a, b]"), &bad))
}

func TestFieldRuleHookFunc(t *testing.T) {
	input := map[string]interface{}{
		"key_pattern": `^nic(\d+)$`,
		"fields": map[string]interface{}{
			"type":  "value",
			"mac":   map[string]interface{}{"key": `macaddress\1`, "transform": "mac"},
			"index": map[string]interface{}{"group": "1"},
		},
	}

	var ap rules.ArrayPattern
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &ap,
		TagName:          "koanf",
		WeaklyTypedInput: true,
		DecodeHook:       rules.FieldRuleHookFunc("koanf"),
	})
	require.NoError(t, err)
	require.NoError(t, decoder.Decode(input))

	assert.Equal(t, `^nic(\d+)$`, ap.KeyPattern)
	assert.Equal(t, rules.SimpleField("value"), ap.Fields["type"])
	assert.Equal(t, "mac", ap.Fields["mac"].Complex.Transform)
	require.NotNil(t, ap.Fields["index"].Complex.Group)
	assert.Equal(t, 1, *ap.Fields["index"].Complex.Group)
}

func TestFieldRuleHookFunc_UnknownKey(t *testing.T) {
	input := map[string]interface{}{
		"fields": map[string]interface{}{
			"mac": map[string]interface{}{"kye": "typo"},
		},
	}

	var ap rules.ArrayPattern
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     &ap,
		TagName:    "koanf",
		DecodeHook: rules.FieldRuleHookFunc("koanf"),
	})
	require.NoError(t, err)
	assert.Error(t, decoder.Decode(input))
}

func TestFieldRule_String(t *testing.T) {
	assert.Equal(t, "value", rules.SimpleField("value").String())
	assert.Equal(t, `key=a\1`, rules.KeyField(`a\1`, "", false).String())
	assert.Equal(t, "group=2", rules.GroupField(2, "").String())
}
