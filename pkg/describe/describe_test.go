package describe_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/outparse/pkg/actions"
	"github.com/arthur-debert/outparse/pkg/describe"
	"github.com/arthur-debert/outparse/pkg/rules"
	"github.com/arthur-debert/outparse/pkg/tableformat"
)

func TestAction_Object(t *testing.T) {
	def := actions.Modern("get_vm", "VBoxManage showvminfo {vm_name}", &rules.RuleSet{
		Mode: rules.ModeObject,
		Patterns: map[string]rules.PatternRule{
			"name":      {Regex: `Name:\s+(.+)`},
			"memory_mb": {Regex: `Memory size:\s+(\d+)MB`, Transform: "number"},
			"parent":    {Regex: `Parent:\s+(a|b)`, Optional: true},
			"networks": {
				Regex:      `NIC (\d+):\s+(.+)`,
				MultiMatch: true,
				Object: map[string]rules.ObjectFieldRule{
					"index": {Group: 1, Transform: "number"},
					"type":  {Group: 2},
				},
			},
		},
	})
	def.Params = []string{"vm_name"}

	md := describe.Action(def, nil)

	assert.Contains(t, md, "# get_vm\n")
	assert.Contains(t, md, "Command: `VBoxManage showvminfo {vm_name}`")
	assert.Contains(t, md, "Parameters: `vm_name`")
	assert.Contains(t, md, "Mode: **object**")
	assert.Contains(t, md, "| name | `Name:\\s+(.+)` | 1 | - | - |")
	assert.Contains(t, md, "| memory_mb | `Memory size:\\s+(\\d+)MB` | 1 | number | - |")
	assert.Contains(t, md, "| parent | `Parent:\\s+(a\\|b)` | 1 | - | optional |")
	assert.Contains(t, md, "| networks | `NIC (\\d+):\\s+(.+)` | - | - | all matches |")
	assert.Contains(t, md, "### networks elements")
	assert.Contains(t, md, "| index | 1 | number | no |")
	assert.NotContains(t, md, "## Problems")
}

func TestAction_Array(t *testing.T) {
	def := actions.Modern("list_disks", "VBoxManage list hdds", &rules.RuleSet{
		Mode:     rules.ModeArray,
		Patterns: map[string]rules.PatternRule{"id": {Regex: `UUID:\s+(.+)`}},
	})

	md := describe.Action(def, nil)
	assert.Contains(t, md, "Blocks are separated by `\\n\\n`.")
	assert.Contains(t, md, "| id |")
}

func TestAction_Properties(t *testing.T) {
	def := actions.Modern("get_vm_machine", "VBoxManage showvminfo --machinereadable", &rules.RuleSet{
		Mode: rules.ModeProperties,
		Mappings: map[string]rules.MappingRule{
			"state": {Key: "VMState"},
		},
		ArrayPatterns: map[string]rules.ArrayPattern{
			"nics": {
				KeyPattern: `^nic(\d+)$`,
				Fields: map[string]rules.FieldRule{
					"type":  rules.SimpleField("value"),
					"index": rules.GroupField(1, "number"),
					"mac":   rules.KeyField(`macaddress\1`, "mac", true),
				},
			},
		},
	})

	md := describe.Action(def, nil)
	assert.Contains(t, md, "Properties are read with `"+rules.DefaultPropertyPattern+"`.")
	assert.Contains(t, md, "| state | VMState | - |")
	assert.Contains(t, md, "## nics")
	assert.Contains(t, md, "One element per property matching `^nic(\\d+)$`.")
	assert.Contains(t, md, "| type | value | - | no |")
	assert.Contains(t, md, "| index | `group=1` | number | no |")
	assert.Contains(t, md, "| mac | `key=macaddress\\1` | mac | yes |")
}

func TestAction_Table(t *testing.T) {
	catalog, err := tableformat.New(map[string]rules.TableFormat{
		"lxc_ls": {Headers: []string{"NAME", "STATE"}, SkipLines: 1},
		"pipes":  {Headers: []string{"A"}, Delimiter: "|"},
	})
	require.NoError(t, err)

	def := actions.Modern("list_containers", "lxc-ls --fancy", &rules.RuleSet{
		Mode:         rules.ModeTable,
		FormatName:   "lxc_ls",
		Transformers: map[string]string{"STATE": "boolean"},
	})

	md := describe.Action(def, catalog)
	assert.Contains(t, md, "Table format: `lxc_ls`")
	assert.Contains(t, md, "- Columns: `NAME`, `STATE`")
	assert.Contains(t, md, "- Delimiter: whitespace")
	assert.Contains(t, md, "- Skipped lines: 1")
	assert.Contains(t, md, "| STATE | boolean |")

	def.RuleSet.FormatName = "pipes"
	def.RuleSet.Transformers = nil
	md = describe.Action(def, catalog)
	assert.Contains(t, md, "- Delimiter: `\\|`")
}

func TestAction_Legacy(t *testing.T) {
	exit := 0
	grep := "grep -q running"
	md := describe.Action(actions.Legacy("start_vm", "VBoxManage startvm", &exit, &grep), nil)

	assert.Contains(t, md, "Legacy action: its output is not parsed.")
	assert.Contains(t, md, "- Succeeds with exit code 0")
	assert.Contains(t, md, "- Output was checked with `grep -q running`")
	assert.NotContains(t, md, "Mode:")
}

func TestAction_Problems(t *testing.T) {
	def := actions.Modern("broken", "true", &rules.RuleSet{
		Mode: rules.ModeObject,
		Patterns: map[string]rules.PatternRule{
			"bad":   {Regex: `(`},
			"count": {Regex: `(\d+)`, Transform: "integer"},
		},
	})

	md := describe.Action(def, nil)
	assert.Contains(t, md, "## Problems")
	assert.Contains(t, md, "- error: [REGEX_COMPILE] invalid regex for field bad")
	assert.Contains(t, md, `- warning: field count: unknown transform "integer"`)
}
