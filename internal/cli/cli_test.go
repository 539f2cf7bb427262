package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/outparse/pkg/parser"
	"github.com/arthur-debert/outparse/pkg/testutil"
)

const testConfig = `
[table_formats.vms]
headers = ["NAME", "STATE"]
delimiter = ""
skip_lines = 1

[actions.get_vm]
command = "VBoxManage showvminfo {vm_name}"
params = ["vm_name"]

[actions.get_vm.rule_set]
mode = "object"

[actions.get_vm.rule_set.patterns.name]
regex = 'Name:\s+(.+)'

[actions.get_vm.rule_set.patterns.memory_mb]
regex = 'Memory size:\s+(\S+)MB'
transform = "number"

[actions.list_vms]
command = "vms"

[actions.list_vms.rule_set]
mode = "table"
format_name = "vms"

[actions.start_vm]
command = "VBoxManage startvm {vm_name}"
success_exit_code = 0
`

const brokenConfig = `
[actions.broken]
command = "true"

[actions.broken.rule_set]
mode = "object"

[actions.broken.rule_set.patterns.bad]
regex = '('
`

// isolate points XDG dirs at a temporary directory and silences logging
func isolate(t *testing.T) string {
	t.Helper()
	dir := testutil.IsolateXDG(t)
	t.Setenv("NO_COLOR", "1")

	original := setupLogging
	setupLogging = func(int) {}
	t.Cleanup(func() { setupLogging = original })
	return dir
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	return testutil.CreateFile(t, dir, "outparse.toml", content)
}

type result struct {
	stdout string
	stderr string
	code   int
}

func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	rootCmd, a := newRootCmd()

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	code := execute(rootCmd, a)
	return result{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

func TestParse_Stdin(t *testing.T) {
	cfg := writeConfig(t, isolate(t), testConfig)

	res := run(t, "Name: test-vm\nMemory size: 2048MB\n", "--config", cfg, "--format", "json", "parse", "get_vm")
	require.Equal(t, 0, res.code, res.stderr)
	assert.JSONEq(t, `{"name": "test-vm", "memory_mb": 2048}`, res.stdout)

	res = run(t, "Name: test-vm\n", "-c", cfg, "-f", "json", "parse", "get_vm", "-", "--no-cache")
	require.Equal(t, 0, res.code, res.stderr)
	assert.JSONEq(t, `{"name": "test-vm"}`, res.stdout)
}

func TestParse_LogsActionContext(t *testing.T) {
	cfg := writeConfig(t, isolate(t), testConfig)

	var buf bytes.Buffer
	originalLogger, originalLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = originalLogger
		zerolog.SetGlobalLevel(originalLevel)
	})
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	res := run(t, "Name: test-vm\n", "--config", cfg, "--format", "json", "parse", "get_vm")
	require.Equal(t, 0, res.code, res.stderr)

	out := buf.String()
	assert.Contains(t, out, `"action":"get_vm"`)
	assert.Contains(t, out, `"source":"-"`)
	assert.Contains(t, out, `"operation":"parse"`)
	assert.Contains(t, out, `"duration"`)
}

func TestParse_File(t *testing.T) {
	dir := isolate(t)
	cfg := writeConfig(t, dir, testConfig)
	input := filepath.Join(dir, "vms.txt")
	require.NoError(t, os.WriteFile(input, []byte("NAME STATE\nvm1 running\nvm2 stopped extra\nvm3 paused\n"), 0644))

	res := run(t, "", "--config", cfg, "--format", "yaml", "parse", "list_vms", input)
	require.Equal(t, 0, res.code, res.stderr)

	var rows []map[string]string
	require.NoError(t, yaml.Unmarshal([]byte(res.stdout), &rows))
	assert.Equal(t, []map[string]string{
		{"NAME": "vm1", "STATE": "running"},
		{"NAME": "vm3", "STATE": "paused"},
	}, rows)
}

func TestParse_Legacy(t *testing.T) {
	cfg := writeConfig(t, isolate(t), testConfig)

	res := run(t, "Waiting for VM to power on...\n", "--config", cfg, "--format", "json", "parse", "start_vm")
	require.Equal(t, 0, res.code, res.stderr)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &got))
	assert.Equal(t, parser.MsgLegacyExitCode, got[parser.KeyError])
	assert.Equal(t, 0.0, got[parser.KeyExitCodeRequired])
}

func TestParse_Errors(t *testing.T) {
	dir := isolate(t)
	cfg := writeConfig(t, dir, testConfig)

	t.Run("unknown_action", func(t *testing.T) {
		res := run(t, "", "--config", cfg, "--format", "json", "parse", "nope")
		assert.Equal(t, 1, res.code)
		assert.Empty(t, res.stdout)

		var got map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(res.stderr), &got))
		assert.Equal(t, "ACTION_NOT_FOUND", got["code"])
	})

	t.Run("conversion_failure", func(t *testing.T) {
		res := run(t, "Memory size: lotsMB\n", "--config", cfg, "parse", "get_vm")
		assert.Equal(t, 1, res.code)
		assert.Contains(t, res.stderr, "Error: [VALUE_CONVERSION] invalid value for field memory_mb")
	})

	t.Run("missing_input_file", func(t *testing.T) {
		res := run(t, "", "--config", cfg, "parse", "get_vm", filepath.Join(dir, "missing.txt"))
		assert.Equal(t, 1, res.code)
		assert.Contains(t, res.stderr, "INVALID_INPUT")
	})

	t.Run("bad_format", func(t *testing.T) {
		res := run(t, "", "--config", cfg, "--format", "csv", "parse", "get_vm")
		assert.Equal(t, 1, res.code)
		assert.Contains(t, res.stderr, "unknown format: csv")
	})

	t.Run("missing_config", func(t *testing.T) {
		res := run(t, "", "--config", filepath.Join(dir, "none.toml"), "actions")
		assert.Equal(t, 1, res.code)
		assert.Contains(t, res.stderr, "CONFIG_LOAD")
	})
}

func TestActionsAndFormats(t *testing.T) {
	cfg := writeConfig(t, isolate(t), testConfig)

	res := run(t, "", "--config", cfg, "--format", "json", "actions")
	require.Equal(t, 0, res.code, res.stderr)
	assert.JSONEq(t, `[
		{"name": "get_vm", "kind": "modern", "mode": "object", "command": "VBoxManage showvminfo {vm_name}"},
		{"name": "list_vms", "kind": "modern", "mode": "table", "command": "vms"},
		{"name": "start_vm", "kind": "legacy", "command": "VBoxManage startvm {vm_name}"}
	]`, res.stdout)

	res = run(t, "", "--config", cfg, "--format", "json", "formats")
	require.Equal(t, 0, res.code, res.stderr)
	var formats []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &formats))
	var names []string
	for _, f := range formats {
		names = append(names, f["name"].(string))
	}
	assert.Contains(t, names, "vms")
	assert.Contains(t, names, "lxc_ls")

	res = run(t, "", "--config", cfg, "actions")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "- command: vms\n  kind: modern\n  mode: table\n  name: list_vms")
}

func TestDescribe(t *testing.T) {
	cfg := writeConfig(t, isolate(t), testConfig)

	res := run(t, "", "--config", cfg, "--format", "text", "describe", "get_vm")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "get_vm")
	assert.Contains(t, res.stdout, "object")

	res = run(t, "", "--config", cfg, "--format", "json", "describe", "list_vms")
	require.Equal(t, 0, res.code, res.stderr)
	var def map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &def))
	assert.Equal(t, "vms", def["command"])
	assert.Equal(t, "vms", def["rule_set"].(map[string]interface{})["format_name"])
}

func TestValidate(t *testing.T) {
	dir := isolate(t)
	cfg := writeConfig(t, dir, testConfig)

	res := run(t, "", "--config", cfg, "validate")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "get_vm: ok")
	assert.Contains(t, res.stdout, "list_vms: ok")
	assert.NotContains(t, res.stdout, "start_vm")

	broken := filepath.Join(dir, "broken.toml")
	require.NoError(t, os.WriteFile(broken, []byte(brokenConfig), 0644))

	res = run(t, "", "validate", broken)
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stdout, "broken: 1 error(s)")
	assert.Contains(t, res.stdout, "REGEX_COMPILE")
	assert.Contains(t, res.stderr, "1 action(s) failed validation")

	res = run(t, "", "--format", "json", "validate", broken)
	assert.Equal(t, 1, res.code)
	var reports map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &reports))
	assert.Equal(t, false, reports["broken"]["ok"])
}

func TestGenConfig(t *testing.T) {
	dir := isolate(t)

	res := run(t, "", "genconfig")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "[actions.get_vm]")
	assert.Contains(t, res.stdout, "# cache_regex = true")

	target := filepath.Join(dir, "out", "config.toml")
	res = run(t, "", "genconfig", "--write", "--path", target)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Wrote configuration to "+target)
	assert.FileExists(t, target)

	res = run(t, "", "genconfig", "-w", "--path", target)
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "ALREADY_EXISTS")

	res = run(t, "", "genconfig", "-w", "--path", target, "--force")
	assert.Equal(t, 0, res.code, res.stderr)

	// the default location is found by the XDG search
	res = run(t, "", "genconfig", "-w")
	require.Equal(t, 0, res.code, res.stderr)
	assert.FileExists(t, filepath.Join(dir, "config", "outparse", "config.toml"))

	res = run(t, "", "--format", "json", "actions")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, `"list_disks"`)
}

func TestMisc(t *testing.T) {
	isolate(t)

	res := run(t, "", "version")
	require.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "outparse version dev")

	res = run(t, "", "completion", "bash")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "outparse")

	res = run(t, "", "help", "topics")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "modes")
	assert.Contains(t, res.stdout, "--format")

	res = run(t, "", "help", "transforms")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "boolean")

	res = run(t, "")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "no command specified")
}
