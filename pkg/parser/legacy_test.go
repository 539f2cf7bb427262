package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/outparse/pkg/actions"
	"github.com/arthur-debert/outparse/pkg/parser"
)

func TestParse_Legacy(t *testing.T) {
	zero := 0
	three := 3
	grep := "grep -A 3 'UUID:'"

	tests := []struct {
		name string
		def  *actions.Definition
		text string
		want parser.Object
	}{
		{
			name: "exit_code",
			def:  actions.Legacy("showvminfo", "VBoxManage showvminfo test-vm", &zero, nil),
			text: "Some output",
			want: parser.Object{
				parser.KeyError:            parser.MsgLegacyExitCode,
				parser.KeyExitCodeRequired: 0,
			},
		},
		{
			name: "exit_code_wins_over_grep",
			def:  actions.Legacy("list", "VBoxManage list hdds", &three, &grep),
			text: "ignored",
			want: parser.Object{
				parser.KeyError:            parser.MsgLegacyExitCode,
				parser.KeyExitCodeRequired: 3,
			},
		},
		{
			name: "grep",
			def:  actions.Legacy("list", "VBoxManage list hdds", nil, &grep),
			text: "Some output",
			want: parser.Object{
				parser.KeyError:       parser.MsgLegacyGrep,
				parser.KeyGrepCommand: "grep -A 3 'UUID:'",
			},
		},
		{
			name: "raw",
			def:  actions.Legacy("create", "VBoxManage createvm", nil, nil),
			text: "VM Created",
			want: parser.Object{
				parser.KeyError:     parser.MsgLegacyRaw,
				parser.KeyRawOutput: "VM Created",
			},
		},
		{
			name: "nil_definition",
			text: "",
			want: parser.Object{
				parser.KeyError:     parser.MsgLegacyRaw,
				parser.KeyRawOutput: "",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := newParser().Parse(tt.text, tt.def)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result)
		})
	}
}

func TestParse_LegacyExitCodeIgnoresText(t *testing.T) {
	zero := 0
	def := actions.Legacy("start", "VBoxManage startvm", &zero, nil)

	for _, text := range []string{"", "Name: x", "garbage\n\n\n"} {
		result, err := newParser().Parse(text, def)
		require.NoError(t, err)
		assert.Equal(t, 0, result.(parser.Object)[parser.KeyExitCodeRequired])
	}
}

func TestLegacyMessages(t *testing.T) {
	assert.Equal(t,
		"Legacy CPI action does not support output parsing via API. Success/failure is determined by exit code only.",
		parser.MsgLegacyExitCode)
	assert.Equal(t,
		"Legacy CPI action uses grep-based output parsing which is not supported via API. Please update to new parse_rules format.",
		parser.MsgLegacyGrep)
	assert.Equal(t, "Legacy CPI action does not support output parsing via API.", parser.MsgLegacyRaw)
}
