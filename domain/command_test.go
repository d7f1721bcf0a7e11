package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected Command
	}{
		{"Broadcast keeps the whole remainder", "/broadcast hello  world\n", Command{Name: CmdBroadcast, Text: "hello  world"}},
		{"Direct message splits target and text", "/msg bob  how are you?\r\n", Command{Name: CmdMsg, Target: "bob", Text: "how are you?"}},
		{"Group message splits group and text", "/group_msg g hi there", Command{Name: CmdGroupMsg, Target: "g", Text: "hi there"}},
		{"Group name is a single token", "/create_group team extra words", Command{Name: CmdCreateGroup, Target: "team"}},
		{"Join group", "/join_group team\n", Command{Name: CmdJoinGroup, Target: "team"}},
		{"Leave group", "  /leave_group team", Command{Name: CmdLeaveGroup, Target: "team"}},
		{"Exit ignores arguments", "/exit now", Command{Name: CmdExit}},
		{"Commands are case sensitive", "/Broadcast hi", Command{Name: "/Broadcast"}},
		{"Empty line", "\n", Command{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, ParseCommand(tt.line))
		})
	}
}

func TestCommand_Usage(t *testing.T) {
	req := require.New(t)

	req.Equal("Usage: /msg <user> <text>", ParseCommand("/msg bob").Usage())
	req.Equal("Usage: /group_msg <group> <text>", ParseCommand("/group_msg").Usage())
	req.Equal("Usage: /join_group <group>", ParseCommand("/join_group   ").Usage())
	req.Equal("Usage: /broadcast <text>", ParseCommand("/broadcast \n").Usage())
	req.Empty(ParseCommand("/msg bob hi").Usage())
	req.Empty(ParseCommand("/exit").Usage())
	req.Empty(ParseCommand("/unknown").Usage())
}
