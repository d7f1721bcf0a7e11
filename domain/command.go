package domain

import (
	"strings"
	"unicode"
)

type CommandName string

const (
	CmdBroadcast   CommandName = "/broadcast"
	CmdMsg         CommandName = "/msg"
	CmdCreateGroup CommandName = "/create_group"
	CmdJoinGroup   CommandName = "/join_group"
	CmdLeaveGroup  CommandName = "/leave_group"
	CmdGroupMsg    CommandName = "/group_msg"
	CmdExit        CommandName = "/exit"
)

// Command is one parsed input line.
// Target holds the user or group name, Text the free-text message.
type Command struct {
	Name   CommandName
	Target string
	Text   string
}

// ParseCommand splits a line into its leading command token and the arguments
// that command takes. Commands are case-sensitive.
func ParseCommand(line string) Command {
	name, rest := nextToken(line)
	cmd := Command{Name: CommandName(name)}

	switch cmd.Name {
	case CmdBroadcast:
		cmd.Text = strings.TrimSpace(rest)
	case CmdMsg, CmdGroupMsg:
		cmd.Target, rest = nextToken(rest)
		cmd.Text = strings.TrimSpace(rest)
	case CmdCreateGroup, CmdJoinGroup, CmdLeaveGroup:
		cmd.Target, _ = nextToken(rest)
	}
	return cmd
}

// Usage returns the expected syntax when required arguments are missing,
// or an empty string when the command is complete.
func (c Command) Usage() string {
	switch c.Name {
	case CmdBroadcast:
		if c.Text == "" {
			return "Usage: /broadcast <text>"
		}
	case CmdMsg:
		if c.Target == "" || c.Text == "" {
			return "Usage: /msg <user> <text>"
		}
	case CmdGroupMsg:
		if c.Target == "" || c.Text == "" {
			return "Usage: /group_msg <group> <text>"
		}
	case CmdCreateGroup, CmdJoinGroup, CmdLeaveGroup:
		if c.Target == "" {
			return "Usage: " + string(c.Name) + " <group>"
		}
	}
	return ""
}

func nextToken(s string) (string, string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i:]
}
