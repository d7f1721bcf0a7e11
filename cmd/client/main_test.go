package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrintLines_Keeps_Prompts_Inline(t *testing.T) {
	req := require.New(t)
	var out bytes.Buffer

	err := printLines(strings.NewReader("Enter username: \nWelcome to the chat server!\n"), &out, false)
	req.NoError(err)
	req.Equal("Enter username: Welcome to the chat server!\n", out.String())
}

func TestRender_Without_Colours(t *testing.T) {
	req := require.New(t)
	req.Equal("[ Group g ]: hi", render("[ Group g ]: hi", false))
	req.Contains(render("[ Server ]: hi", true), "[ Server ]: hi")
}
