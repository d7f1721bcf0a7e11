package moderation

import (
	"log/slog"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

const maskChar = '*'

// chatWords never occur across word boundaries of the inputs below,
// spaces are ignored while matching.
var chatWords = []string{"scam", "spam", "idiot"}

func TestModerator_Censor_Chat_Payloads(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	mod, err := NewModerator(chatWords, maskChar, log)
	req.NoError(err)

	tests := []struct {
		name     string
		input    string
		expected string
		words    []string
	}{
		{
			name:     "Broadcast payload",
			input:    "this offer is a scam",
			expected: "this offer is a ****",
			words:    []string{"scam"},
		},
		{
			name:     "Group message payload",
			input:    "deploy done, no spam please",
			expected: "deploy done, no **** please",
			words:    []string{"spam"},
		},
		{
			name:     "Leet speak in a direct message",
			input:    "you are an 1d10t",
			expected: "you are an *****",
			words:    []string{"idiot"},
		},
		{
			name:     "Word glued to a group tag",
			input:    "[ Group g ]:scam",
			expected: "[ Group g ]:****",
			words:    []string{"scam"},
		},
		{
			name:     "Spaced out letters",
			input:    "s c a m",
			expected: "*******",
			words:    []string{"scam"},
		},
		{
			name:     "Exclamation mark stays visible",
			input:    "what a scam!",
			expected: "what a ****!",
			words:    []string{"scam"},
		},
		{
			name:     "Clean standup note",
			input:    "see you at standup",
			expected: "see you at standup",
			words:    nil,
		},
		{
			name:     "Empty payload",
			input:    "",
			expected: "",
			words:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content, words := mod.Censor(tt.input)
			require.Equal(t, tt.expected, content)
			require.Equal(t, tt.words, words)
		})
	}
}

func TestModerator_Censor_Reports_Words_In_Order(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	mod, err := NewModerator(chatWords, maskChar, log)
	req.NoError(err)

	// When one broadcast carries three censored words
	content, words := mod.Censor("spam and scam, what an idiot")

	// Then they come back in order of appearance, repeats included
	req.Equal("**** and ****, what an *****", content)
	req.Equal([]string{"spam", "scam", "idiot"}, words)

	_, words = mod.Censor("scam scam")
	req.Equal([]string{"scam", "scam"}, words)
}

func TestModerator_Skips_Noise_Only_Words(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	// Given a word list file with blank and punctuation-only lines
	mod, err := NewModerator([]string{"...", ":::", "", "spam"}, '#', log)
	req.NoError(err)

	content, words := mod.Censor("no spam here")
	req.Equal("no #### here", content)
	req.Equal([]string{"spam"}, words)

	// Then punctuation in chat text is left alone
	content, words = mod.Censor("ok ... see you")
	req.Equal("ok ... see you", content)
	req.Nil(words)
}
