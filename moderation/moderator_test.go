package moderation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestModerator_Censor(t *testing.T) {
	req := require.New(t)
	moderator, err := NewModerator([]string{"idiot", "crap"}, '*')
	req.NoError(err)

	tests := []struct {
		description string
		input       string
		expected    string
	}{
		{"Should censor a plain match", "you idiot", "you *****"},
		{"Should censor regardless of case", "you IDIOT", "you *****"},
		{"Should censor leet speak", "you 1d10t", "you *****"},
		{"Should censor across separators", "you i.d.i.o.t", "you *********"},
		{"Should censor several words", "crap, what an idiot", "****, what an *****"},
		{"Should leave clean text alone", "what a nice day", "what a nice day"},
		{"Should leave empty input alone", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			require.Equal(t, tt.expected, moderator.Censor(tt.input))
		})
	}
}

func TestLoadWordList(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "words.txt")
	req.NoError(os.WriteFile(path, []byte("idiot\n\ncrap\n   \n"), 0o600))

	words, err := LoadWordList(path)
	req.NoError(err)
	req.Equal([]string{"idiot", "crap"}, words)
}

func TestLoadWordList_MissingFile(t *testing.T) {
	req := require.New(t)

	_, err := LoadWordList(filepath.Join(t.TempDir(), "absent.txt"))
	req.Error(err)
}
