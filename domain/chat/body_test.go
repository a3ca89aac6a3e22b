package chat

import (
	"strings"
	"testing"

	"talent-chat/errors"

	"github.com/stretchr/testify/require"
)

func TestPrepareBody_Trims(t *testing.T) {
	req := require.New(t)

	text, err := PrepareBody("  hello there \n")

	req.NoError(err)
	req.Equal("hello there", text)
}

func TestPrepareBody_Empty(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\t "} {
		t.Run(strings.ReplaceAll(raw, "\n", "\\n"), func(t *testing.T) {
			req := require.New(t)
			text, err := PrepareBody(raw)
			req.ErrorIs(err, errors.ErrEmptyMessage)
			req.Empty(text)
		})
	}
}

func TestPrepareBody_Length(t *testing.T) {
	req := require.New(t)

	// Given a body of exactly the limit once trimmed
	limit := "  " + strings.Repeat("a", MaxBodyLength) + "  "
	text, err := PrepareBody(limit)
	req.NoError(err)
	req.Len(text, MaxBodyLength)

	// When a single character is added
	_, err = PrepareBody(strings.Repeat("a", MaxBodyLength+1))

	// Then the body is rejected
	req.ErrorIs(err, errors.ErrMessageTooLong)
}

func TestPrepareBody_CountsCharactersNotBytes(t *testing.T) {
	req := require.New(t)

	text, err := PrepareBody(strings.Repeat("é", MaxBodyLength))

	req.NoError(err)
	req.Equal(MaxBodyLength, len([]rune(text)))
}
