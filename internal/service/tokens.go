package service

import (
	"github.com/pkoukk/tiktoken-go"
	"github.com/rs/zerolog/log"
)

// TokenCounter measures the token cost of a payload fragment.
type TokenCounter interface {
	Count(text string) int
}

// referenceModel is the fixed model whose encoding is used for budgeting,
// independent of the chat model actually called.
const referenceModel = "gpt-4"

// NewTokenCounter returns a tiktoken-backed counter for the reference model,
// falling back to a character-count approximation when the encoding cannot
// be loaded.
func NewTokenCounter() TokenCounter {
	enc, err := tiktoken.EncodingForModel(referenceModel)
	if err != nil {
		log.Warn().Err(err).Msg("tiktoken encoding unavailable, using approximate token counts")
		return approxCounter{}
	}
	return &tiktokenCounter{enc: enc}
}

type tiktokenCounter struct {
	enc *tiktoken.Tiktoken
}

func (c *tiktokenCounter) Count(text string) int {
	return len(c.enc.Encode(text, nil, nil))
}

// approxCounter estimates 4 characters per token.
type approxCounter struct{}

func (approxCounter) Count(text string) int {
	return len(text) / 4
}
