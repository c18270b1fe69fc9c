package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractOutput(t *testing.T) {
	raw, err := ExtractOutput(`Some preamble.
<output>
{"ok": true}
</output>
Trailing commentary.`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok": true}`, string(raw))
}

func TestExtractOutputTakesFirstBlock(t *testing.T) {
	raw, err := ExtractOutput(`<output>[1, 2]</output> text <output>[3]</output>`)
	require.NoError(t, err)
	assert.JSONEq(t, `[1, 2]`, string(raw))
}

func TestExtractOutputNoBlock(t *testing.T) {
	_, err := ExtractOutput("just prose, no tags")
	assert.ErrorIs(t, err, ErrNoOutputBlock)
}

func TestExtractOutputUnclosedBlock(t *testing.T) {
	_, err := ExtractOutput(`<output>{"ok": true}`)
	assert.ErrorIs(t, err, ErrNoOutputBlock)
}

func TestExtractOutputMalformedJSON(t *testing.T) {
	_, err := ExtractOutput(`<output>{not json}</output>`)
	assert.ErrorIs(t, err, ErrMalformedOutput)
}

func TestExtractOutputEmptyBlock(t *testing.T) {
	_, err := ExtractOutput(`<output>   </output>`)
	assert.ErrorIs(t, err, ErrMalformedOutput)
}
