package insights

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoOutputBlock indicates the model reply contained no
	// <output>...</output> block.
	ErrNoOutputBlock = errors.New("insights: no output block in response")
	// ErrMalformedOutput indicates the output block did not contain valid JSON.
	ErrMalformedOutput = errors.New("insights: malformed output block")
)

const (
	openTag  = "<output>"
	closeTag = "</output>"
)

// ExtractOutput pulls the first <output>...</output> block out of a model
// reply and returns its trimmed contents as validated JSON. Later blocks are
// ignored.
func ExtractOutput(text string) (json.RawMessage, error) {
	start := strings.Index(text, openTag)
	if start < 0 {
		return nil, ErrNoOutputBlock
	}
	rest := text[start+len(openTag):]
	end := strings.Index(rest, closeTag)
	if end < 0 {
		return nil, ErrNoOutputBlock
	}

	payload := strings.TrimSpace(rest[:end])
	var raw json.RawMessage
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	return raw, nil
}
