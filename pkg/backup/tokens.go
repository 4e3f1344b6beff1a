package backup

import (
	"fmt"
	"os"

	"github.com/pkoukk/tiktoken-go"
)

// DefaultTokenModel is the tokenizer model used when none is configured.
const DefaultTokenModel = "gpt-4o"

// CountDocumentTokens returns the tiktoken token count of the finished
// document for the given model.
func CountDocumentTokens(docPath, model string) (int, error) {
	if model == "" {
		model = DefaultTokenModel
	}
	tkm, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return 0, fmt.Errorf("failed to get tokenizer for model %q: %w", model, err)
	}

	data, err := os.ReadFile(docPath)
	if err != nil {
		return 0, fmt.Errorf("failed to read document: %w", err)
	}

	return len(tkm.Encode(string(data), nil, nil)), nil
}
