package similarity

import (
	"github.com/pkg/errors"
	"github.com/tiktoken-go/tokenizer"
)

// TiktokenTokenizer adapts a tiktoken codec to the Tokenizer capability.
// Codecs are read-only after construction and safe to share across workers.
type TiktokenTokenizer struct {
	codec tokenizer.Codec
}

func NewTiktokenTokenizer(encoding string) (*TiktokenTokenizer, error) {
	codec, err := tokenizer.Get(tokenizer.Encoding(encoding))
	if err != nil {
		return nil, errors.Wrapf(err, "could not create tokenizer for encoding %s", encoding)
	}
	return &TiktokenTokenizer{codec: codec}, nil
}

func NewTiktokenTokenizerForModel(model string) (*TiktokenTokenizer, error) {
	codec, err := tokenizer.ForModel(tokenizer.Model(model))
	if err != nil {
		return nil, errors.Wrapf(err, "could not create tokenizer for model %s", model)
	}
	return &TiktokenTokenizer{codec: codec}, nil
}

func (t *TiktokenTokenizer) Tokenize(text string) ([]int, error) {
	ids, _, err := t.codec.Encode(text)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = int(id)
	}
	return out, nil
}

var _ Tokenizer = (*TiktokenTokenizer)(nil)
