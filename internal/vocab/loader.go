package vocab

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// kerasDocument is the layout written by a fitted Keras text Tokenizer's to_json.
// word_index is itself a JSON document stored as a string.
type kerasDocument struct {
	ClassName string `json:"class_name"`
	Config    struct {
		NumWords  *int            `json:"num_words"`
		Filters   *string         `json:"filters"`
		Lower     *bool           `json:"lower"`
		Split     *string         `json:"split"`
		OOVToken  *string         `json:"oov_token"`
		WordIndex json.RawMessage `json:"word_index"`
	} `json:"config"`
	MaxLen int `json:"max_len"`
}

// flatDocument is the minimal vocabulary layout: {"word_index": {...}, "max_len": n}.
type flatDocument struct {
	WordIndex json.RawMessage `json:"word_index"`
	MaxLen    int             `json:"max_len"`
	OOVToken  string          `json:"oov_token"`
	NumWords  int             `json:"num_words"`
}

// LoadFile reads a tokenizer document from path. maxLen overrides the length
// stored in the document when positive.
func LoadFile(path string, maxLen int) (*Tokenizer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open vocabulary %s: %w", path, err)
	}
	defer f.Close()

	tok, err := Load(f, maxLen)
	if err != nil {
		return nil, fmt.Errorf("failed to load vocabulary %s: %w", path, err)
	}
	return tok, nil
}

// Load reads either a Keras tokenizer document or a flat word_index document.
func Load(r io.Reader, maxLen int) (*Tokenizer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var keras kerasDocument
	if err := json.Unmarshal(data, &keras); err != nil {
		return nil, fmt.Errorf("invalid tokenizer document: %w", err)
	}

	opts := DefaultOptions(maxLen)
	var rawIndex json.RawMessage

	if keras.ClassName != "" || len(keras.Config.WordIndex) > 0 {
		c := keras.Config
		rawIndex = c.WordIndex
		if c.NumWords != nil {
			opts.NumWords = *c.NumWords
		}
		if c.Filters != nil {
			opts.Filters = *c.Filters
		}
		if c.Lower != nil {
			opts.Lower = *c.Lower
		}
		if c.Split != nil {
			opts.Split = *c.Split
		}
		if c.OOVToken != nil {
			opts.OOVToken = *c.OOVToken
		}
		if maxLen <= 0 {
			opts.MaxLen = keras.MaxLen
		}
	} else {
		var flat flatDocument
		if err := json.Unmarshal(data, &flat); err != nil {
			return nil, fmt.Errorf("invalid vocabulary document: %w", err)
		}
		rawIndex = flat.WordIndex
		opts.OOVToken = flat.OOVToken
		opts.NumWords = flat.NumWords
		if maxLen <= 0 {
			opts.MaxLen = flat.MaxLen
		}
	}

	if len(rawIndex) == 0 {
		return nil, fmt.Errorf("document has no word_index")
	}

	// Keras stores the nested index as a string; unwrap it.
	if rawIndex[0] == '"' {
		var s string
		if err := json.Unmarshal(rawIndex, &s); err != nil {
			return nil, fmt.Errorf("invalid word_index string: %w", err)
		}
		rawIndex = json.RawMessage(s)
	}

	entries, err := parseWordIndex(rawIndex)
	if err != nil {
		return nil, err
	}

	v, err := NewVocabulary(entries)
	if err != nil {
		return nil, err
	}
	return NewTokenizer(v, opts)
}

// parseWordIndex decodes a JSON object of word->id preserving key order, so the
// inverse mapping resolves duplicate ids to the first word in the file.
func parseWordIndex(raw []byte) ([]Entry, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("invalid word_index: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("invalid word_index: expected object")
	}

	var entries []Entry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("invalid word_index: %w", err)
		}
		word, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("invalid word_index key %v", keyTok)
		}

		var n json.Number
		if err := dec.Decode(&n); err != nil {
			return nil, fmt.Errorf("invalid id for %q: %w", word, err)
		}
		id, err := n.Int64()
		if err != nil {
			return nil, fmt.Errorf("invalid id for %q: %w", word, err)
		}
		entries = append(entries, Entry{Word: word, ID: id})
	}
	return entries, nil
}
