// Package vocab maps text to token ids and back the way the trained models expect.
package vocab

import (
	"fmt"
	"strings"
)

// DefaultFilters are the characters stripped from text before splitting.
const DefaultFilters = "!\"#$%&()*+,-./:;<=>?@[\\]^_`{|}~\t\n"

// PadID is the reserved id used for padding and never assigned to a word.
const PadID int64 = 0

// Entry is one word and its id, in vocabulary file order.
type Entry struct {
	Word string
	ID   int64
}

// Vocabulary is a word->id mapping with an inverse built once at construction.
type Vocabulary struct {
	index   map[string]int64
	inverse map[int64]string
}

// NewVocabulary builds a Vocabulary from entries. When two words share an id the
// first entry wins on the inverse side.
func NewVocabulary(entries []Entry) (*Vocabulary, error) {
	v := &Vocabulary{
		index:   make(map[string]int64, len(entries)),
		inverse: make(map[int64]string, len(entries)),
	}
	for _, e := range entries {
		if e.Word == "" {
			return nil, fmt.Errorf("empty word for id %d", e.ID)
		}
		if e.ID <= PadID {
			return nil, fmt.Errorf("word %q has reserved id %d", e.Word, e.ID)
		}
		v.index[e.Word] = e.ID
		if _, ok := v.inverse[e.ID]; !ok {
			v.inverse[e.ID] = e.Word
		}
	}
	return v, nil
}

// ID returns the id of word.
func (v *Vocabulary) ID(word string) (int64, bool) {
	id, ok := v.index[word]
	return id, ok
}

// Word returns the word for id, or false when id is not a word.
func (v *Vocabulary) Word(id int64) (string, bool) {
	w, ok := v.inverse[id]
	return w, ok
}

// Len returns the number of words.
func (v *Vocabulary) Len() int { return len(v.index) }

// Options control how text is split into words.
type Options struct {
	// MaxLen is the fixed sequence length the models were trained with.
	MaxLen int
	Lower  bool
	// Filters are replaced by Split before splitting.
	Filters string
	Split   string
	// NumWords keeps only ids below NumWords when positive.
	NumWords int
	// OOVToken, when set and present in the vocabulary, replaces unknown words.
	OOVToken string
}

// DefaultOptions mirrors the defaults the tokenizers were fitted with.
func DefaultOptions(maxLen int) Options {
	return Options{
		MaxLen:  maxLen,
		Lower:   true,
		Filters: DefaultFilters,
		Split:   " ",
	}
}

// Tokenizer encodes text to ids and decodes ids to words.
type Tokenizer struct {
	vocab    *Vocabulary
	opts     Options
	replacer *strings.Replacer
	oovID    int64
}

// NewTokenizer returns a Tokenizer over vocab.
func NewTokenizer(vocab *Vocabulary, opts Options) (*Tokenizer, error) {
	if vocab == nil {
		return nil, fmt.Errorf("vocabulary is nil")
	}
	if opts.MaxLen <= 0 {
		return nil, fmt.Errorf("invalid max length: %d", opts.MaxLen)
	}
	if opts.Split == "" {
		opts.Split = " "
	}

	t := &Tokenizer{vocab: vocab, opts: opts}
	if opts.Filters != "" {
		pairs := make([]string, 0, 2*len(opts.Filters))
		for _, r := range opts.Filters {
			pairs = append(pairs, string(r), opts.Split)
		}
		t.replacer = strings.NewReplacer(pairs...)
	}
	if opts.OOVToken != "" {
		if id, ok := vocab.ID(opts.OOVToken); ok {
			t.oovID = id
		}
	}
	return t, nil
}

// MaxLen returns the fixed sequence length.
func (t *Tokenizer) MaxLen() int { return t.opts.MaxLen }

// Vocabulary returns the underlying vocabulary.
func (t *Tokenizer) Vocabulary() *Vocabulary { return t.vocab }

// Words splits text into normalised words.
func (t *Tokenizer) Words(text string) []string {
	if t.opts.Lower {
		text = strings.ToLower(text)
	}
	if t.replacer != nil {
		text = t.replacer.Replace(text)
	}
	parts := strings.Split(text, t.opts.Split)
	words := parts[:0]
	for _, p := range parts {
		if p != "" {
			words = append(words, p)
		}
	}
	return words
}

// Encode converts text to ids. Unknown words are dropped unless an OOV token is
// configured. The result is not padded.
func (t *Tokenizer) Encode(text string) []int64 {
	words := t.Words(text)
	ids := make([]int64, 0, len(words))
	for _, w := range words {
		id, ok := t.vocab.ID(w)
		switch {
		case ok && (t.opts.NumWords <= 0 || id < int64(t.opts.NumWords)):
			ids = append(ids, id)
		case t.oovID != PadID:
			ids = append(ids, t.oovID)
		}
	}
	return ids
}

// EncodeBatch encodes every text in order.
func (t *Tokenizer) EncodeBatch(texts []string) [][]int64 {
	out := make([][]int64, len(texts))
	for i, text := range texts {
		out[i] = t.Encode(text)
	}
	return out
}

// WordFor returns the word for id.
func (t *Tokenizer) WordFor(id int64) (string, bool) {
	return t.vocab.Word(id)
}
