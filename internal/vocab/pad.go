package vocab

import "fmt"

// Side selects where padding or truncation happens.
type Side int

const (
	// Pre pads or truncates at the start of the sequence.
	Pre Side = iota
	// Post pads or truncates at the end of the sequence.
	Post
)

func (s Side) String() string {
	if s == Post {
		return "post"
	}
	return "pre"
}

// ParseSide parses "pre" or "post".
func ParseSide(s string) (Side, error) {
	switch s {
	case "pre":
		return Pre, nil
	case "post":
		return Post, nil
	default:
		return Pre, fmt.Errorf("invalid padding side %q: want pre or post", s)
	}
}

// PadOptions configure Pad.
type PadOptions struct {
	Padding    Side
	Truncating Side
}

// PadSequence returns seq resized to maxLen: longer sequences lose ids on the
// Truncating side, shorter ones get PadID on the Padding side. A sequence already
// of length maxLen is returned as a copy with the same contents.
func PadSequence(seq []int64, maxLen int, opts PadOptions) []int64 {
	if maxLen <= 0 {
		return []int64{}
	}
	if len(seq) > maxLen {
		if opts.Truncating == Post {
			seq = seq[:maxLen]
		} else {
			seq = seq[len(seq)-maxLen:]
		}
	}

	out := make([]int64, maxLen)
	if opts.Padding == Post {
		copy(out, seq)
	} else {
		copy(out[maxLen-len(seq):], seq)
	}
	return out
}

// Pad resizes every sequence to maxLen.
func Pad(seqs [][]int64, maxLen int, opts PadOptions) [][]int64 {
	out := make([][]int64, len(seqs))
	for i, s := range seqs {
		out[i] = PadSequence(s, maxLen, opts)
	}
	return out
}
