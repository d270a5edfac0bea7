// Package decode force-decodes binary payloads whose character
// encoding is unknown, such as the bytes of an embedded font program
// or an unfiltered stream. Each payload is run through a fixed battery
// of candidate encodings and every attempt is scored by the share of
// printable runes it yields, so callers can rank interpretations
// instead of guessing one.
package decode

import (
	"bytes"
	"sort"
)

// Attempt is the outcome of decoding a payload with one candidate
// encoding.
type Attempt struct {
	Encoding string
	Text     string
	Score    float64
	Failed   bool
}

// Attempts decodes data with every encoding in the battery and returns
// the attempts ranked best first: successful attempts ordered by
// descending score, failures last, ties broken by encoding name.
func Attempts(data []byte) []Attempt {
	attempts := make([]Attempt, 0, len(battery))
	for _, c := range battery {
		a := Attempt{Encoding: c.name}
		decoded, err := c.enc.NewDecoder().Bytes(data)
		if err != nil {
			a.Failed = true
		} else {
			a.Text = string(decoded)
			a.Score = printableRatio(a.Text)
		}
		attempts = append(attempts, a)
	}
	sort.SliceStable(attempts, func(i, j int) bool {
		if attempts[i].Failed != attempts[j].Failed {
			return !attempts[i].Failed
		}
		if attempts[i].Score != attempts[j].Score {
			return attempts[i].Score > attempts[j].Score
		}
		return attempts[i].Encoding < attempts[j].Encoding
	})
	return attempts
}

// Best returns the highest ranked attempt for data. It reports false
// for an empty payload or when every attempt failed outright.
func Best(data []byte) (Attempt, bool) {
	if len(data) == 0 {
		return Attempt{}, false
	}
	attempts := Attempts(data)
	if attempts[0].Failed {
		return Attempt{}, false
	}
	return attempts[0], true
}

// DetectBOM reports the name of the byte order mark data starts with,
// if any. Detection is independent of the battery: a mark is a hint
// about intent, not proof the rest of the payload decodes.
func DetectBOM(data []byte) (string, bool) {
	for _, b := range boms {
		if bytes.HasPrefix(data, b.prefix) {
			return b.name, true
		}
	}
	return "", false
}
