package classify

import "strings"

// Confirmation is the outcome of yes/no detection on a follow-up message.
type Confirmation int

const (
	ConfirmNone Confirmation = iota
	ConfirmYes
	ConfirmNo
)

var yesPhrases = []string{"yes", "yeah", "yep", "ok", "okay", "sure", "go ahead", "proceed"}

var noPhrases = []string{"no", "nope", "not interested", "no thanks", "don't want", "don't", "dont"}

// DetectConfirmation reports whether a message is a yes/no follow-up.
// Multi-word phrases match as prefixes of the whole message; single words
// match only the first token, so "north chennai hospital" is not a decline.
func DetectConfirmation(message string) Confirmation {
	q := strings.ToLower(strings.TrimSpace(message))
	if q == "" {
		return ConfirmNone
	}

	first := q
	if i := strings.IndexAny(q, " \t,.!?"); i >= 0 {
		first = q[:i]
	}

	if matchPhrase(q, first, yesPhrases) {
		return ConfirmYes
	}
	if matchPhrase(q, first, noPhrases) {
		return ConfirmNo
	}
	return ConfirmNone
}

func matchPhrase(full, first string, phrases []string) bool {
	for _, p := range phrases {
		if strings.ContainsRune(p, ' ') {
			if strings.HasPrefix(full, p) {
				return true
			}
		} else if first == p {
			return true
		}
	}
	return false
}
