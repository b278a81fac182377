package domain

// DefaultLanguage is used for words imported without a detected language.
const DefaultLanguage = "other"

// Word is a vocabulary item that can appear in a learner's deck. Which words
// a learner may study is decided by tag membership, outside this type.
type Word struct {
	ID       int64  `json:"id"`
	Text     string `json:"text"`
	Language string `json:"language"`
}
