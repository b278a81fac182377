package domain

import "time"

// StudyHistory counts how often a learner has studied a word. It is
// bookkeeping only and never influences scheduling.
type StudyHistory struct {
	LearnerID     int64     `json:"learner_id"`
	WordID        int64     `json:"word_id"`
	Count         int       `json:"count"`
	LastStudiedAt time.Time `json:"last_studied_at"`
}
