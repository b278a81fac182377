package deck

import (
	"cmp"
	"slices"
	"time"

	"github.com/spellwise/vocab-api/internal/domain"
)

// EmptyReason explains a deck that was cut short before selection ran.
type EmptyReason string

// Possible empty reasons. EmptyReasonNone is also used for a legitimately
// small or empty deck.
const (
	EmptyReasonNone    EmptyReason = ""
	EmptyReasonNoTags  EmptyReason = "no_tags"
	EmptyReasonNoWords EmptyReason = "no_words"
)

// Card is one word of the deck together with its scheduling snapshot.
// New words carry a synthesized default state due today.
type Card struct {
	Word  domain.Word
	State *domain.ReviewState
	IsNew bool
}

// Deck is the ordered set of cards for one learner on one day.
type Deck struct {
	Date        time.Time
	Cards       []Card
	EmptyReason EmptyReason
}

// Build selects and orders the cards of a deck.
//
// Words with a state due on or before today come first, ordered by due date,
// then ease factor, then word ID. Remaining capacity is filled with words that
// have no state, in pool order. Words with a future due date are skipped.
// Build never returns more than limit cards.
func Build(
	learnerID int64,
	pool []domain.Word,
	states map[int64]*domain.ReviewState,
	today time.Time,
	limit int,
) []Card {
	if limit <= 0 {
		return []Card{}
	}

	var overdue, fresh []Card
	for _, w := range pool {
		st, ok := states[w.ID]
		if !ok {
			fresh = append(fresh, Card{Word: w, IsNew: true})
			continue
		}
		if st.IsDue(today) {
			overdue = append(overdue, Card{Word: w, State: st})
		}
	}

	slices.SortFunc(overdue, func(a, b Card) int {
		if c := a.State.EffectiveDueDate(today).Compare(b.State.EffectiveDueDate(today)); c != 0 {
			return c
		}
		if c := cmp.Compare(a.State.EaseFactor, b.State.EaseFactor); c != 0 {
			return c
		}
		return cmp.Compare(a.Word.ID, b.Word.ID)
	})

	cards := make([]Card, 0, min(limit, len(overdue)+len(fresh)))
	for _, c := range overdue {
		if len(cards) >= limit {
			return cards
		}
		snapshot := c.State.Clone()
		snapshot.DueDate = c.State.EffectiveDueDate(today)
		cards = append(cards, Card{Word: c.Word, State: snapshot})
	}
	for _, c := range fresh {
		if len(cards) >= limit {
			break
		}
		st := domain.NewReviewState(learnerID, c.Word.ID)
		st.DueDate = today
		cards = append(cards, Card{Word: c.Word, State: st, IsNew: true})
	}

	return cards
}
