// Package mocks provides centralized mock implementations for testing.
//
// Store mocks are built on testify/mock and are used by the service tests:
//
//	learners := &mocks.TestifyMockLearnerStore{}
//	learners.On("GetByName", mock.Anything, "ana").Return(learner, nil)
//
// Service mocks use function fields with call tracking and are used by the
// HTTP handler tests:
//
//	deckSvc := &mocks.MockDeckService{
//	    BuildDeckFn: func(ctx context.Context, req deck.Request) (*deck.Deck, error) {
//	        return &deck.Deck{Date: today}, nil
//	    },
//	}
package mocks
