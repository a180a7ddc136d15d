package session

import "github.com/google/uuid"

// Destructive operations (recipe deletion, clearing the working state) are
// guarded by an explicit two-phase flow: the UI requests a token for the
// action, shows its prompt, and either confirms or cancels. The guarded
// mutation itself stays synchronous and total; declining leaves all state
// untouched.

// ConfirmToken identifies one pending guarded action.
type ConfirmToken string

// RequestConfirmation registers an action to run on confirmation and
// returns its token.
func (s *Session) RequestConfirmation(apply func()) ConfirmToken {
	tok := ConfirmToken(uuid.New().String()[:8])
	s.pending[string(tok)] = apply
	return tok
}

// Confirm runs and discards the pending action for the token. Returns
// false for unknown or already-settled tokens.
func (s *Session) Confirm(tok ConfirmToken) bool {
	apply, ok := s.pending[string(tok)]
	if !ok {
		return false
	}
	delete(s.pending, string(tok))
	apply()
	return true
}

// Cancel discards the pending action without running it.
func (s *Session) Cancel(tok ConfirmToken) bool {
	if _, ok := s.pending[string(tok)]; !ok {
		return false
	}
	delete(s.pending, string(tok))
	return true
}
