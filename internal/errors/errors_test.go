package errors

import "testing"

// The not-found sentinels must share one client-facing message so a response
// never reveals whether a row exists under another account.
func TestNotFoundMessagesIndistinguishable(t *testing.T) {
	want := ErrNotFound.Message
	for _, sentinel := range []*AppError{ErrTaskNotFound, ErrCategoryNotFound, ErrUserNotFound} {
		if sentinel.Message != want {
			t.Errorf("%s message %q diverges from %q", sentinel.Code, sentinel.Message, want)
		}
	}
}
