package enum

import "testing"

func TestTransactionKindStringOutOfRange(t *testing.T) {
	cases := []struct {
		kind TransactionKind
		want string
	}{
		{TransactionKindTakeAway, "Take Away"},
		{TransactionKindConversion, "Sales Invoice Conversion"},
		{TransactionKind(-1), "Uninitialized"},
		{TransactionKind(99), "Uninitialized"},
	}
	for _, c := range cases {
		if got := c.kind.String(); got != c.want {
			t.Errorf("TransactionKind(%d).String() = %q, want %q", c.kind, got, c.want)
		}
	}
}

func TestSubmissionStatusStringOutOfRange(t *testing.T) {
	cases := []struct {
		status SubmissionStatus
		want   string
	}{
		{SubmissionStatusCompleted, "Completed"},
		{SubmissionStatusDead, "Dead"},
		{SubmissionStatus(-1), "Pending"},
		{SubmissionStatus(42), "Pending"},
	}
	for _, c := range cases {
		if got := c.status.String(); got != c.want {
			t.Errorf("SubmissionStatus(%d).String() = %q, want %q", c.status, got, c.want)
		}
	}
}
