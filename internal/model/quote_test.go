package model

import "testing"

func TestQuoteTransitionAllowed(t *testing.T) {
	allowed := []struct{ from, to QuoteStatus }{
		{QuoteStatusDraft, QuoteStatusSent},
		{QuoteStatusDraft, QuoteStatusRejected},
		{QuoteStatusDraft, QuoteStatusExpired},
		{QuoteStatusSent, QuoteStatusAccepted},
		{QuoteStatusSent, QuoteStatusRejected},
		{QuoteStatusSent, QuoteStatusExpired},
		{QuoteStatusAccepted, QuoteStatusConverted},
	}
	for _, tc := range allowed {
		if !QuoteTransitionAllowed(tc.from, tc.to) {
			t.Fatalf("expected %s -> %s to be allowed", tc.from, tc.to)
		}
	}

	denied := []struct{ from, to QuoteStatus }{
		{QuoteStatusDraft, QuoteStatusAccepted},
		{QuoteStatusDraft, QuoteStatusConverted},
		{QuoteStatusSent, QuoteStatusDraft},
		{QuoteStatusAccepted, QuoteStatusSent},
		{QuoteStatusRejected, QuoteStatusSent},
		{QuoteStatusExpired, QuoteStatusDraft},
		{QuoteStatusConverted, QuoteStatusAccepted},
	}
	for _, tc := range denied {
		if QuoteTransitionAllowed(tc.from, tc.to) {
			t.Fatalf("expected %s -> %s to be denied", tc.from, tc.to)
		}
	}
}

func TestQuoteStatusEditable(t *testing.T) {
	editable := []QuoteStatus{QuoteStatusDraft, QuoteStatusSent}
	for _, s := range editable {
		if !s.Editable() {
			t.Fatalf("expected %s to be editable", s)
		}
	}
	frozen := []QuoteStatus{QuoteStatusAccepted, QuoteStatusRejected, QuoteStatusExpired, QuoteStatusConverted}
	for _, s := range frozen {
		if s.Editable() {
			t.Fatalf("expected %s to be frozen", s)
		}
	}
}

func TestQuoteStatusValid(t *testing.T) {
	if QuoteStatus("pending").Valid() {
		t.Fatal("pending is not a quote status")
	}
	if !QuoteStatusConverted.Valid() {
		t.Fatal("converted should be valid")
	}
}
