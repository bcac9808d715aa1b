package domain

import "testing"

func TestConversationParticipants(t *testing.T) {
	conv := Conversation{ID: 1, ListingID: "l1", RequesterID: "b", OwnerID: "a"}

	if !conv.HasParticipant("a") || !conv.HasParticipant("b") {
		t.Fatalf("expected requester and owner to be participants")
	}
	if conv.HasParticipant("d") || conv.HasParticipant("") {
		t.Fatalf("expected outsiders and empty ids to be rejected")
	}
	if got := conv.Counterpart("a"); got != "b" {
		t.Fatalf("expected counterpart b, got %q", got)
	}
	if got := conv.Counterpart("b"); got != "a" {
		t.Fatalf("expected counterpart a, got %q", got)
	}
}
