package utils

import "testing"

func TestIsValidEmail(t *testing.T) {
	valid := []string{"amira@example.com", "Ben.Okafor+test@mail.co.uk"}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Fatalf("expected %q to be a valid email", email)
		}
	}

	invalid := []string{"", "not-an-email", "missing@domain", "@example.com"}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Fatalf("expected %q to be rejected", email)
		}
	}
}

func TestIsValidPhone(t *testing.T) {
	valid := []string{"+441234567890", "(123) 456-7890", "0123 456 789"}
	for _, phone := range valid {
		if !IsValidPhone(phone) {
			t.Fatalf("expected %q to be a valid phone number", phone)
		}
	}

	invalid := []string{"call me", "phone"}
	for _, phone := range invalid {
		if IsValidPhone(phone) {
			t.Fatalf("expected %q to be rejected", phone)
		}
	}
}

func TestIsEmpty(t *testing.T) {
	if !IsEmpty("   ") {
		t.Fatalf("expected whitespace-only string to be empty")
	}
	if IsEmpty(" x ") {
		t.Fatalf("expected non-blank string not to be empty")
	}
}
