package service

import (
	"errors"
	"testing"

	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/entity"
	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/extract"
)

func TestAssembleProfile_AppliesDefaults(t *testing.T) {
	p := AssembleProfile("https://www.northwind.com", extract.Signals{})

	if p.Name != "Northwind" {
		t.Fatalf("expected hostname-derived name, got %q", p.Name)
	}
	if p.Description != entity.NoDescriptionFound {
		t.Fatalf("unexpected description %q", p.Description)
	}
	for field, got := range map[string]string{"industry": p.Industry, "team_size": p.TeamSize, "funding_stage": p.FundingStage} {
		if got != entity.Unknown {
			t.Fatalf("expected %s to default to Unknown, got %q", field, got)
		}
	}
	if p.Emails == nil || p.Phones == nil || p.Technologies == nil || p.SocialLinks == nil {
		t.Fatalf("expected empty collections instead of nil: %+v", p)
	}
	if p.Failed() {
		t.Fatalf("assembled profile must not be marked failed")
	}
}

func TestAssembleProfile_CapsContacts(t *testing.T) {
	p := AssembleProfile("https://acme.io", extract.Signals{
		Name:   "Acme",
		Emails: []string{"a@acme.io", "b@acme.io", "c@acme.io", "d@acme.io", "e@acme.io", "f@acme.io"},
		Phones: []string{"+14155550100", "+14155550101", "+14155550102", "+14155550103"},
	})

	if p.Name != "Acme" {
		t.Fatalf("expected extracted name to win, got %q", p.Name)
	}
	if len(p.Emails) != extract.MaxEmails {
		t.Fatalf("expected %d emails, got %d", extract.MaxEmails, len(p.Emails))
	}
	if len(p.Phones) != extract.MaxPhones {
		t.Fatalf("expected %d phones, got %d", extract.MaxPhones, len(p.Phones))
	}
	if p.Emails[0] != "a@acme.io" {
		t.Fatalf("expected first-seen order to be kept, got %v", p.Emails)
	}
}

func TestFailedProfile(t *testing.T) {
	p := FailedProfile("https://down.example", errors.New("connection refused"))
	if !p.Failed() {
		t.Fatalf("expected failed profile")
	}
	if p.FetchError != "connection refused" || p.Website != "https://down.example" {
		t.Fatalf("unexpected failed profile %+v", p)
	}
	if p.Name != "" || p.Industry != "" {
		t.Fatalf("failed profile must not carry extracted fields: %+v", p)
	}
}
