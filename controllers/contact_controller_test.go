package controllers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bhavesh4825f/project/models"
)

func TestNewContactQueryDefaultsSubject(t *testing.T) {
	query := newContactQuery(models.ContactRequest{
		Name:    "Asha Patel",
		Email:   "Asha@Example.com",
		Message: "How long does a PAN card take?",
	})

	require.Equal(t, "General Inquiry", query.Subject)
	require.Equal(t, "asha@example.com", query.Email)
	require.Equal(t, "pending", query.Status)
	require.False(t, query.SubmittedAt.IsZero())
}

func TestNewContactQueryKeepsGivenSubject(t *testing.T) {
	query := newContactQuery(models.ContactRequest{
		Name:    "Asha Patel",
		Email:   "asha@example.com",
		Subject: "  PAN card status  ",
		Message: "Any update?",
	})

	require.Equal(t, "PAN card status", query.Subject)
}
