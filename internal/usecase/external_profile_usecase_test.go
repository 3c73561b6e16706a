package usecase

import (
	"context"
	"testing"

	"health-program-registry/internal/delivery/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestGetClientProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	client, err := f.clients.CreateClient(ctx, &dto.CreateClientRequest{
		FirstName:   "Ann",
		LastName:    "Lee",
		DateOfBirth: "1990-04-12",
		Gender:      "female",
		Email:       "ann.lee@example.com",
		Address:     "12 Elm Street",
	})
	require.NoError(t, err)

	program := mustCreateProgram(t, f, "Diabetes Care")
	enrollment, err := f.enrollments.CreateEnrollment(ctx, &dto.CreateEnrollmentRequest{
		ClientID:  client.ID.String(),
		ProgramID: program.ID.String(),
		StartDate: "2024-02-01",
		Notes:     "internal note",
	})
	require.NoError(t, err)

	profile, err := f.external.GetClientProfile(ctx, client.ID)
	require.NoError(t, err)
	require.Equal(t, client.ID, profile.ID)
	require.Equal(t, "Ann", profile.FirstName)
	require.Equal(t, "1990-04-12", profile.DateOfBirth)

	require.NotNil(t, profile.ContactInfo)
	require.NotNil(t, profile.ContactInfo.Email)
	require.Equal(t, "ann.lee@example.com", *profile.ContactInfo.Email)
	require.Nil(t, profile.ContactInfo.Phone)

	// The projection carries the program id, never the enrollment id
	require.Len(t, profile.Programs, 1)
	require.Equal(t, program.ID, profile.Programs[0].ID)
	require.NotEqual(t, enrollment.ID, profile.Programs[0].ID)
	require.Equal(t, "Diabetes Care", profile.Programs[0].Name)
	require.Equal(t, "active", profile.Programs[0].Status)
	require.Nil(t, profile.Programs[0].EndDate)
}

func TestGetClientProfileNoContactInfo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	client := mustCreateClient(t, f, "Ann", "Lee")

	profile, err := f.external.GetClientProfile(ctx, client.ID)
	require.NoError(t, err)
	require.Nil(t, profile.ContactInfo)
	require.Empty(t, profile.Programs)
}

func TestGetClientProfileOrdering(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	client := mustCreateClient(t, f, "Ann", "Lee")
	first := mustCreateProgram(t, f, "Diabetes Care")
	second := mustCreateProgram(t, f, "Nutrition Support")

	_, err := f.enrollments.CreateEnrollment(ctx, &dto.CreateEnrollmentRequest{
		ClientID:  client.ID.String(),
		ProgramID: first.ID.String(),
		StartDate: "2024-01-01",
	})
	require.NoError(t, err)
	_, err = f.enrollments.CreateEnrollment(ctx, &dto.CreateEnrollmentRequest{
		ClientID:  client.ID.String(),
		ProgramID: second.ID.String(),
		StartDate: "2024-06-01",
	})
	require.NoError(t, err)

	profile, err := f.external.GetClientProfile(ctx, client.ID)
	require.NoError(t, err)
	require.Len(t, profile.Programs, 2)
	require.Equal(t, "Nutrition Support", profile.Programs[0].Name)
	require.Equal(t, "Diabetes Care", profile.Programs[1].Name)
}

func TestGetClientProfileNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.external.GetClientProfile(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrClientNotFound)
}
