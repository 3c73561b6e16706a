package usecase

import (
	"context"
	"testing"

	"health-program-registry/internal/delivery/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestCreateProgram(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.programs.CreateProgram(ctx, &dto.CreateProgramRequest{
		Name:        "Diabetes Care",
		Description: "Ongoing diabetes management",
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)
	require.True(t, created.Active)
	require.NotNil(t, created.Description)
	require.Equal(t, "Ongoing diabetes management", *created.Description)

	inactive := false
	created, err = f.programs.CreateProgram(ctx, &dto.CreateProgramRequest{
		Name:   "Archived Program",
		Active: &inactive,
	})
	require.NoError(t, err)
	require.False(t, created.Active)
	require.Nil(t, created.Description)

	_, err = f.programs.CreateProgram(ctx, &dto.CreateProgramRequest{})
	require.ErrorIs(t, err, ErrProgramNameRequired)
}

func TestCreateProgramDuplicateName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	mustCreateProgram(t, f, "Diabetes Care")

	_, err := f.programs.CreateProgram(ctx, &dto.CreateProgramRequest{Name: "Diabetes Care"})
	require.ErrorIs(t, err, ErrProgramNameExists)
}

func TestUpdateProgram(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := mustCreateProgram(t, f, "Diabetes Care")
	second := mustCreateProgram(t, f, "Nutrition Support")

	// Renaming onto a taken name conflicts
	_, err := f.programs.UpdateProgram(ctx, second.ID, &dto.UpdateProgramRequest{
		Name: optVal("Diabetes Care"),
	})
	require.ErrorIs(t, err, ErrProgramNameExists)

	// Keeping the current name is not a conflict with itself
	updated, err := f.programs.UpdateProgram(ctx, first.ID, &dto.UpdateProgramRequest{
		Name:   optVal("Diabetes Care"),
		Active: optVal(false),
	})
	require.NoError(t, err)
	require.False(t, updated.Active)

	updated, err = f.programs.UpdateProgram(ctx, second.ID, &dto.UpdateProgramRequest{
		Description: optNull[string](),
	})
	require.NoError(t, err)
	require.Nil(t, updated.Description)
	require.Equal(t, "Nutrition Support", updated.Name)

	_, err = f.programs.UpdateProgram(ctx, uuid.New(), &dto.UpdateProgramRequest{})
	require.ErrorIs(t, err, ErrProgramNotFound)
}

func TestListProgramsFiltersInactive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	mustCreateProgram(t, f, "Diabetes Care")
	program := mustCreateProgram(t, f, "Nutrition Support")

	_, err := f.programs.UpdateProgram(ctx, program.ID, &dto.UpdateProgramRequest{
		Active: optVal(false),
	})
	require.NoError(t, err)

	active, err := f.programs.ListPrograms(ctx, "", false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, "Diabetes Care", active[0].Name)

	all, err := f.programs.ListPrograms(ctx, "", true)
	require.NoError(t, err)
	require.Len(t, all, 2)

	filtered, err := f.programs.ListPrograms(ctx, "Nutrition", true)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
}

func TestGetProgramWithEnrollmentCount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	program := mustCreateProgram(t, f, "Diabetes Care")
	client := mustCreateClient(t, f, "Ann", "Lee")

	detail, err := f.programs.GetProgram(ctx, program.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), detail.EnrollmentCount)

	_, err = f.enrollments.CreateEnrollment(ctx, &dto.CreateEnrollmentRequest{
		ClientID:  client.ID.String(),
		ProgramID: program.ID.String(),
	})
	require.NoError(t, err)

	detail, err = f.programs.GetProgram(ctx, program.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), detail.EnrollmentCount)

	_, err = f.programs.GetProgram(ctx, uuid.New())
	require.ErrorIs(t, err, ErrProgramNotFound)
}

func TestDeleteProgramBlockedByEnrollments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	program := mustCreateProgram(t, f, "Diabetes Care")
	client := mustCreateClient(t, f, "Ann", "Lee")

	enrollment, err := f.enrollments.CreateEnrollment(ctx, &dto.CreateEnrollmentRequest{
		ClientID:  client.ID.String(),
		ProgramID: program.ID.String(),
	})
	require.NoError(t, err)

	require.ErrorIs(t, f.programs.DeleteProgram(ctx, program.ID), ErrProgramHasEnrollments)

	// Even a finished enrollment keeps the program referenced
	_, err = f.enrollments.UpdateEnrollment(ctx, enrollment.ID, &dto.UpdateEnrollmentRequest{
		Status: optVal("completed"),
	})
	require.NoError(t, err)
	require.ErrorIs(t, f.programs.DeleteProgram(ctx, program.ID), ErrProgramHasEnrollments)

	require.NoError(t, f.enrollments.DeleteEnrollment(ctx, enrollment.ID))
	require.NoError(t, f.programs.DeleteProgram(ctx, program.ID))

	_, err = f.programs.GetProgram(ctx, program.ID)
	require.ErrorIs(t, err, ErrProgramNotFound)

	require.ErrorIs(t, f.programs.DeleteProgram(ctx, uuid.New()), ErrProgramNotFound)
}
