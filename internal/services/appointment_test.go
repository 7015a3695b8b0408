package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quitmate/quitmate-backend/internal/logger"
	"github.com/quitmate/quitmate-backend/internal/repos"
	"github.com/quitmate/quitmate-backend/internal/types"
)

func newAppointmentServiceForTest(t *testing.T, gdb *gorm.DB) AppointmentService {
	t.Helper()
	log := logger.NewNop()
	return NewAppointmentService(gdb, log, repos.NewAppointmentRepo(gdb, log), repos.NewUserRepo(gdb, log))
}

func seedCoach(t *testing.T, gdb *gorm.DB) uuid.UUID {
	t.Helper()
	u := &types.User{
		ID:       uuid.New(),
		Email:    uuid.NewString() + "@example.com",
		FullName: "Test Coach",
		Role:     types.RoleCoach,
	}
	if err := gdb.Create(u).Error; err != nil {
		t.Fatalf("seeding coach: %v", err)
	}
	return u.ID
}

func bookAppointment(t *testing.T, svc AppointmentService, memberID, coachID uuid.UUID) *types.Appointment {
	t.Helper()
	starts := time.Now().UTC().Add(24 * time.Hour)
	appt, err := svc.Book(context.Background(), BookAppointmentInput{
		MemberID: memberID,
		CoachID:  coachID,
		StartsAt: starts,
		EndsAt:   starts.Add(30 * time.Minute),
	})
	if err != nil {
		t.Fatalf("booking appointment: %v", err)
	}
	return appt
}

func TestBook_StartsPending(t *testing.T) {
	gdb := newTestDB(t)
	svc := newAppointmentServiceForTest(t, gdb)
	memberID := seedUser(t, gdb)
	coachID := seedCoach(t, gdb)

	appt := bookAppointment(t, svc, memberID, coachID)
	if appt.Status != types.AppointmentPending {
		t.Fatalf("expected pending status, got %s", appt.Status)
	}
}

func TestBook_RejectsNonCoach(t *testing.T) {
	gdb := newTestDB(t)
	svc := newAppointmentServiceForTest(t, gdb)
	memberID := seedUser(t, gdb)
	otherMemberID := seedUser(t, gdb)

	starts := time.Now().UTC().Add(time.Hour)
	_, err := svc.Book(context.Background(), BookAppointmentInput{
		MemberID: memberID,
		CoachID:  otherMemberID,
		StartsAt: starts,
		EndsAt:   starts.Add(time.Hour),
	})
	if err == nil {
		t.Fatalf("expected error booking with a non-coach")
	}
}

func TestBook_RejectsEndBeforeStart(t *testing.T) {
	gdb := newTestDB(t)
	svc := newAppointmentServiceForTest(t, gdb)
	memberID := seedUser(t, gdb)
	coachID := seedCoach(t, gdb)

	starts := time.Now().UTC().Add(time.Hour)
	_, err := svc.Book(context.Background(), BookAppointmentInput{
		MemberID: memberID,
		CoachID:  coachID,
		StartsAt: starts,
		EndsAt:   starts.Add(-time.Minute),
	})
	if err == nil {
		t.Fatalf("expected error for end before start")
	}
}

func TestTransitions_LegalPath(t *testing.T) {
	gdb := newTestDB(t)
	svc := newAppointmentServiceForTest(t, gdb)
	memberID := seedUser(t, gdb)
	coachID := seedCoach(t, gdb)
	appt := bookAppointment(t, svc, memberID, coachID)

	confirmed, err := svc.Confirm(context.Background(), appt.ID)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if confirmed.Status != types.AppointmentConfirmed {
		t.Fatalf("expected confirmed, got %s", confirmed.Status)
	}

	completed, err := svc.Complete(context.Background(), appt.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if completed.Status != types.AppointmentCompleted {
		t.Fatalf("expected completed, got %s", completed.Status)
	}
}

func TestTransitions_IllegalMovesRejected(t *testing.T) {
	gdb := newTestDB(t)
	svc := newAppointmentServiceForTest(t, gdb)
	memberID := seedUser(t, gdb)
	coachID := seedCoach(t, gdb)

	// Pending cannot jump straight to completed.
	appt := bookAppointment(t, svc, memberID, coachID)
	if _, err := svc.Complete(context.Background(), appt.ID); err == nil {
		t.Fatalf("expected error completing a pending appointment")
	}

	// Cancelled is terminal.
	if _, err := svc.Cancel(context.Background(), appt.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := svc.Confirm(context.Background(), appt.ID); err == nil {
		t.Fatalf("expected error confirming a cancelled appointment")
	}

	// Completed is terminal.
	second := bookAppointment(t, svc, memberID, coachID)
	if _, err := svc.Confirm(context.Background(), second.ID); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if _, err := svc.Complete(context.Background(), second.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if _, err := svc.Cancel(context.Background(), second.ID); err == nil {
		t.Fatalf("expected error cancelling a completed appointment")
	}
}
