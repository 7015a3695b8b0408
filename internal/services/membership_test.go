package services

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/quitmate/quitmate-backend/internal/logger"
	"github.com/quitmate/quitmate-backend/internal/repos"
	"github.com/quitmate/quitmate-backend/internal/types"
)

func newMembershipServiceForTest(t *testing.T, gdb *gorm.DB) MembershipService {
	t.Helper()
	log := logger.NewNop()
	return NewMembershipService(gdb, log, repos.NewMembershipPlanRepo(gdb, log), repos.NewUserRepo(gdb, log))
}

func TestCreatePlan_PersistsInactiveFlag(t *testing.T) {
	gdb := newTestDB(t)
	svc := newMembershipServiceForTest(t, gdb)

	created, err := svc.CreatePlan(context.Background(), &types.MembershipPlan{
		Name:         "Gói nháp",
		Price:        99000,
		DurationDays: 30,
		IsActive:     false,
	})
	if err != nil {
		t.Fatalf("create plan: %v", err)
	}

	var stored types.MembershipPlan
	if err := gdb.Where("id = ?", created.ID).First(&stored).Error; err != nil {
		t.Fatalf("reading back plan: %v", err)
	}
	if stored.IsActive {
		t.Fatalf("expected is_active=false to be stored, got true")
	}

	active, err := svc.ListActivePlans(context.Background())
	if err != nil {
		t.Fatalf("list active plans: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("expected inactive plan to stay out of the public listing, got %d", len(active))
	}

	all, err := svc.ListAllPlans(context.Background())
	if err != nil {
		t.Fatalf("list all plans: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected the plan in the admin listing, got %d", len(all))
	}
}

func TestCreatePlan_RejectsNonPositiveDuration(t *testing.T) {
	gdb := newTestDB(t)
	svc := newMembershipServiceForTest(t, gdb)

	for _, days := range []int{0, -7} {
		_, err := svc.CreatePlan(context.Background(), &types.MembershipPlan{
			Name:         "Gói lỗi",
			Price:        99000,
			DurationDays: days,
		})
		if err == nil {
			t.Fatalf("expected error for duration_days=%d", days)
		}
	}
}

func TestAssignPlan_RequiresActivePlan(t *testing.T) {
	gdb := newTestDB(t)
	svc := newMembershipServiceForTest(t, gdb)
	userID := seedUser(t, gdb)

	plan, err := svc.CreatePlan(context.Background(), &types.MembershipPlan{
		Name:         "Gói ẩn",
		Price:        199000,
		DurationDays: 30,
		IsActive:     false,
	})
	if err != nil {
		t.Fatalf("create plan: %v", err)
	}

	if err := svc.AssignPlan(context.Background(), userID, plan.ID); err == nil {
		t.Fatalf("expected error assigning an inactive plan")
	}
}
