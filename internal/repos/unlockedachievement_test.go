package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/quitmate/quitmate-backend/internal/logger"
	"github.com/quitmate/quitmate-backend/internal/types"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("getting sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := gdb.AutoMigrate(&types.User{}, &types.Achievement{}, &types.UnlockedAchievement{}); err != nil {
		t.Fatalf("auto migrating: %v", err)
	}
	return gdb
}

func countPair(t *testing.T, gdb *gorm.DB, userID, achievementID uuid.UUID) int64 {
	t.Helper()
	var count int64
	if err := gdb.Model(&types.UnlockedAchievement{}).
		Where("user_id = ? AND achievement_id = ?", userID, achievementID).
		Count(&count).Error; err != nil {
		t.Fatalf("counting rows: %v", err)
	}
	return count
}

func unlockRow(userID, achievementID uuid.UUID) *types.UnlockedAchievement {
	return &types.UnlockedAchievement{
		ID:            uuid.New(),
		UserID:        userID,
		AchievementID: achievementID,
		EarnedAt:      time.Now().UTC(),
	}
}

func TestInsertIfAbsent_CreatesThenNoOps(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewUnlockedAchievementRepo(gdb, logger.NewNop())
	userID := uuid.New()
	achievementID := uuid.New()

	created, err := repo.InsertIfAbsent(context.Background(), nil, unlockRow(userID, achievementID))
	if err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if !created {
		t.Fatalf("expected first insert to create the row")
	}

	created, err = repo.InsertIfAbsent(context.Background(), nil, unlockRow(userID, achievementID))
	if err != nil {
		t.Fatalf("second insert: %v", err)
	}
	if created {
		t.Fatalf("expected second insert to be a no-op")
	}

	if count := countPair(t, gdb, userID, achievementID); count != 1 {
		t.Fatalf("expected exactly one row, got %d", count)
	}
}

func TestInsertIfAbsent_RejectsNilIDs(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewUnlockedAchievementRepo(gdb, logger.NewNop())

	created, err := repo.InsertIfAbsent(context.Background(), nil, unlockRow(uuid.Nil, uuid.New()))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if created {
		t.Fatalf("expected nil user id to be rejected")
	}
}

func TestListAchievementIDsByUserID(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewUnlockedAchievementRepo(gdb, logger.NewNop())
	userID := uuid.New()
	otherID := uuid.New()
	a1 := uuid.New()
	a2 := uuid.New()

	for _, row := range []*types.UnlockedAchievement{
		unlockRow(userID, a1),
		unlockRow(userID, a2),
		unlockRow(otherID, a1),
	} {
		if _, err := repo.InsertIfAbsent(context.Background(), nil, row); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	ids, err := repo.ListAchievementIDsByUserID(context.Background(), nil, userID)
	if err != nil {
		t.Fatalf("list ids: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 ids, got %d", len(ids))
	}
}

func TestDeleteByUserID_RemovesOnlyThatUser(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewUnlockedAchievementRepo(gdb, logger.NewNop())
	userID := uuid.New()
	otherID := uuid.New()
	achievementID := uuid.New()

	for _, row := range []*types.UnlockedAchievement{
		unlockRow(userID, achievementID),
		unlockRow(otherID, achievementID),
	} {
		if _, err := repo.InsertIfAbsent(context.Background(), nil, row); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	if err := repo.DeleteByUserID(context.Background(), nil, userID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if count := countPair(t, gdb, userID, achievementID); count != 0 {
		t.Fatalf("expected user rows gone, got %d", count)
	}
	if count := countPair(t, gdb, otherID, achievementID); count != 1 {
		t.Fatalf("expected other user's row kept, got %d", count)
	}
}
