package services

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/quitmate/quitmate-backend/internal/logger"
	"github.com/quitmate/quitmate-backend/internal/repos"
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
	// One connection so every session sees the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	if err := gdb.AutoMigrate(
		&types.User{},
		&types.MembershipPlan{},
		&types.ProgressEntry{},
		&types.Achievement{},
		&types.UnlockedAchievement{},
		&types.Appointment{},
		&types.ChatMessage{},
		&types.CoachFeedback{},
	); err != nil {
		t.Fatalf("auto migrating: %v", err)
	}
	return gdb
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []UnlockEvent
}

func (n *recordingNotifier) NotifyUnlock(ctx context.Context, event UnlockEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.events)
}

func newAchievementServiceForTest(t *testing.T, gdb *gorm.DB) (AchievementService, *recordingNotifier) {
	t.Helper()
	log := logger.NewNop()
	notifier := &recordingNotifier{}
	svc := NewAchievementService(
		gdb,
		log,
		repos.NewProgressEntryRepo(gdb, log),
		repos.NewAchievementRepo(gdb, log),
		repos.NewUnlockedAchievementRepo(gdb, log),
		notifier,
	)
	return svc, notifier
}

func seedUser(t *testing.T, gdb *gorm.DB) uuid.UUID {
	t.Helper()
	u := &types.User{
		ID:       uuid.New(),
		Email:    uuid.NewString() + "@example.com",
		FullName: "Test Member",
		Role:     types.RoleMember,
	}
	if err := gdb.Create(u).Error; err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	return u.ID
}

func seedDaysAchievement(t *testing.T, gdb *gorm.DB, name string, days int) *types.Achievement {
	t.Helper()
	a := &types.Achievement{
		ID:            uuid.New(),
		Name:          name,
		MilestoneDays: &days,
		IsActive:      true,
	}
	if err := gdb.Create(a).Error; err != nil {
		t.Fatalf("seeding achievement: %v", err)
	}
	return a
}

func seedMoneyAchievement(t *testing.T, gdb *gorm.DB, name string, threshold int64) *types.Achievement {
	t.Helper()
	a := &types.Achievement{
		ID:                  uuid.New(),
		Name:                name,
		SavedMoneyThreshold: &threshold,
		IsActive:            true,
	}
	if err := gdb.Create(a).Error; err != nil {
		t.Fatalf("seeding achievement: %v", err)
	}
	return a
}

func seedEntry(t *testing.T, gdb *gorm.DB, userID uuid.UUID, daysSmokeFree int, moneySaved int64) {
	t.Helper()
	e := &types.ProgressEntry{
		ID:            uuid.New(),
		UserID:        userID,
		EntryDate:     time.Now().UTC(),
		DaysSmokeFree: daysSmokeFree,
		MoneySaved:    moneySaved,
	}
	if err := gdb.Create(e).Error; err != nil {
		t.Fatalf("seeding progress entry: %v", err)
	}
}

func countUnlockRows(t *testing.T, gdb *gorm.DB, userID uuid.UUID) int64 {
	t.Helper()
	var count int64
	if err := gdb.Model(&types.UnlockedAchievement{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		t.Fatalf("counting unlock rows: %v", err)
	}
	return count
}

func TestReduceProgressSummary_MaxDaysSumMoney(t *testing.T) {
	entries := []*types.ProgressEntry{
		{DaysSmokeFree: 3, MoneySaved: 10000},
		{DaysSmokeFree: 7, MoneySaved: 20000},
		{DaysSmokeFree: 5, MoneySaved: 15000},
	}
	summary := reduceProgressSummary(entries)
	if summary.MaxDaysSmokeFree != 7 {
		t.Fatalf("expected max days 7, got %d", summary.MaxDaysSmokeFree)
	}
	if summary.TotalMoneySaved != 45000 {
		t.Fatalf("expected total money 45000, got %d", summary.TotalMoneySaved)
	}
}

func TestCheckAndUnlock_UnlocksOnceThenEmpty(t *testing.T) {
	gdb := newTestDB(t)
	svc, notifier := newAchievementServiceForTest(t, gdb)
	userID := seedUser(t, gdb)
	seedDaysAchievement(t, gdb, "Ngày đầu tiên", 1)
	seedDaysAchievement(t, gdb, "Tuần lễ khởi đầu", 7)
	seedEntry(t, gdb, userID, 7, 0)

	first, err := svc.CheckAndUnlock(context.Background(), userID)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("expected 2 unlocks on first call, got %d", len(first))
	}

	second, err := svc.CheckAndUnlock(context.Background(), userID)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if len(second) != 0 {
		t.Fatalf("expected no unlocks on second call, got %d", len(second))
	}

	if notifier.count() != 2 {
		t.Fatalf("expected 2 unlock events, got %d", notifier.count())
	}
	if got := countUnlockRows(t, gdb, userID); got != 2 {
		t.Fatalf("expected 2 unlock rows, got %d", got)
	}
}

func TestCheckAndUnlock_ConcurrentCallsProduceNoDuplicates(t *testing.T) {
	gdb := newTestDB(t)
	svc, _ := newAchievementServiceForTest(t, gdb)
	userID := seedUser(t, gdb)
	seedMoneyAchievement(t, gdb, "Tiết kiệm 100K", 100000)
	seedEntry(t, gdb, userID, 0, 120000)

	const callers = 8
	var wg sync.WaitGroup
	var mu sync.Mutex
	totalUnlocked := 0
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlocked, err := svc.CheckAndUnlock(context.Background(), userID)
			if err != nil {
				t.Errorf("concurrent call: %v", err)
				return
			}
			mu.Lock()
			totalUnlocked += len(unlocked)
			mu.Unlock()
		}()
	}
	wg.Wait()

	if totalUnlocked != 1 {
		t.Fatalf("expected exactly 1 unlock across %d concurrent calls, got %d", callers, totalUnlocked)
	}
	if got := countUnlockRows(t, gdb, userID); got != 1 {
		t.Fatalf("expected 1 unlock row, got %d", got)
	}
}

func TestEvaluate_OrThresholdSemantics(t *testing.T) {
	gdb := newTestDB(t)
	svc, _ := newAchievementServiceForTest(t, gdb)
	userID := seedUser(t, gdb)

	days := 7
	threshold := int64(100000)
	both := &types.Achievement{
		ID:                  uuid.New(),
		Name:                "Kiên trì hoặc tiết kiệm",
		MilestoneDays:       &days,
		SavedMoneyThreshold: &threshold,
		IsActive:            true,
	}
	if err := gdb.Create(both).Error; err != nil {
		t.Fatalf("seeding achievement: %v", err)
	}

	// Only the money side is satisfied.
	seedEntry(t, gdb, userID, 0, 120000)

	qualifying, err := svc.Evaluate(context.Background(), userID)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(qualifying) != 1 || qualifying[0].ID != both.ID {
		t.Fatalf("expected the dual-threshold achievement to qualify on money alone, got %d results", len(qualifying))
	}
}

func TestEvaluate_EmptyHistoryIsSafe(t *testing.T) {
	gdb := newTestDB(t)
	svc, _ := newAchievementServiceForTest(t, gdb)
	userID := seedUser(t, gdb)
	seedDaysAchievement(t, gdb, "Ngày đầu tiên", 1)

	qualifying, err := svc.Evaluate(context.Background(), userID)
	if err != nil {
		t.Fatalf("evaluate with no entries: %v", err)
	}
	if len(qualifying) != 0 {
		t.Fatalf("expected no qualifying achievements, got %d", len(qualifying))
	}
}

func TestEvaluate_SkipsAlreadyUnlocked(t *testing.T) {
	gdb := newTestDB(t)
	svc, _ := newAchievementServiceForTest(t, gdb)
	userID := seedUser(t, gdb)
	day1 := seedDaysAchievement(t, gdb, "Ngày đầu tiên", 1)
	day30 := seedDaysAchievement(t, gdb, "Tháng đầu tiên", 30)

	existing := &types.UnlockedAchievement{
		ID:            uuid.New(),
		UserID:        userID,
		AchievementID: day1.ID,
		EarnedAt:      time.Now().UTC(),
	}
	if err := gdb.Create(existing).Error; err != nil {
		t.Fatalf("seeding unlock: %v", err)
	}

	seedEntry(t, gdb, userID, 30, 0)

	qualifying, err := svc.Evaluate(context.Background(), userID)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(qualifying) != 1 || qualifying[0].ID != day30.ID {
		t.Fatalf("expected only the 30-day achievement, got %d results", len(qualifying))
	}
}

func TestEvaluate_ReturnsCatalogIDOrder(t *testing.T) {
	gdb := newTestDB(t)
	svc, _ := newAchievementServiceForTest(t, gdb)
	userID := seedUser(t, gdb)

	created := []*types.Achievement{
		seedDaysAchievement(t, gdb, "A", 1),
		seedDaysAchievement(t, gdb, "B", 2),
		seedDaysAchievement(t, gdb, "C", 3),
	}
	seedEntry(t, gdb, userID, 10, 0)

	want := make([]string, 0, len(created))
	for _, a := range created {
		want = append(want, a.ID.String())
	}
	sort.Strings(want)

	qualifying, err := svc.Evaluate(context.Background(), userID)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(qualifying) != len(want) {
		t.Fatalf("expected %d qualifying, got %d", len(want), len(qualifying))
	}
	for i, a := range qualifying {
		if a.ID.String() != want[i] {
			t.Fatalf("expected id order %v, got %s at index %d", want, a.ID, i)
		}
	}
}

func TestEvaluate_SkipsDefinitionWithoutThresholds(t *testing.T) {
	gdb := newTestDB(t)
	svc, _ := newAchievementServiceForTest(t, gdb)
	userID := seedUser(t, gdb)

	// Bypasses service validation on purpose; such rows can exist in the store.
	invalid := &types.Achievement{
		ID:       uuid.New(),
		Name:     "Không điều kiện",
		IsActive: true,
	}
	if err := gdb.Create(invalid).Error; err != nil {
		t.Fatalf("seeding achievement: %v", err)
	}
	seedEntry(t, gdb, userID, 100, 1000000)

	qualifying, err := svc.Evaluate(context.Background(), userID)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(qualifying) != 0 {
		t.Fatalf("expected threshold-less definition to be skipped, got %d results", len(qualifying))
	}
}

func TestEvaluate_IgnoresInactiveDefinitions(t *testing.T) {
	gdb := newTestDB(t)
	svc, _ := newAchievementServiceForTest(t, gdb)
	userID := seedUser(t, gdb)

	days := 1
	inactive := &types.Achievement{
		ID:            uuid.New(),
		Name:          "Tạm ẩn",
		MilestoneDays: &days,
		IsActive:      false,
	}
	if err := gdb.Create(inactive).Error; err != nil {
		t.Fatalf("seeding achievement: %v", err)
	}
	seedEntry(t, gdb, userID, 10, 0)

	qualifying, err := svc.Evaluate(context.Background(), userID)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(qualifying) != 0 {
		t.Fatalf("expected inactive definition to be ignored, got %d results", len(qualifying))
	}
}

func TestCheckAndUnlock_MonotonicUnlockAfterNewProgress(t *testing.T) {
	gdb := newTestDB(t)
	svc, _ := newAchievementServiceForTest(t, gdb)
	userID := seedUser(t, gdb)
	week := seedDaysAchievement(t, gdb, "Tuần lễ khởi đầu", 7)

	seedEntry(t, gdb, userID, 5, 0)
	unlocked, err := svc.CheckAndUnlock(context.Background(), userID)
	if err != nil {
		t.Fatalf("first check: %v", err)
	}
	if len(unlocked) != 0 {
		t.Fatalf("expected no unlocks at 5 days, got %d", len(unlocked))
	}

	seedEntry(t, gdb, userID, 7, 0)
	unlocked, err = svc.CheckAndUnlock(context.Background(), userID)
	if err != nil {
		t.Fatalf("second check: %v", err)
	}
	if len(unlocked) != 1 || unlocked[0].ID != week.ID {
		t.Fatalf("expected the 7-day achievement after new progress, got %d results", len(unlocked))
	}
}

func TestRecordUnlocks_RepeatReturnsNothingNew(t *testing.T) {
	gdb := newTestDB(t)
	svc, _ := newAchievementServiceForTest(t, gdb)
	userID := seedUser(t, gdb)
	a := seedDaysAchievement(t, gdb, "Ngày đầu tiên", 1)

	created, err := svc.RecordUnlocks(context.Background(), userID, []uuid.UUID{a.ID})
	if err != nil {
		t.Fatalf("first record: %v", err)
	}
	if len(created) != 1 || created[0] != a.ID {
		t.Fatalf("expected first record to create the unlock, got %v", created)
	}

	created, err = svc.RecordUnlocks(context.Background(), userID, []uuid.UUID{a.ID})
	if err != nil {
		t.Fatalf("second record: %v", err)
	}
	if len(created) != 0 {
		t.Fatalf("expected repeat record to create nothing, got %v", created)
	}
	if got := countUnlockRows(t, gdb, userID); got != 1 {
		t.Fatalf("expected 1 unlock row, got %d", got)
	}
}

func TestResetUserAchievements_AllowsReEarning(t *testing.T) {
	gdb := newTestDB(t)
	svc, _ := newAchievementServiceForTest(t, gdb)
	userID := seedUser(t, gdb)
	seedDaysAchievement(t, gdb, "Ngày đầu tiên", 1)
	seedEntry(t, gdb, userID, 1, 0)

	if _, err := svc.CheckAndUnlock(context.Background(), userID); err != nil {
		t.Fatalf("initial unlock: %v", err)
	}
	if err := svc.ResetUserAchievements(context.Background(), userID); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if got := countUnlockRows(t, gdb, userID); got != 0 {
		t.Fatalf("expected 0 unlock rows after reset, got %d", got)
	}

	unlocked, err := svc.CheckAndUnlock(context.Background(), userID)
	if err != nil {
		t.Fatalf("re-check: %v", err)
	}
	if len(unlocked) != 1 {
		t.Fatalf("expected achievement to be re-earnable after reset, got %d", len(unlocked))
	}
}

func TestCreateAchievement_PersistsInactiveFlag(t *testing.T) {
	gdb := newTestDB(t)
	svc, _ := newAchievementServiceForTest(t, gdb)
	userID := seedUser(t, gdb)

	days := 1
	created, err := svc.CreateAchievement(context.Background(), &types.Achievement{
		Name:          "Chưa công bố",
		MilestoneDays: &days,
		IsActive:      false,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	var stored types.Achievement
	if err := gdb.Where("id = ?", created.ID).First(&stored).Error; err != nil {
		t.Fatalf("reading back achievement: %v", err)
	}
	if stored.IsActive {
		t.Fatalf("expected is_active=false to be stored, got true")
	}

	seedEntry(t, gdb, userID, 10, 0)
	qualifying, err := svc.Evaluate(context.Background(), userID)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(qualifying) != 0 {
		t.Fatalf("expected inactive definition to never qualify, got %d results", len(qualifying))
	}
}

func TestCreateAchievement_RequiresAThreshold(t *testing.T) {
	gdb := newTestDB(t)
	svc, _ := newAchievementServiceForTest(t, gdb)

	_, err := svc.CreateAchievement(context.Background(), &types.Achievement{Name: "Không điều kiện"})
	if err == nil {
		t.Fatalf("expected error for definition without thresholds")
	}
}

func TestSeedDefaultAchievements_OnlySeedsEmptyCatalog(t *testing.T) {
	gdb := newTestDB(t)
	svc, _ := newAchievementServiceForTest(t, gdb)

	if err := svc.SeedDefaultAchievements(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	first, err := svc.ListCatalog(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(first) == 0 {
		t.Fatalf("expected seeded catalog to be non-empty")
	}

	if err := svc.SeedDefaultAchievements(context.Background()); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	second, err := svc.ListCatalog(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(second) != len(first) {
		t.Fatalf("expected second seed to be a no-op, got %d then %d", len(first), len(second))
	}
}

func TestListUnlocked_ReturnsEarnedRows(t *testing.T) {
	gdb := newTestDB(t)
	svc, _ := newAchievementServiceForTest(t, gdb)
	userID := seedUser(t, gdb)
	a := seedDaysAchievement(t, gdb, "Ngày đầu tiên", 1)
	seedEntry(t, gdb, userID, 1, 0)

	if _, err := svc.CheckAndUnlock(context.Background(), userID); err != nil {
		t.Fatalf("unlock: %v", err)
	}

	unlocked, err := svc.ListUnlocked(context.Background(), userID)
	if err != nil {
		t.Fatalf("list unlocked: %v", err)
	}
	if len(unlocked) != 1 {
		t.Fatalf("expected 1 unlocked row, got %d", len(unlocked))
	}
	if unlocked[0].AchievementID != a.ID {
		t.Fatalf("expected achievement %s, got %s", a.ID, unlocked[0].AchievementID)
	}
	if unlocked[0].Achievement == nil || unlocked[0].Achievement.Name != "Ngày đầu tiên" {
		t.Fatalf("expected achievement to be preloaded")
	}
}
