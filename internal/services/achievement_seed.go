package services

import (
	"context"
	"fmt"

	"github.com/quitmate/quitmate-backend/internal/types"
)

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

// defaultCatalog is the stock achievement set. Money thresholds are VND.
var defaultCatalog = []*types.Achievement{
	{
		Name:          "Ngày đầu tiên",
		Description:   "Hoàn thành ngày đầu tiên không hút thuốc.",
		MilestoneDays: intPtr(1),
		Category:      "milestone",
		Difficulty:    "easy",
		Points:        10,
		IsActive:      true,
	},
	{
		Name:          "Tuần lễ khởi đầu",
		Description:   "Một tuần liên tục không hút thuốc.",
		MilestoneDays: intPtr(7),
		Category:      "milestone",
		Difficulty:    "easy",
		Points:        30,
		IsActive:      true,
	},
	{
		Name:          "Tháng đầu tiên",
		Description:   "Tròn một tháng không hút thuốc.",
		MilestoneDays: intPtr(30),
		Category:      "milestone",
		Difficulty:    "medium",
		Points:        100,
		IsActive:      true,
	},
	{
		Name:          "Một năm tự do",
		Description:   "365 ngày không khói thuốc.",
		MilestoneDays: intPtr(365),
		Category:      "milestone",
		Difficulty:    "hard",
		Points:        1000,
		IsActive:      true,
	},
	{
		Name:                "Tiết kiệm 100K",
		Description:         "Tiết kiệm được 100.000đ nhờ bỏ thuốc.",
		SavedMoneyThreshold: int64Ptr(100000),
		Category:            "savings",
		Difficulty:          "easy",
		Points:              20,
		IsActive:            true,
	},
	{
		Name:                "Tiết kiệm 1 triệu",
		Description:         "Tiết kiệm được 1.000.000đ nhờ bỏ thuốc.",
		SavedMoneyThreshold: int64Ptr(1000000),
		Category:            "savings",
		Difficulty:          "medium",
		Points:              150,
		IsActive:            true,
	},
}

// SeedDefaultAchievements inserts the stock catalog when the table is empty.
// Boot-time convenience; no-op on a populated catalog.
func (s *achievementService) SeedDefaultAchievements(ctx context.Context) error {
	existing, err := s.catalogRepo.List(ctx, nil)
	if err != nil {
		return fmt.Errorf("listing achievement catalog: %w: %w", ErrStoreUnavailable, err)
	}
	if len(existing) > 0 {
		return nil
	}
	for _, a := range defaultCatalog {
		if _, err := s.catalogRepo.Create(ctx, nil, a); err != nil {
			return fmt.Errorf("seeding achievement %q: %w", a.Name, err)
		}
	}
	s.log.Info("Seeded default achievement catalog", "count", len(defaultCatalog))
	return nil
}
