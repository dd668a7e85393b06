package models_test

import (
	"testing"
	"time"

	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/models"
)

func TestPromoCode_EffectiveStatus(t *testing.T) {
	now := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	cases := []struct {
		name string
		p    models.PromoCode
		want models.PromoStatus
	}{
		{"active", models.PromoCode{IsActive: true, StartDate: &yesterday, EndDate: &tomorrow}, models.PromoActive},
		{"open ended", models.PromoCode{IsActive: true}, models.PromoActive},
		{"disabled wins", models.PromoCode{IsActive: false, EndDate: &yesterday}, models.PromoDisabled},
		{"upcoming", models.PromoCode{IsActive: true, StartDate: &tomorrow}, models.PromoUpcoming},
		{"expired", models.PromoCode{IsActive: true, EndDate: &yesterday}, models.PromoExpired},
		{"exhausted", models.PromoCode{IsActive: true, UsageLimit: 3, UsedCount: 3}, models.PromoUsageExhausted},
		{"unlimited", models.PromoCode{IsActive: true, UsageLimit: 0, UsedCount: 1000}, models.PromoActive},
	}
	for _, tc := range cases {
		if got := tc.p.EffectiveStatus(now); got != tc.want {
			t.Errorf("%s: got %s want %s", tc.name, got, tc.want)
		}
	}
}

func TestNormalizePromoCode(t *testing.T) {
	if got := models.NormalizePromoCode("  welcome10 "); got != "WELCOME10" {
		t.Fatalf("got %q", got)
	}
}
