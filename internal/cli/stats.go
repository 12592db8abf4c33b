package cli

import (
	"fmt"
	"strings"

	"github.com/mchuang-tw/salespoints/internal/model"
)

// FormatStats renders a processing run's snapshot counters: totals, the
// per-reason rejection tallies, and the category breakdown in rank order.
func FormatStats(stats *model.ProcessingStats) string {
	var b strings.Builder

	fmt.Fprintf(&b, "原始筆數 %d → 保留 %d（移除 %d）\n\n", stats.OriginalCount, stats.FinalCount, stats.RemovedCount)
	fmt.Fprintf(&b, "%-18s %d\n", "缺客戶編號", stats.MissingCustomerIDCount)
	fmt.Fprintf(&b, "%-18s %d\n", "本次欠款 > 0", stats.PositiveDebtCount)
	fmt.Fprintf(&b, "%-18s %d\n", "點數為 0", stats.ZeroPointsCount)
	fmt.Fprintf(&b, "%-18s %d\n", "單價為 0", stats.ZeroPriceCount)
	fmt.Fprintf(&b, "%-18s %d\n", "排除品類/單位", stats.ExcludedCategoryCount)
	fmt.Fprintf(&b, "%-18s %d\n", "排除品項編號", stats.ExcludedProductIDCount)

	if len(stats.CategoryCounts) > 0 {
		b.WriteString("\n分類統計\n")
		for _, category := range []string{
			model.CategoryPediatricNutrition,
			model.CategoryAdultMilkPowder,
			model.CategoryAdultLiquidMilk,
			model.CategoryOther,
			model.CategoryAdultSupplement,
			model.CategoryCashPediatric,
		} {
			if n, ok := stats.CategoryCounts[category]; ok {
				fmt.Fprintf(&b, "%-18s %d\n", category, n)
			}
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
