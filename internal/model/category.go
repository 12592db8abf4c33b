package model

// Category labels derived from the 品類一 code.
const (
	CategoryPediatricNutrition = "小兒營養素"
	CategoryAdultSupplement    = "成人保健品"
	CategoryAdultMilkPowder    = "成人奶粉"
	CategoryAdultLiquidMilk    = "成人奶水"
	CategoryCashPediatric      = "現金-小兒銷售"
	CategoryOther              = "其他"
)

// categoryByCode maps the source 品類一 code to its display category.
var categoryByCode = map[string]string{
	"04-6": CategoryPediatricNutrition,
	"04-7": CategoryAdultSupplement,
	"05-1": CategoryAdultMilkPowder,
	"05-2": CategoryAdultLiquidMilk,
	"05-3": CategoryCashPediatric,
}

// CategoryForCode derives the display category for a 品類一 code. Every
// unrecognized or blank code maps to 其他.
func CategoryForCode(code string) string {
	if c, ok := categoryByCode[code]; ok {
		return c
	}
	return CategoryOther
}

// UnrankedCategory is the sort rank for categories missing from the rank
// table. It is deliberately distinct from the explicit 其他 rank so that
// unknown labels always sort last.
const UnrankedCategory = 99

// categoryRank fixes the grouping order of exported and displayed rows.
var categoryRank = map[string]int{
	CategoryPediatricNutrition: 1,
	CategoryAdultMilkPowder:    2,
	CategoryAdultLiquidMilk:    3,
	CategoryOther:              4,
	CategoryAdultSupplement:    5,
	CategoryCashPediatric:      6,
}

// CategoryRank returns the sort rank for a category label.
func CategoryRank(category string) int {
	if r, ok := categoryRank[category]; ok {
		return r
	}
	return UnrankedCategory
}
