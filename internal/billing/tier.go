package billing

// Tier is a discount applied to a whole active period
type Tier struct {
	Discount int    `json:"discount"`
	Label    string `json:"label"`
}

var (
	GoldTier     = Tier{Discount: 10, Label: "Gold Tier"}
	SilverTier   = Tier{Discount: 5, Label: "Silver Tier"}
	StandardTier = Tier{Discount: 0, Label: "Standard"}
)

// tierThresholds is ordered highest first; minDays is inclusive
var tierThresholds = []struct {
	minDays int
	tier    Tier
}{
	{15, GoldTier},
	{5, SilverTier},
}

// ResolveTier maps an active period length in days to its discount tier
func ResolveTier(length int) Tier {
	for _, th := range tierThresholds {
		if length >= th.minDays {
			return th.tier
		}
	}
	return StandardTier
}
