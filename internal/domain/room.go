package domain

// Room and Property are read-only projections of the catalog service.
// The engine consumes them for ownership checks and pricing but never
// mutates them.

type DepositPolicyType string

const (
	DepositPolicyNone    DepositPolicyType = "NONE"
	DepositPolicyPercent DepositPolicyType = "PERCENT"
	DepositPolicyFixed   DepositPolicyType = "FIXED"
)

type Room struct {
	ID             int32             `json:"id"`
	PropertyID     int32             `json:"property_id"`
	OperatorID     int32             `json:"operator_id"`
	Name           string            `json:"name"`
	DailyPrice     int64             `json:"daily_price"`
	WeeklyPrice    int64             `json:"weekly_price"`
	MonthlyPrice   int64             `json:"monthly_price"`
	QuarterlyPrice int64             `json:"quarterly_price"`
	YearlyPrice    int64             `json:"yearly_price"`
	DepositPolicy  DepositPolicyType `json:"deposit_policy"`
	DepositValue   int64             `json:"deposit_value"` // percent when PERCENT, minor units when FIXED
}

// PriceFor returns the room's price for the given lease type, zero when
// the room does not offer that cadence.
func (r *Room) PriceFor(lt LeaseType) int64 {
	switch lt {
	case LeaseTypeDaily:
		return r.DailyPrice
	case LeaseTypeWeekly:
		return r.WeeklyPrice
	case LeaseTypeMonthly:
		return r.MonthlyPrice
	case LeaseTypeQuarterly:
		return r.QuarterlyPrice
	case LeaseTypeYearly:
		return r.YearlyPrice
	}
	return 0
}

type Property struct {
	ID         int32  `json:"id"`
	OperatorID int32  `json:"operator_id"`
	Name       string `json:"name"`
}
