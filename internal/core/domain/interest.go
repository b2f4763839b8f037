package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// InterestCalculationStrategyType is the closed set of interest calculation
// strategies. Unknown integer codes map to StrategyInvalid, never an error,
// so that data written by newer versions stays readable; callers must treat
// StrategyInvalid as "no calculation performed".
type InterestCalculationStrategyType int

const (
	StrategyInvalid             InterestCalculationStrategyType = 0
	StrategyDailyBalance        InterestCalculationStrategyType = 1
	StrategyAverageDailyBalance InterestCalculationStrategyType = 2
	StrategyMinimumBalance      InterestCalculationStrategyType = 3
	StrategyTieredBalance       InterestCalculationStrategyType = 4
	StrategyBonusInterest       InterestCalculationStrategyType = 5
	StrategyYouthAccount        InterestCalculationStrategyType = 6
	StrategyPromotionalInterest InterestCalculationStrategyType = 7
)

// InterestStrategyTypeFromValue maps an integer code to a strategy type,
// with unknown codes mapping to StrategyInvalid.
func InterestStrategyTypeFromValue(v int) InterestCalculationStrategyType {
	if v >= int(StrategyDailyBalance) && v <= int(StrategyPromotionalInterest) {
		return InterestCalculationStrategyType(v)
	}
	return StrategyInvalid
}

func (t InterestCalculationStrategyType) String() string {
	switch t {
	case StrategyDailyBalance:
		return "DAILY_BALANCE"
	case StrategyAverageDailyBalance:
		return "AVERAGE_DAILY_BALANCE"
	case StrategyMinimumBalance:
		return "MINIMUM_BALANCE"
	case StrategyTieredBalance:
		return "TIERED_BALANCE"
	case StrategyBonusInterest:
		return "BONUS_INTEREST"
	case StrategyYouthAccount:
		return "YOUTH_ACCOUNT"
	case StrategyPromotionalInterest:
		return "PROMOTIONAL_INTEREST"
	default:
		return "INVALID"
	}
}

// InterestCalculationData is an immutable balance/period record for one
// stretch of days. Construct it with NewInterestCalculationData, which
// derives the inclusive day count; it is never mutated afterwards.
type InterestCalculationData struct {
	fromDate       time.Time
	toDate         time.Time
	openingBalance decimal.Decimal
	closingBalance decimal.Decimal
	averageBalance decimal.Decimal
	minimumBalance decimal.Decimal
	daysInPeriod   int
}

// NewInterestCalculationData builds an InterestCalculationData for the
// inclusive range [fromDate, toDate]. The day count is calendar based and
// leap-year aware: Feb 1..Feb 29 of 2024 is 29 days.
func NewInterestCalculationData(fromDate, toDate time.Time, openingBalance, closingBalance, averageBalance, minimumBalance decimal.Decimal) (InterestCalculationData, error) {
	from := TruncateToDay(fromDate)
	to := TruncateToDay(toDate)
	if to.Before(from) {
		return InterestCalculationData{}, fmt.Errorf("toDate %s is before fromDate %s", to.Format("2006-01-02"), from.Format("2006-01-02"))
	}
	return InterestCalculationData{
		fromDate:       from,
		toDate:         to,
		openingBalance: openingBalance,
		closingBalance: closingBalance,
		averageBalance: averageBalance,
		minimumBalance: minimumBalance,
		daysInPeriod:   DaysBetweenInclusive(from, to),
	}, nil
}

func (d InterestCalculationData) FromDate() time.Time             { return d.fromDate }
func (d InterestCalculationData) ToDate() time.Time               { return d.toDate }
func (d InterestCalculationData) OpeningBalance() decimal.Decimal { return d.openingBalance }
func (d InterestCalculationData) ClosingBalance() decimal.Decimal { return d.closingBalance }
func (d InterestCalculationData) AverageBalance() decimal.Decimal { return d.averageBalance }
func (d InterestCalculationData) MinimumBalance() decimal.Decimal { return d.minimumBalance }
func (d InterestCalculationData) DaysInPeriod() int               { return d.daysInPeriod }

// TruncateToDay normalises a timestamp to midnight UTC so that day arithmetic
// is immune to time-of-day and timezone noise.
func TruncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetweenInclusive counts calendar days in [from, to], both ends
// included. Both arguments must already be day-truncated.
func DaysBetweenInclusive(from, to time.Time) int {
	return int(to.Sub(from).Hours()/24) + 1
}

// InterestTier is one bracket of a tiered interest configuration. A nil
// UpperBound means "no upper limit". A balance exactly on an upper bound
// belongs to that tier; only the excess spills into the next.
type InterestTier struct {
	UpperBound *decimal.Decimal `json:"upperBound,omitempty"`
	AnnualRate decimal.Decimal  `json:"annualRate"`
}

// PromotionalPeriod is a date window during which a promotional rate applies.
// The window is inclusive on both ends.
type PromotionalPeriod struct {
	StartDate time.Time       `json:"startDate"`
	EndDate   time.Time       `json:"endDate"`
	Rate      decimal.Decimal `json:"rate"`
}

// InterestPostingType distinguishes accrual history rows from posting rows.
type InterestPostingType string

const (
	PostingAccrual InterestPostingType = "ACCRUAL"
	PostingPosted  InterestPostingType = "POSTED"
)

// InterestPosting is one append-only history row of accrued or posted
// interest for an account.
type InterestPosting struct {
	PostingID    string              `json:"postingID"`
	AccountID    string              `json:"accountID"`
	AccountType  EntityType          `json:"accountType"`
	FromDate     time.Time           `json:"fromDate"`
	ToDate       time.Time           `json:"toDate"`
	Amount       decimal.Decimal     `json:"amount"`
	CurrencyCode string              `json:"currencyCode"`
	PostingType  InterestPostingType `json:"postingType"`
	AuditFields
}
