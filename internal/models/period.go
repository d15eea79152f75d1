package models

// Period identifies one scheduling block of the school day.
type Period string

// The periods the after-school engine schedules. Regular class periods
// before SEVENTH are out of scope; the combined blocks mirror how the
// school actually runs the evening.
const (
	PeriodSeventh       Period = "SEVENTH"
	PeriodEighthNinth   Period = "EIGHTH_NINTH"
	PeriodTenthEleventh Period = "TENTH_ELEVENTH"
)

// AfterSchoolPeriods returns the periods a generated slot skeleton covers,
// in chronological order.
func AfterSchoolPeriods() []Period {
	return []Period{PeriodSeventh, PeriodEighthNinth, PeriodTenthEleventh}
}
