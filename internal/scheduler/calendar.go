package scheduler

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/scmhub/calendar"
)

// TradingDays reports whether the market trades on a given day.
type TradingDays interface {
	IsTradingDay(t time.Time) bool
}

// TradingCalendar checks exchange sessions using scmhub/calendar.
// When the exchange is unknown it falls back to Monday through Friday.
type TradingCalendar struct {
	Calendar *calendar.Calendar
	Timezone *time.Location
}

// NewTradingCalendar loads the calendar for an ISO 10383 MIC such as "xnys".
func NewTradingCalendar(mic string) *TradingCalendar {
	cal := calendar.GetCalendar(mic)
	if cal == nil {
		log.Warn().Str("mic", mic).Msg("unknown exchange calendar, using weekday fallback")
		loc, err := time.LoadLocation("America/New_York")
		if err != nil {
			loc = time.UTC
		}
		return &TradingCalendar{Timezone: loc}
	}
	return &TradingCalendar{Calendar: cal, Timezone: cal.Loc}
}

func (tc *TradingCalendar) IsTradingDay(t time.Time) bool {
	local := t.In(tc.Timezone)
	if tc.Calendar == nil {
		wd := local.Weekday()
		return wd != time.Saturday && wd != time.Sunday
	}
	return tc.Calendar.IsBusinessDay(local)
}
