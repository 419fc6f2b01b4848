package services

import (
	"time"

	"github.com/fitforge/fitforge/internal/models"
	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/au"
	"github.com/rickar/cal/v2/ca"
	"github.com/rickar/cal/v2/gb"
	"github.com/rickar/cal/v2/nz"
	"github.com/rickar/cal/v2/us"
)

// SeasonalService suggests which campaign templates to run next based on
// the calendar: the January rush, pre-summer, and the end-of-year lull all
// have distinct demand curves in the fitness business.
type SeasonalService struct {
	calendars map[string]*cal.BusinessCalendar
	campaigns *CampaignService
	configSvc *SystemConfigService
}

func NewSeasonalService(campaigns *CampaignService, configSvc *SystemConfigService) *SeasonalService {
	s := &SeasonalService{
		calendars: make(map[string]*cal.BusinessCalendar),
		campaigns: campaigns,
		configSvc: configSvc,
	}
	s.initCalendars()
	return s
}

func (s *SeasonalService) initCalendars() {
	s.calendars["US"] = s.createCalendar("United States", us.Holidays...)
	s.calendars["GB"] = s.createCalendar("United Kingdom", gb.Holidays...)
	s.calendars["AU"] = s.createCalendar("Australia", au.HolidaysNSW...)
	s.calendars["CA"] = s.createCalendar("Canada", ca.Holidays...)
	s.calendars["NZ"] = s.createCalendar("New Zealand", nz.Holidays...)
}

func (s *SeasonalService) createCalendar(name string, holidays ...*cal.Holiday) *cal.BusinessCalendar {
	c := cal.NewBusinessCalendar()
	c.Name = name
	c.AddHoliday(holidays...)
	return c
}

// CurrentSeason maps a date to the campaign season used by the template
// catalog. Southern-hemisphere countries get the summer window shifted.
func CurrentSeason(t time.Time, countryCode string) string {
	month := t.Month()
	southern := countryCode == "AU" || countryCode == "NZ"

	switch {
	case month == time.January || (month == time.December && t.Day() >= 26):
		return "new_year"
	case !southern && month >= time.April && month <= time.July:
		return "summer"
	case southern && (month >= time.October || month == time.January):
		return "summer"
	default:
		return ""
	}
}

// SeasonalSuggestion pairs a campaign template with the calendar context
// that makes it timely.
type SeasonalSuggestion struct {
	Campaign        models.CampaignTemplate `json:"campaign"`
	Season          string                  `json:"season"`
	Reason          string                  `json:"reason"`
	SuggestedLaunch string                  `json:"suggested_launch"` // next workday, ISO date
}

// Suggest returns the templates matching the current season, each with the
// next workday as a launch date. Campaigns without a season are evergreen
// and excluded here.
func (s *SeasonalService) Suggest(now time.Time) ([]SeasonalSuggestion, error) {
	countryCode := s.configSvc.GetWithDefault("seasonal_country", "US")
	season := CurrentSeason(now, countryCode)
	if season == "" {
		return nil, nil
	}

	templates, err := s.campaigns.List()
	if err != nil {
		return nil, err
	}

	launch := s.NextWorkday(now, countryCode)

	var suggestions []SeasonalSuggestion
	for _, tpl := range templates {
		if tpl.Season != season {
			continue
		}
		suggestions = append(suggestions, SeasonalSuggestion{
			Campaign:        tpl,
			Season:          season,
			Reason:          seasonReason(season),
			SuggestedLaunch: launch.Format("2006-01-02"),
		})
	}
	return suggestions, nil
}

func seasonReason(season string) string {
	switch season {
	case "new_year":
		return "January sign-up surge: resolution-driven demand peaks in the first weeks of the year"
	case "summer":
		return "Pre-summer window: demand for short-term programs rises before beach season"
	default:
		return ""
	}
}

// NextWorkday returns the first workday strictly after t for the country,
// falling back to skipping weekends when the country has no calendar.
func (s *SeasonalService) NextWorkday(t time.Time, countryCode string) time.Time {
	c, ok := s.calendars[countryCode]

	day := t.AddDate(0, 0, 1)
	for i := 0; i < 14; i++ {
		if ok {
			if c.IsWorkday(day) {
				return day
			}
		} else if !cal.IsWeekend(day) {
			return day
		}
		day = day.AddDate(0, 0, 1)
	}
	return day
}

// SupportedCountries lists the markets with a holiday calendar.
func (s *SeasonalService) SupportedCountries() []string {
	return []string{"US", "GB", "AU", "CA", "NZ"}
}
