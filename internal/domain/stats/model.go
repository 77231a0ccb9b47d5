package stats

// DefaultWindowDays is the trailing window used for "recently active".
const DefaultWindowDays = 7

// Stats aggregates store-wide figures
type Stats struct {
	Projects       int `json:"projects"`
	Contents       int `json:"contents"`
	RecentlyActive int `json:"recently_active"`
	WindowDays     int `json:"window_days"`
}
