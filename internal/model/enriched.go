package model

// EnrichedGoal is a goal with its foreign keys resolved against the loaded
// lookup tables. The raw id fields stay in place next to the resolved objects;
// an unresolved or absent reference leaves the resolved field nil.
type EnrichedGoal struct {
	Goal
	Category  *Category    `json:"category"`
	Timeframe *Timeframe   `json:"timeframe"`
	Owner     *UserSummary `json:"owner"`
}

type EnrichedHabit struct {
	Habit
	Frequency      *Frequency      `json:"frequency"`
	TimePreference *TimePreference `json:"time_preference"`
	Owner          *UserSummary    `json:"owner"`
}
