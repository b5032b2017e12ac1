package model

// Lookup tables are small, admin-curated reference sets. Rows are treated as
// immutable within a single request.

type Category struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Color     string `db:"color" json:"color"`
	Active    bool   `db:"active" json:"active"`
	SortOrder int    `db:"sort_order" json:"sort_order"`
}

type Timeframe struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Active    bool   `db:"active" json:"active"`
	SortOrder int    `db:"sort_order" json:"sort_order"`
}

type Frequency struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Active    bool   `db:"active" json:"active"`
	SortOrder int    `db:"sort_order" json:"sort_order"`
}

type TimePreference struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Active    bool   `db:"active" json:"active"`
	SortOrder int    `db:"sort_order" json:"sort_order"`
}

const FrequencyDaily = "daily"
