package model

// Game is a single fixture as returned by the sports API
type Game struct {
	ID               int64  `json:"id"`
	Date             string `json:"date"`
	Season           int    `json:"season"`
	Status           string `json:"status"`
	Period           int    `json:"period"`
	Time             string `json:"time"`
	Postseason       bool   `json:"postseason"`
	HomeTeamScore    int    `json:"home_team_score"`
	VisitorTeamScore int    `json:"visitor_team_score"`
	HomeTeam         Team   `json:"home_team"`
	VisitorTeam      Team   `json:"visitor_team"`

	// LocalDate is Date reformatted for display; not part of the upstream payload
	LocalDate string `json:"-"`
}
