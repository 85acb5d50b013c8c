package models

// TeamScore is the weighted score one judge gave one team.
type TeamScore struct {
	Session string  `json:"session"`
	Score   float64 `json:"score"`
}

// TeamSummary is the display-ready aggregate for a single team.
type TeamSummary struct {
	Rank       int     `json:"rank"`
	TeamID     int     `json:"teamId"`
	Team       string  `json:"team"`
	Total      float64 `json:"totalScore"`
	Average    float64 `json:"averageScore"`
	JudgeCount int     `json:"judgeCount"`
}
