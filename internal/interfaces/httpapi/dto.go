package httpapi

import (
	"context"
	"time"

	"github.com/pickemlab/tournament-pickem/internal/domain/groupforecast"
	"github.com/pickemlab/tournament-pickem/internal/domain/matchforecast"
	"github.com/pickemlab/tournament-pickem/internal/domain/thirdplace"
	"github.com/pickemlab/tournament-pickem/internal/usecase"
)

type teamRefDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type groupDTO struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Teams []teamRefDTO `json:"teams"`
}

type groupBoardEntryDTO struct {
	TeamID   string `json:"teamId"`
	TeamName string `json:"teamName"`
	TeamCode string `json:"teamCode"`
	Position int    `json:"position"`
	Tier     string `json:"tier"`
}

type groupBoardDTO struct {
	GroupID   string               `json:"groupId"`
	GroupName string               `json:"groupName"`
	Entries   []groupBoardEntryDTO `json:"entries"`
	Editing   bool                 `json:"editing"`
	Committed bool                 `json:"committed"`
	Points    int                  `json:"points"`
}

type groupPredictionDTO struct {
	ID        string   `json:"id"`
	GroupID   string   `json:"groupId"`
	Positions []string `json:"positions"`
	Points    int      `json:"points"`
	UpdatedAt string   `json:"updatedAt"`
}

type eligibleTeamDTO struct {
	TeamID    string `json:"teamId"`
	TeamName  string `json:"teamName"`
	GroupName string `json:"groupName"`
}

type thirdPlaceViewDTO struct {
	Pool          []eligibleTeamDTO `json:"pool"`
	PoolReason    string            `json:"poolReason,omitempty"`
	Selected      []string          `json:"selected"`
	Kept          []eligibleTeamDTO `json:"kept"`
	Dropped       []eligibleTeamDTO `json:"dropped"`
	RequiredCount int               `json:"requiredCount"`
	CanCommit     bool              `json:"canCommit"`
	Committed     bool              `json:"committed"`
	Points        int               `json:"points"`
}

type thirdPlacePredictionDTO struct {
	ID               string   `json:"id"`
	AdvancingTeamIDs []string `json:"advancingTeamIds"`
	Points           int      `json:"points"`
	UpdatedAt        string   `json:"updatedAt"`
}

type matchViewDTO struct {
	MatchID      string `json:"matchId"`
	Stage        string `json:"stage"`
	GroupID      string `json:"groupId,omitempty"`
	HomeTeamID   string `json:"homeTeamId"`
	HomeTeamName string `json:"homeTeamName"`
	AwayTeamID   string `json:"awayTeamId"`
	AwayTeamName string `json:"awayTeamName"`
	KickoffAt    string `json:"kickoffAt"`
	CanEdit      bool   `json:"canEdit"`

	HasDraft  bool `json:"hasDraft"`
	DraftHome int  `json:"draftHome"`
	DraftAway int  `json:"draftAway"`

	HasPrediction bool `json:"hasPrediction"`
	PredictedHome int  `json:"predictedHome"`
	PredictedAway int  `json:"predictedAway"`
	Points        int  `json:"points"`
}

type matchPredictionDTO struct {
	ID        string `json:"id"`
	MatchID   string `json:"matchId"`
	HomeScore int    `json:"homeScore"`
	AwayScore int    `json:"awayScore"`
	Points    int    `json:"points"`
	UpdatedAt string `json:"updatedAt"`
}

type overviewDTO struct {
	Groups     []groupBoardDTO   `json:"groups"`
	ThirdPlace thirdPlaceViewDTO `json:"thirdPlace"`
	Matches    []matchViewDTO    `json:"matches"`

	GroupsPredicted int `json:"groupsPredicted"`
	GroupsTotal     int `json:"groupsTotal"`
	MatchesDrafted  int `json:"matchesDrafted"`
	MatchesTotal    int `json:"matchesTotal"`
	TotalPoints     int `json:"totalPoints"`
}

func groupSummaryToDTO(ctx context.Context, v usecase.GroupSummary) groupDTO {
	ctx, span := startSpan(ctx, "httpapi.groupSummaryToDTO")
	defer span.End()

	teams := make([]teamRefDTO, 0, len(v.Teams))
	for _, t := range v.Teams {
		teams = append(teams, teamRefDTO{ID: t.TeamID, Name: t.TeamName, Code: t.TeamCode})
	}

	return groupDTO{
		ID:    v.GroupID,
		Name:  v.GroupName,
		Teams: teams,
	}
}

func groupBoardToDTO(ctx context.Context, v usecase.GroupBoard) groupBoardDTO {
	ctx, span := startSpan(ctx, "httpapi.groupBoardToDTO")
	defer span.End()

	entries := make([]groupBoardEntryDTO, 0, len(v.Entries))
	for _, e := range v.Entries {
		entries = append(entries, groupBoardEntryDTO{
			TeamID:   e.TeamID,
			TeamName: e.TeamName,
			TeamCode: e.TeamCode,
			Position: e.Position,
			Tier:     string(e.Tier),
		})
	}

	return groupBoardDTO{
		GroupID:   v.GroupID,
		GroupName: v.GroupName,
		Entries:   entries,
		Editing:   v.Editing,
		Committed: v.Committed,
		Points:    v.Points,
	}
}

func groupPredictionToDTO(ctx context.Context, v groupforecast.Prediction) groupPredictionDTO {
	ctx, span := startSpan(ctx, "httpapi.groupPredictionToDTO")
	defer span.End()

	return groupPredictionDTO{
		ID:        v.ID,
		GroupID:   v.GroupID,
		Positions: append([]string(nil), v.Positions...),
		Points:    v.Points,
		UpdatedAt: v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func thirdPlaceViewToDTO(ctx context.Context, v usecase.ThirdPlaceView) thirdPlaceViewDTO {
	ctx, span := startSpan(ctx, "httpapi.thirdPlaceViewToDTO")
	defer span.End()

	dropped := make([]eligibleTeamDTO, 0, len(v.Dropped))
	for _, d := range v.Dropped {
		dropped = append(dropped, eligibleTeamDTO{
			TeamID:    d.TeamID,
			TeamName:  d.TeamName,
			GroupName: d.GroupName,
		})
	}

	return thirdPlaceViewDTO{
		Pool:          eligibleTeamsToDTO(ctx, v.Pool),
		PoolReason:    v.PoolReason,
		Selected:      append([]string{}, v.Selected...),
		Kept:          eligibleTeamsToDTO(ctx, v.Kept),
		Dropped:       dropped,
		RequiredCount: v.RequiredCount,
		CanCommit:     v.CanCommit,
		Committed:     v.Committed,
		Points:        v.Points,
	}
}

func eligibleTeamsToDTO(ctx context.Context, teams []thirdplace.EligibleTeam) []eligibleTeamDTO {
	ctx, span := startSpan(ctx, "httpapi.eligibleTeamsToDTO")
	defer span.End()

	out := make([]eligibleTeamDTO, 0, len(teams))
	for _, t := range teams {
		out = append(out, eligibleTeamDTO{
			TeamID:    t.TeamID,
			TeamName:  t.TeamName,
			GroupName: t.GroupName,
		})
	}

	return out
}

func thirdPlacePredictionToDTO(ctx context.Context, v thirdplace.Prediction) thirdPlacePredictionDTO {
	ctx, span := startSpan(ctx, "httpapi.thirdPlacePredictionToDTO")
	defer span.End()

	return thirdPlacePredictionDTO{
		ID:               v.ID,
		AdvancingTeamIDs: append([]string(nil), v.AdvancingTeamIDs...),
		Points:           v.Points,
		UpdatedAt:        v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func matchViewToDTO(ctx context.Context, v usecase.MatchView) matchViewDTO {
	ctx, span := startSpan(ctx, "httpapi.matchViewToDTO")
	defer span.End()

	return matchViewDTO{
		MatchID:       v.MatchID,
		Stage:         string(v.Stage),
		GroupID:       v.GroupID,
		HomeTeamID:    v.HomeTeamID,
		HomeTeamName:  v.HomeTeamName,
		AwayTeamID:    v.AwayTeamID,
		AwayTeamName:  v.AwayTeamName,
		KickoffAt:     v.KickoffAt.UTC().Format(time.RFC3339),
		CanEdit:       v.CanEdit,
		HasDraft:      v.HasDraft,
		DraftHome:     v.DraftHome,
		DraftAway:     v.DraftAway,
		HasPrediction: v.HasPrediction,
		PredictedHome: v.PredictedHome,
		PredictedAway: v.PredictedAway,
		Points:        v.Points,
	}
}

func matchPredictionToDTO(ctx context.Context, v matchforecast.Prediction) matchPredictionDTO {
	ctx, span := startSpan(ctx, "httpapi.matchPredictionToDTO")
	defer span.End()

	return matchPredictionDTO{
		ID:        v.ID,
		MatchID:   v.MatchID,
		HomeScore: v.HomeScore,
		AwayScore: v.AwayScore,
		Points:    v.Points,
		UpdatedAt: v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func overviewToDTO(ctx context.Context, v usecase.Overview) overviewDTO {
	ctx, span := startSpan(ctx, "httpapi.overviewToDTO")
	defer span.End()

	boards := make([]groupBoardDTO, 0, len(v.Groups))
	for _, b := range v.Groups {
		boards = append(boards, groupBoardToDTO(ctx, b))
	}

	matches := make([]matchViewDTO, 0, len(v.Matches))
	for _, m := range v.Matches {
		matches = append(matches, matchViewToDTO(ctx, m))
	}

	return overviewDTO{
		Groups:          boards,
		ThirdPlace:      thirdPlaceViewToDTO(ctx, v.ThirdPlace),
		Matches:         matches,
		GroupsPredicted: v.GroupsPredicted,
		GroupsTotal:     v.GroupsTotal,
		MatchesDrafted:  v.MatchesDrafted,
		MatchesTotal:    v.MatchesTotal,
		TotalPoints:     v.TotalPoints,
	}
}
