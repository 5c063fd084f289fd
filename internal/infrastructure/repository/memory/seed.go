package memory

import (
	"time"

	"github.com/pickemlab/tournament-pickem/internal/domain/group"
	"github.com/pickemlab/tournament-pickem/internal/domain/match"
	"github.com/pickemlab/tournament-pickem/internal/domain/team"
)

// Seed data models a 12-group finals draw (groups A-L, four teams each, the
// best eight third-placed sides advancing).

func SeedGroups() []group.Group {
	groups := make([]group.Group, 0, len(seedDraw))
	for _, entry := range seedDraw {
		teamIDs := make([]string, 0, group.Size)
		for _, seedTeam := range entry.teams {
			teamIDs = append(teamIDs, seedTeam.id)
		}
		groups = append(groups, group.Group{
			ID:      entry.id,
			Name:    entry.name,
			TeamIDs: teamIDs,
		})
	}

	return groups
}

func SeedTeams() []team.Team {
	teams := make([]team.Team, 0, len(seedDraw)*group.Size)
	for _, entry := range seedDraw {
		for _, seedTeam := range entry.teams {
			teams = append(teams, team.Team{
				ID:      seedTeam.id,
				GroupID: entry.id,
				Name:    seedTeam.name,
				Code:    seedTeam.code,
			})
		}
	}

	return teams
}

// SeedMatches produces one full round-robin per group (six fixtures), spread
// over three matchdays starting at kickoff. CanEdit is left for the
// repository to derive against its clock.
func SeedMatches(kickoff time.Time) []match.Match {
	matches := make([]match.Match, 0, len(seedDraw)*6)
	pairs := [][2]int{{0, 1}, {2, 3}, {0, 2}, {1, 3}, {0, 3}, {1, 2}}

	for gi, entry := range seedDraw {
		for pi, pair := range pairs {
			matchday := pi / 2
			matches = append(matches, match.Match{
				ID:         entry.id + "-m" + string(rune('1'+pi)),
				Stage:      match.StageGroup,
				GroupID:    entry.id,
				HomeTeamID: entry.teams[pair[0]].id,
				AwayTeamID: entry.teams[pair[1]].id,
				KickoffAt:  kickoff.Add(time.Duration(matchday*96+gi*2) * time.Hour),
			})
		}
	}

	return matches
}

type seedGroup struct {
	id    string
	name  string
	teams [group.Size]seedTeam
}

type seedTeam struct {
	id   string
	name string
	code string
}

var seedDraw = []seedGroup{
	{id: "grp-a", name: "Group A", teams: [group.Size]seedTeam{
		{"mex", "Mexico", "MEX"}, {"rsa", "South Africa", "RSA"}, {"kor", "South Korea", "KOR"}, {"nor", "Norway", "NOR"},
	}},
	{id: "grp-b", name: "Group B", teams: [group.Size]seedTeam{
		{"can", "Canada", "CAN"}, {"sui", "Switzerland", "SUI"}, {"qat", "Qatar", "QAT"}, {"civ", "Ivory Coast", "CIV"},
	}},
	{id: "grp-c", name: "Group C", teams: [group.Size]seedTeam{
		{"usa", "United States", "USA"}, {"jpn", "Japan", "JPN"}, {"sco", "Scotland", "SCO"}, {"pan", "Panama", "PAN"},
	}},
	{id: "grp-d", name: "Group D", teams: [group.Size]seedTeam{
		{"bra", "Brazil", "BRA"}, {"mar", "Morocco", "MAR"}, {"srb", "Serbia", "SRB"}, {"aus", "Australia", "AUS"},
	}},
	{id: "grp-e", name: "Group E", teams: [group.Size]seedTeam{
		{"esp", "Spain", "ESP"}, {"sen", "Senegal", "SEN"}, {"ecu", "Ecuador", "ECU"}, {"jor", "Jordan", "JOR"},
	}},
	{id: "grp-f", name: "Group F", teams: [group.Size]seedTeam{
		{"arg", "Argentina", "ARG"}, {"den", "Denmark", "DEN"}, {"tun", "Tunisia", "TUN"}, {"uzb", "Uzbekistan", "UZB"},
	}},
	{id: "grp-g", name: "Group G", teams: [group.Size]seedTeam{
		{"fra", "France", "FRA"}, {"egy", "Egypt", "EGY"}, {"par", "Paraguay", "PAR"}, {"nzl", "New Zealand", "NZL"},
	}},
	{id: "grp-h", name: "Group H", teams: [group.Size]seedTeam{
		{"eng", "England", "ENG"}, {"col", "Colombia", "COL"}, {"gha", "Ghana", "GHA"}, {"cur", "Curacao", "CUW"},
	}},
	{id: "grp-i", name: "Group I", teams: [group.Size]seedTeam{
		{"ger", "Germany", "GER"}, {"uru", "Uruguay", "URU"}, {"alg", "Algeria", "ALG"}, {"hai", "Haiti", "HAI"},
	}},
	{id: "grp-j", name: "Group J", teams: [group.Size]seedTeam{
		{"por", "Portugal", "POR"}, {"irn", "Iran", "IRN"}, {"aut", "Austria", "AUT"}, {"cpv", "Cape Verde", "CPV"},
	}},
	{id: "grp-k", name: "Group K", teams: [group.Size]seedTeam{
		{"ned", "Netherlands", "NED"}, {"cro", "Croatia", "CRO"}, {"ksa", "Saudi Arabia", "KSA"}, {"jam", "Jamaica", "JAM"},
	}},
	{id: "grp-l", name: "Group L", teams: [group.Size]seedTeam{
		{"bel", "Belgium", "BEL"}, {"ita", "Italy", "ITA"}, {"tur", "Turkey", "TUR"}, {"cos", "Costa Rica", "CRC"},
	}},
}
