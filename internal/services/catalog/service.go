package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/mcoot/courtside/internal/model"
	"github.com/mcoot/courtside/internal/sportsapi"
)

// PageSize is the per_page value sent on every listing request
const PageSize = 100

// Fetcher performs a GET against the sports API and returns nil on failure
type Fetcher interface {
	Get(ctx context.Context, path string, query url.Values) json.RawMessage
}

// Service reads players, teams and games from the sports API
type Service struct {
	api    Fetcher
	logger *slog.Logger
}

// New creates a new catalog Service
func New(api Fetcher, logger *slog.Logger) *Service {
	return &Service{
		api:    api,
		logger: logger,
	}
}

// ListPlayers returns the first page of players, or nil if the API is unavailable
func (s *Service) ListPlayers(ctx context.Context) []model.Player {
	players, _ := sportsapi.Unwrap[[]model.Player](s.api.Get(ctx, "/players", pageQuery(0)))
	return players
}

// GetPlayer returns a single player; false means not found or upstream unavailable
func (s *Service) GetPlayer(ctx context.Context, id int64) (*model.Player, bool) {
	player, ok := sportsapi.Unwrap[model.Player](s.api.Get(ctx, fmt.Sprintf("/players/%d", id), nil))
	if !ok {
		return nil, false
	}
	return &player, true
}

// ListTeams returns all teams, or nil if the API is unavailable
func (s *Service) ListTeams(ctx context.Context) []model.Team {
	teams, _ := sportsapi.Unwrap[[]model.Team](s.api.Get(ctx, "/teams", nil))
	return teams
}

// GetTeam returns a single team; false means not found or upstream unavailable
func (s *Service) GetTeam(ctx context.Context, id int64) (*model.Team, bool) {
	team, ok := sportsapi.Unwrap[model.Team](s.api.Get(ctx, fmt.Sprintf("/teams/%d", id), nil))
	if !ok {
		return nil, false
	}
	return &team, true
}

// ListTeamPlayers returns up to PageSize players on the team.
// Failure yields an empty roster.
func (s *Service) ListTeamPlayers(ctx context.Context, teamID int64) []model.Player {
	query := pageQuery(0)
	query.Set("team_ids[]", strconv.FormatInt(teamID, 10))

	players, _ := sportsapi.Unwrap[[]model.Player](s.api.Get(ctx, "/players", query))
	return players
}

// ListGames walks every page of games starting at page 1 and returns them all.
// Pages are fetched one after another until a page is empty or fails.
// There is no upper bound on the number of pages: an upstream that never
// returns an empty page keeps this loop (and its memory use) growing.
func (s *Service) ListGames(ctx context.Context) []model.Game {
	var games []model.Game
	for page := 1; ; page++ {
		batch, ok := sportsapi.Unwrap[[]model.Game](s.api.Get(ctx, "/games", pageQuery(page)))
		if !ok || len(batch) == 0 {
			break
		}
		games = append(games, batch...)
	}

	for i := range games {
		games[i].LocalDate = FormatGameDate(games[i].Date)
	}

	s.logger.Debug("games fetched", slog.Int("count", len(games)))
	return games
}

// GetGame returns a single game with its display date; false means not found
// or upstream unavailable
func (s *Service) GetGame(ctx context.Context, id int64) (*model.Game, bool) {
	game, ok := sportsapi.Unwrap[model.Game](s.api.Get(ctx, fmt.Sprintf("/games/%d", id), nil))
	if !ok {
		return nil, false
	}
	game.LocalDate = FormatGameDate(game.Date)
	return &game, true
}

// pageQuery builds the listing query; page 0 omits the page parameter
func pageQuery(page int) url.Values {
	query := url.Values{"per_page": {strconv.Itoa(PageSize)}}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	return query
}
