package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/courtside/internal/services/catalog"
	"github.com/mcoot/courtside/internal/web/templates/pages"
)

// CatalogHandler renders players, teams and games from the sports API
type CatalogHandler struct {
	catalog *catalog.Service
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService *catalog.Service) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalogService,
	}
}

// Players lists the first page of players
func (h *CatalogHandler) Players(w http.ResponseWriter, r *http.Request) {
	players := h.catalog.ListPlayers(r.Context())

	data := pages.PlayersData{Players: players}
	if len(players) == 0 {
		data.PageData = pageData(r, "Players", errorNotice("Could not retrieve players from the sports API."))
	} else {
		data.PageData = pageData(r, "Players")
	}
	render(w, r, pages.Players(data))
}

// Player shows one player
func (h *CatalogHandler) Player(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if ok {
		if player, found := h.catalog.GetPlayer(r.Context(), id); found {
			render(w, r, pages.PlayerDetail(pages.PlayerDetailData{
				PageData: pageData(r, player.FullName()),
				Player:   *player,
			}))
			return
		}
	}
	redirectWithFlash(w, r, flashError, "Player not found.", "/players")
}

// Teams lists every team
func (h *CatalogHandler) Teams(w http.ResponseWriter, r *http.Request) {
	teams := h.catalog.ListTeams(r.Context())

	data := pages.TeamsData{Teams: teams}
	if len(teams) == 0 {
		data.PageData = pageData(r, "Teams", errorNotice("Could not retrieve teams from the sports API."))
	} else {
		data.PageData = pageData(r, "Teams")
	}
	render(w, r, pages.Teams(data))
}

// Team shows one team and its roster. A roster that cannot be fetched renders empty.
func (h *CatalogHandler) Team(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if ok {
		if team, found := h.catalog.GetTeam(r.Context(), id); found {
			render(w, r, pages.TeamDetail(pages.TeamDetailData{
				PageData: pageData(r, team.FullName),
				Team:     *team,
				Players:  h.catalog.ListTeamPlayers(r.Context(), team.ID),
			}))
			return
		}
	}
	redirectWithFlash(w, r, flashError, "Team not found.", "/teams")
}

// Games lists every game across all pages
func (h *CatalogHandler) Games(w http.ResponseWriter, r *http.Request) {
	games := h.catalog.ListGames(r.Context())

	data := pages.GamesData{Games: games}
	if len(games) == 0 {
		data.PageData = pageData(r, "Games", errorNotice("Could not retrieve games from the sports API."))
	} else {
		data.PageData = pageData(r, "Games")
	}
	render(w, r, pages.Games(data))
}

// Game shows one game
func (h *CatalogHandler) Game(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if ok {
		if game, found := h.catalog.GetGame(r.Context(), id); found {
			render(w, r, pages.GameDetail(pages.GameDetailData{
				PageData: pageData(r, game.HomeTeam.FullName+" vs "+game.VisitorTeam.FullName),
				Game:     *game,
			}))
			return
		}
	}
	redirectWithFlash(w, r, flashError, "Game not found.", "/games")
}

// pathID reads the numeric {id} route variable
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
