package pages

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/mcoot/courtside/internal/model"
	"github.com/mcoot/courtside/internal/web/templates/layout"
)

// GamesData holds data for the games listing
type GamesData struct {
	layout.PageData
	Games []model.Game
}

// GameDetailData holds data for a single game page
type GameDetailData struct {
	layout.PageData
	Game model.Game
}

// Games renders every game in one table
func Games(data GamesData) templ.Component {
	return layout.Base(data.PageData, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := layout.NewWriter(w)
		hw.Raw(`<h1>Games</h1><p class="count">`)
		hw.Textf("%d games", len(data.Games))
		hw.Raw(`</p><table id="games-table"><thead><tr><th>Date</th><th>Home</th><th>Score</th><th>Visitor</th><th>Status</th></tr></thead><tbody>`)
		for _, g := range data.Games {
			hw.Raw(`<tr><td class="date"><a href="/games/`)
			hw.Raw(strconv.FormatInt(g.ID, 10))
			hw.Raw(`">`)
			hw.Text(g.LocalDate)
			hw.Raw(`</a></td><td>`)
			hw.Text(g.HomeTeam.FullName)
			hw.Raw(`</td><td>`)
			hw.Textf("%d - %d", g.HomeTeamScore, g.VisitorTeamScore)
			hw.Raw(`</td><td>`)
			hw.Text(g.VisitorTeam.FullName)
			hw.Raw(`</td><td>`)
			hw.Text(g.Status)
			hw.Raw(`</td></tr>`)
		}
		hw.Raw(`</tbody></table>`)
		return hw.Err()
	}))
}

// GameDetail renders one game's scoreline
func GameDetail(data GameDetailData) templ.Component {
	return layout.Base(data.PageData, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		g := data.Game
		hw := layout.NewWriter(w)
		hw.Raw(`<article id="game-detail"><h1>`)
		hw.Text(g.HomeTeam.FullName)
		hw.Raw(` vs `)
		hw.Text(g.VisitorTeam.FullName)
		hw.Raw(`</h1><p class="date">`)
		hw.Text(g.LocalDate)
		hw.Raw(`</p><p class="score">`)
		hw.Textf("%d - %d", g.HomeTeamScore, g.VisitorTeamScore)
		hw.Raw(`</p><dl>`)
		definition(hw, "Season", strconv.Itoa(g.Season))
		definition(hw, "Status", g.Status)
		if g.Postseason {
			definition(hw, "Stage", "Postseason")
		}
		hw.Raw(`</dl><p><a href="/games">Back to games</a></p></article>`)
		return hw.Err()
	}))
}
