package pages

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/mcoot/courtside/internal/model"
	"github.com/mcoot/courtside/internal/web/templates/layout"
)

// PlayersData holds data for the players listing
type PlayersData struct {
	layout.PageData
	Players []model.Player
}

// PlayerDetailData holds data for a single player page
type PlayerDetailData struct {
	layout.PageData
	Player model.Player
}

// Players renders the players table
func Players(data PlayersData) templ.Component {
	return layout.Base(data.PageData, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := layout.NewWriter(w)
		hw.Raw(`<h1>Players</h1>`)
		playersTable(hw, "players-table", data.Players)
		return hw.Err()
	}))
}

// PlayerDetail renders one player's profile
func PlayerDetail(data PlayerDetailData) templ.Component {
	return layout.Base(data.PageData, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := data.Player
		hw := layout.NewWriter(w)
		hw.Raw(`<article id="player-detail"><h1>`)
		hw.Text(p.FullName())
		hw.Raw(`</h1><dl>`)
		definition(hw, "Position", p.Position)
		definition(hw, "Height", p.Height)
		definition(hw, "Weight", p.Weight)
		definition(hw, "Jersey", p.JerseyNumber)
		definition(hw, "College", p.College)
		definition(hw, "Country", p.Country)
		definition(hw, "Draft", draftText(p))
		hw.Raw(`</dl>`)
		if p.Team != nil {
			hw.Raw(`<p class="team">Team: `)
			teamLink(hw, *p.Team)
			hw.Raw(`</p>`)
		}
		hw.Raw(`<p><a href="/players">Back to players</a></p></article>`)
		return hw.Err()
	}))
}

func playersTable(hw *layout.Writer, id string, players []model.Player) {
	hw.Raw(`<table id="`)
	hw.Text(id)
	hw.Raw(`"><thead><tr><th>Name</th><th>Position</th><th>Team</th></tr></thead><tbody>`)
	for _, p := range players {
		hw.Raw(`<tr><td><a href="/players/`)
		hw.Raw(strconv.FormatInt(p.ID, 10))
		hw.Raw(`">`)
		hw.Text(p.FullName())
		hw.Raw(`</a></td><td>`)
		hw.Text(p.Position)
		hw.Raw(`</td><td>`)
		if p.Team != nil {
			hw.Text(p.Team.FullName)
		}
		hw.Raw(`</td></tr>`)
	}
	hw.Raw(`</tbody></table>`)
}

func definition(hw *layout.Writer, term, value string) {
	if value == "" {
		return
	}
	hw.Raw(`<dt>`)
	hw.Text(term)
	hw.Raw(`</dt><dd>`)
	hw.Text(value)
	hw.Raw(`</dd>`)
}

func draftText(p model.Player) string {
	if p.DraftYear == nil {
		return "Undrafted"
	}
	text := strconv.Itoa(*p.DraftYear)
	if p.DraftRound != nil && p.DraftNumber != nil {
		text += " (round " + strconv.Itoa(*p.DraftRound) + ", pick " + strconv.Itoa(*p.DraftNumber) + ")"
	}
	return text
}
