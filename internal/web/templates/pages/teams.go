package pages

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/mcoot/courtside/internal/model"
	"github.com/mcoot/courtside/internal/web/templates/layout"
)

// TeamsData holds data for the teams listing
type TeamsData struct {
	layout.PageData
	Teams []model.Team
}

// TeamDetailData holds a team and its roster
type TeamDetailData struct {
	layout.PageData
	Team    model.Team
	Players []model.Player
}

// Teams renders the teams table
func Teams(data TeamsData) templ.Component {
	return layout.Base(data.PageData, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := layout.NewWriter(w)
		hw.Raw(`<h1>Teams</h1><table id="teams-table"><thead><tr><th>Team</th><th>Abbr.</th><th>Conference</th><th>Division</th></tr></thead><tbody>`)
		for _, t := range data.Teams {
			hw.Raw(`<tr><td>`)
			teamLink(hw, t)
			hw.Raw(`</td><td>`)
			hw.Text(t.Abbreviation)
			hw.Raw(`</td><td>`)
			hw.Text(t.Conference)
			hw.Raw(`</td><td>`)
			hw.Text(t.Division)
			hw.Raw(`</td></tr>`)
		}
		hw.Raw(`</tbody></table>`)
		return hw.Err()
	}))
}

// TeamDetail renders a team and its roster
func TeamDetail(data TeamDetailData) templ.Component {
	return layout.Base(data.PageData, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		t := data.Team
		hw := layout.NewWriter(w)
		hw.Raw(`<article id="team-detail"><h1>`)
		hw.Text(t.FullName)
		hw.Raw(`</h1><dl>`)
		definition(hw, "City", t.City)
		definition(hw, "Abbreviation", t.Abbreviation)
		definition(hw, "Conference", t.Conference)
		definition(hw, "Division", t.Division)
		hw.Raw(`</dl><h2>Roster</h2>`)
		if len(data.Players) == 0 {
			hw.Raw(`<p id="roster-empty">No players found for this team.</p>`)
		} else {
			playersTable(hw, "team-roster", data.Players)
		}
		hw.Raw(`<p><a href="/teams">Back to teams</a></p></article>`)
		return hw.Err()
	}))
}

func teamLink(hw *layout.Writer, t model.Team) {
	hw.Raw(`<a href="/teams/`)
	hw.Raw(strconv.FormatInt(t.ID, 10))
	hw.Raw(`">`)
	hw.Text(t.FullName)
	hw.Raw(`</a>`)
}
