package roster

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alex-monroe/six-picks-stream-finder/internal/streamfinder"
)

const picksPage = `<!DOCTYPE html><html><body>
<div id="content"><div class="wideleft"><table>
  <thead><tr><th>Pos</th><th>Player</th></tr></thead>
  <tbody>
    <tr><td>OF</td><td><a href="/playercard/1">Player One</a></td></tr>
    <tr><td> SP </td><td><a href="/baseball/playercard/2">  Player Two </a> <span>NYY</span></td></tr>
    <tr><td colspan="2" class="editLink"><a href="/sixpicks/edit">Edit</a></td><td>x</td></tr>
  </tbody>
</table></div></div>
</body></html>`

func TestParse_ExtractsPlayers(t *testing.T) {
	players, err := Parse(strings.NewReader(picksPage))
	require.NoError(t, err)
	assert.Equal(t, []streamfinder.PlayerPick{
		{Name: "Player One", Position: "OF"},
		{Name: "Player Two", Position: "SP"},
	}, players)
}

func TestParse_TableMissing(t *testing.T) {
	_, err := Parse(strings.NewReader(`<div id="content"></div>`))
	assert.ErrorIs(t, err, ErrTableNotFound)

	_, err = Parse(strings.NewReader(`<div id="content"><div class="wideleft"><table></table></div></div>`))
	assert.ErrorIs(t, err, ErrTableNotFound)
}

func TestParse_SkipsRowsWithoutValidData(t *testing.T) {
	page := `<div id="content"><div class="wideleft"><table><tbody>
		<tr><td>OF</td><td></td></tr>
		<tr><td></td><td><a href="/playercard/3">NoPos</a></td></tr>
		<tr><td>C</td><td><a href="/teams/4">Not a player link</a></td></tr>
		<tr><td>1B</td></tr>
		<tr><td>RP</td><td><a href="/playercard/4">Valid</a></td></tr>
	</tbody></table></div></div>`

	players, err := Parse(strings.NewReader(page))
	require.NoError(t, err)
	assert.Equal(t, []streamfinder.PlayerPick{{Name: "Valid", Position: "RP"}}, players)
}

func TestParse_NoPlayers(t *testing.T) {
	page := `<div id="content"><div class="wideleft"><table><tbody>
		<tr><td>OF</td><td></td></tr>
	</tbody></table></div></div>`

	_, err := Parse(strings.NewReader(page))
	assert.ErrorIs(t, err, ErrNoPlayers)
}

func TestParse_TableWithoutExplicitTbody(t *testing.T) {
	page := `<div id="content"><div class="wideleft"><table>
		<tr><td>DH</td><td><a href="/playercard/9">Implicit Body</a></td></tr>
	</table></div></div>`

	players, err := Parse(strings.NewReader(page))
	require.NoError(t, err)
	assert.Equal(t, []streamfinder.PlayerPick{{Name: "Implicit Body", Position: "DH"}}, players)
}

func TestValidatePageURL(t *testing.T) {
	allowed := []string{"ottoneu.fangraphs.com/sixpicks/view/", "ottoneu.fangraphs.com/sixpicks/createEntry"}

	assert.NoError(t, ValidatePageURL("https://ottoneu.fangraphs.com/sixpicks/view/123", allowed))
	assert.NoError(t, ValidatePageURL("https://ottoneu.fangraphs.com/sixpicks/createEntry?x=1", allowed))
	assert.ErrorIs(t, ValidatePageURL("https://ottoneu.fangraphs.com/football", allowed), ErrPageNotAllowed)
	assert.ErrorIs(t, ValidatePageURL("", allowed), ErrPageNotAllowed)
	assert.NoError(t, ValidatePageURL("anything", nil))
}

func TestFetcher_Fetch(t *testing.T) {
	agents := make(chan string, 4)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case agents <- r.Header.Get("User-Agent"):
		default:
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, picksPage)
	}))
	defer ts.Close()

	f := NewFetcher("TestBot/1.0", 5*time.Second, nil)
	players, err := f.Fetch(context.Background(), ts.URL+"/sixpicks/view/1")
	require.NoError(t, err)
	assert.Len(t, players, 2)
	assert.Equal(t, "TestBot/1.0", <-agents)
}

func TestFetcher_FetchNoTable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><body><p>Log in to continue</p></body></html>`)
	}))
	defer ts.Close()

	_, err := NewFetcher("", time.Second, nil).Fetch(context.Background(), ts.URL)
	assert.ErrorIs(t, err, ErrTableNotFound)
}

func TestFetcher_FetchHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer ts.Close()

	_, err := NewFetcher("", time.Second, nil).Fetch(context.Background(), ts.URL+"/sixpicks/view/1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTableNotFound)
}

func TestFetcher_RejectsBadURL(t *testing.T) {
	_, err := NewFetcher("", time.Second, nil).Fetch(context.Background(), "ftp://example.com/x")
	assert.Error(t, err)
}
