// Package roster reads the picked players off an Ottoneu Six Picks page.
package roster

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/alex-monroe/six-picks-stream-finder/internal/streamfinder"
)

const (
	tableSelector  = "#content .wideleft table"
	playerSelector = `a[href*="/playercard/"]`
)

// ExtractionFailedReason is the operator-facing reason reported when a page
// has no usable picks table.
const ExtractionFailedReason = "Could not find or parse the player table on the page."

var (
	ErrTableNotFound  = errors.New("could not find the player picks table")
	ErrNoPlayers      = errors.New("no players extracted from the table")
	ErrPageNotAllowed = errors.New("not on an Ottoneu Six Picks view or createEntry page")
)

// ValidatePageURL reports whether pageURL contains one of the allowed
// prefixes. An empty allow list accepts every URL.
func ValidatePageURL(pageURL string, allowed []string) error {
	if len(allowed) == 0 {
		return nil
	}
	for _, p := range allowed {
		if p != "" && strings.Contains(pageURL, p) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrPageNotAllowed, pageURL)
}

// Parse reads an HTML page and extracts its picks.
func Parse(r io.Reader) ([]streamfinder.PlayerPick, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return Extract(doc)
}

// Extract returns the picks from the first table under #content .wideleft.
func Extract(doc *goquery.Document) ([]streamfinder.PlayerPick, error) {
	return extractFrom(doc.Selection)
}

// extractFrom reads rows of the first tbody. A row counts when it has at
// least two cells, is not an edit-link row, and has both a position in its
// first cell and a player-card link in its second.
func extractFrom(root *goquery.Selection) ([]streamfinder.PlayerPick, error) {
	table := root.Find(tableSelector).First()
	if table.Length() == 0 {
		return nil, ErrTableNotFound
	}
	tbody := table.ChildrenFiltered("tbody").First()
	if tbody.Length() == 0 {
		return nil, ErrTableNotFound
	}

	var players []streamfinder.PlayerPick
	tbody.ChildrenFiltered("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.ChildrenFiltered("td, th")
		if cells.Length() < 2 || row.Find("td.editLink").Length() > 0 {
			return
		}
		position := strings.TrimSpace(cells.Eq(0).Text())
		link := cells.Eq(1).Find(playerSelector).First()
		if link.Length() == 0 {
			return
		}
		name := strings.TrimSpace(link.Text())
		if position == "" || name == "" {
			return
		}
		players = append(players, streamfinder.PlayerPick{Name: name, Position: position})
	})

	if len(players) == 0 {
		return nil, ErrNoPlayers
	}
	return players, nil
}
