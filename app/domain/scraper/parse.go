package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ParseDocument parses raw upstream HTML into a queryable document.
func ParseDocument(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// TableToRows converts an HTML table into row maps. The first row is the
// header row: cell text is lower-cased and whitespace-stripped to form the
// column keys; subsequent rows map positionally. A nil or empty selection
// returns an empty slice — upstream markup changes should degrade
// gracefully, not fail.
func TableToRows(table *goquery.Selection) []map[string]string {
	rows := []map[string]string{}
	if table == nil || table.Length() == 0 {
		return rows
	}

	trs := table.Find("tr")
	if trs.Length() == 0 {
		return rows
	}

	headers := []string{}
	trs.First().Find("th, td").Each(func(_ int, cell *goquery.Selection) {
		headers = append(headers, normalizeHeader(cell.Text()))
	})

	trs.Slice(1, trs.Length()).Each(func(_ int, tr *goquery.Selection) {
		row := map[string]string{}
		tr.Find("td, th").Each(func(i int, cell *goquery.Selection) {
			if i < len(headers) {
				row[headers[i]] = strings.TrimSpace(cell.Text())
			}
		})
		rows = append(rows, row)
	})
	return rows
}

func normalizeHeader(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "")
}
