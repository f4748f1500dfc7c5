package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTable = `
<html><body>
<table>
  <tr><th>Meet Name</th><th> Date </th><th>Total</th></tr>
  <tr><td>Nationals</td><td>2024-05-01</td><td>1800</td></tr>
  <tr><td>Regionals</td><td>2024-02-10</td><td>1750</td></tr>
</table>
</body></html>`

func TestTableToRows(t *testing.T) {
	doc, err := ParseDocument(sampleTable)
	require.NoError(t, err)

	rows := TableToRows(doc.Find("table").First())
	require.Len(t, rows, 2)
	// header cells are lower-cased and whitespace-stripped
	assert.Equal(t, "Nationals", rows[0]["meetname"])
	assert.Equal(t, "2024-05-01", rows[0]["date"])
	assert.Equal(t, "1750", rows[1]["total"])
}

func TestTableToRowsEmptyAndMissing(t *testing.T) {
	doc, err := ParseDocument(`<html><body><table></table></body></html>`)
	require.NoError(t, err)
	assert.Empty(t, TableToRows(doc.Find("table").First()))

	// selection that matches nothing
	assert.Empty(t, TableToRows(doc.Find("#nope")))

	// nil selection must degrade, not panic
	assert.Empty(t, TableToRows(nil))
}

func TestTableToRowsHeaderOnly(t *testing.T) {
	doc, err := ParseDocument(`<table><tr><th>Name</th></tr></table>`)
	require.NoError(t, err)
	assert.Empty(t, TableToRows(doc.Find("table").First()))
}

func TestTableToRowsRaggedRow(t *testing.T) {
	doc, err := ParseDocument(`
<table>
  <tr><th>A</th><th>B</th></tr>
  <tr><td>1</td><td>2</td><td>3</td></tr>
</table>`)
	require.NoError(t, err)
	rows := TableToRows(doc.Find("table").First())
	require.Len(t, rows, 1)
	// trailing cells beyond the header width are dropped
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, rows[0])
}
