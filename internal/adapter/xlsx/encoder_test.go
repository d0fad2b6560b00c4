package xlsx

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/couchcryptid/field-survey-reports/internal/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func listDocument(n int) layout.Document {
	b := layout.NewBuilder(nil, nil)
	b.SetTitle("Liste des fiches de terrain - Site Gerland")
	b.Text(60, 20, "Liste des fiches de terrain")
	body := make([][]string, n)
	for i := range body {
		body[i] = []string{"Sondage de sol", fmt.Sprintf("F%d", i+1), "14/05/2024 09:05", "Remblai hétérogène avec une description assez longue pour être coupée"}
	}
	b.Table(40, []string{"Type", "Nom", "Date", "Commentaire"}, body, layout.DefaultTableStyle())
	return b.Build()
}

func readRows(t *testing.T, data []byte) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{sheetName}, f.GetSheetList())
	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	return rows
}

func TestEncoder_Encode(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(time.Date(2024, 5, 14, 9, 5, 0, 0, time.UTC))
	require.NoError(t, enc.Encode(&buf, listDocument(2)))

	rows := readRows(t, buf.Bytes())
	require.Len(t, rows, 5)
	assert.Equal(t, "Liste des fiches de terrain - Site Gerland", rows[0][0])
	assert.Equal(t, []string{"Type", "Nom", "Date", "Commentaire"}, rows[2])
	assert.Equal(t, "F2", rows[4][1])
	assert.Equal(t, "Remblai hétérogène avec une description assez longue pour être coupée", rows[3][3])
	assert.Equal(t, "xlsx", enc.Extension())
}

func TestEncoder_DropsRepeatedHeaders(t *testing.T) {
	doc := listDocument(120)
	require.Greater(t, doc.PageCount(), 1)

	var buf bytes.Buffer
	require.NoError(t, NewEncoder(time.Time{}).Encode(&buf, doc))

	rows := readRows(t, buf.Bytes())
	assert.Len(t, rows, headerRow+120)
	headers := 0
	for _, r := range rows {
		if len(r) > 0 && r[0] == "Type" {
			headers++
		}
	}
	assert.Equal(t, 1, headers)
}

func TestEncoder_NoTable(t *testing.T) {
	b := layout.NewBuilder(nil, nil)
	b.Text(10, 10, "Rien")

	var buf bytes.Buffer
	err := NewEncoder(time.Time{}).Encode(&buf, b.Build())
	require.ErrorIs(t, err, errNoTable)
	assert.Zero(t, buf.Len())
}
