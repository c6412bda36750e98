package preview

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scraperdashboard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadSimpleFile(t *testing.T) {
	path := writeCSV(t, "name,age\nAlice,30\nBob,25\n")

	doc, err := Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "products.csv", doc.Name)
	assert.Equal(t, 2, doc.Total())
	assert.Equal(t, []string{"name", "age"}, doc.Header)
	assert.Equal(t, []string{"Alice", "30"}, doc.Rows[0].Values())
	assert.Equal(t, []string{"Bob", "25"}, doc.Rows[1].Values())
}

func TestLoadHeaderOnly(t *testing.T) {
	doc, err := Load(context.Background(), writeCSV(t, "name,age\n"))
	require.NoError(t, err)

	assert.Equal(t, 0, doc.Total())
	assert.Empty(t, doc.Header)
	assert.Empty(t, doc.Rows)
}

func TestLoadEmptyFile(t *testing.T) {
	doc, err := Load(context.Background(), writeCSV(t, ""))
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Total())
	assert.Empty(t, doc.Header)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = Load(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadParseFailureIsAllOrNothing(t *testing.T) {
	path := writeCSV(t, "name,age\nAlice,30\n\"Bob,25\n")

	doc, err := Load(context.Background(), path)
	assert.Nil(t, doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)
	assert.False(t, errors.Is(err, ErrNotFound))

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, path, pe.Path)
	assert.Contains(t, pe.Error(), path)
}

func TestHeaderUsesFirstRowOnly(t *testing.T) {
	doc, err := Load(context.Background(), writeCSV(t, "A,B\n1,2\n3,4,5\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B"}, doc.Header)
	assert.Equal(t, []string{"A", "B", "_2"}, doc.Rows[1].Keys())
	assert.Equal(t, []string{"3", "4", "5"}, doc.Rows[1].Values())
}

func TestShortRowOmitsMissingKeys(t *testing.T) {
	doc, err := Load(context.Background(), writeCSV(t, "A,B,C\n1\n"))
	require.NoError(t, err)

	require.Len(t, doc.Rows, 1)
	assert.Equal(t, []string{"A"}, doc.Rows[0].Keys())
	_, ok := doc.Rows[0].Get("B")
	assert.False(t, ok)
}

func TestStreamQuotedFieldsAndBOM(t *testing.T) {
	input := "\xEF\xBB\xBFtitle,price\n\"Shirt, blue\",\"1,299\"\n\"say \"\"hi\"\"\",5\n"

	var rows []models.Row
	err := Stream(context.Background(), strings.NewReader(input), func(r models.Row) error {
		rows = append(rows, r)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, []string{"title", "price"}, rows[0].Keys())
	assert.Equal(t, []string{"Shirt, blue", "1,299"}, rows[0].Values())
	assert.Equal(t, []string{`say "hi"`, "5"}, rows[1].Values())
}

func TestStreamStopsOnCallbackError(t *testing.T) {
	stop := errors.New("stop")
	calls := 0

	err := Stream(context.Background(), strings.NewReader("a\n1\n2\n3\n"), func(models.Row) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestStreamCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Stream(ctx, strings.NewReader("a\n1\n"), func(models.Row) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}
