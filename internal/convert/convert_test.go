package convert

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONToCSV_Basic(t *testing.T) {
	out, err := JSONToCSV([]byte(`[{"name":"Анна","age":30},{"name":"Борис","age":25}]`))
	require.NoError(t, err)

	assert.Equal(t, "name,age\nАнна,30\nБорис,25\n", string(out))
}

func TestJSONToCSV_HeaderOrderIsFirstSeen(t *testing.T) {
	out, err := JSONToCSV([]byte(`[{"b":"1","a":"2"},{"a":"3","c":"4"}]`))
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimSpace(out), []byte("\n"))
	assert.Equal(t, "b,a,c", string(lines[0]))
	assert.Equal(t, "1,2,", string(lines[1]))
	assert.Equal(t, ",3,4", string(lines[2]))
}

func TestJSONToCSV_ValueFormats(t *testing.T) {
	out, err := JSONToCSV([]byte(`[{"s":"x","n":1.5,"b":true,"z":null,"o":{"k":1}}]`))
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimSpace(out), []byte("\n"))
	assert.Equal(t, `x,1.5,true,,"{""k"":1}"`, string(lines[1]))
}

func TestJSONToCSV_NotArray(t *testing.T) {
	_, err := JSONToCSV([]byte(`{"a":1}`))
	require.ErrorIs(t, err, ErrNotArray)
}

func TestJSONToCSV_EmptyInput(t *testing.T) {
	_, err := JSONToCSV([]byte("  "))
	require.ErrorIs(t, err, ErrEmptyInput)

	_, err = JSONToCSV([]byte("[]"))
	require.ErrorIs(t, err, ErrEmptyInput)
}

func TestJSONToCSV_MalformedJSON(t *testing.T) {
	_, err := JSONToCSV([]byte(`[{"a":`))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotArray)
}

func TestCSVToJSON_Basic(t *testing.T) {
	out, err := CSVToJSON([]byte("name,city\nАнна,Москва\nБорис,Казань\n"))
	require.NoError(t, err)

	assert.JSONEq(t, `[{"name":"Анна","city":"Москва"},{"name":"Борис","city":"Казань"}]`, string(out))
	// Порядок ключей повторяет заголовок.
	assert.Less(t, bytes.Index(out, []byte(`"name"`)), bytes.Index(out, []byte(`"city"`)))
}

func TestCSVToJSON_RaggedRows(t *testing.T) {
	_, err := CSVToJSON([]byte("a,b\n1,2,3\n"))
	require.Error(t, err)
}

func TestCSVToJSON_EmptyInput(t *testing.T) {
	_, err := CSVToJSON([]byte("\n"))
	require.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	src := []byte(`[{"name":"Анна","role":"QA"},{"name":"Борис","role":"Dev"}]`)

	csvOut, err := JSONToCSV(src)
	require.NoError(t, err)
	jsonOut, err := CSVToJSON(csvOut)
	require.NoError(t, err)

	assert.JSONEq(t, string(src), string(jsonOut))
}

func TestWriteXLSX_ProducesWorkbook(t *testing.T) {
	out, err := WriteXLSX([]string{"a", "b"}, [][]string{{"1", "2"}, {"3", "4"}})
	require.NoError(t, err)

	// XLSX — это zip-архив, начинается с сигнатуры PK.
	require.Greater(t, len(out), 4)
	assert.Equal(t, []byte{'P', 'K'}, out[:2])
}

func TestJSONToXLSX_NotArray(t *testing.T) {
	_, err := JSONToXLSX([]byte(`"строка"`))
	require.ErrorIs(t, err, ErrNotArray)
}
