// Package convert преобразует табличные данные между JSON, CSV и XLSX.
// Порядок колонок стабильный: ключи первого объекта, затем новые ключи
// последующих объектов в порядке первого появления.
package convert

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

var (
	ErrEmptyInput = errors.New("пустой ввод: нет данных для преобразования")
	ErrNotArray   = errors.New("ожидается JSON-массив объектов")
)

// JSONToCSV преобразует JSON-массив плоских объектов в CSV.
func JSONToCSV(data []byte) ([]byte, error) {
	headers, rows, err := tabulate(data)
	if err != nil {
		return nil, err
	}
	return writeCSV(headers, rows)
}

// JSONToXLSX преобразует JSON-массив плоских объектов в книгу XLSX.
func JSONToXLSX(data []byte) ([]byte, error) {
	headers, rows, err := tabulate(data)
	if err != nil {
		return nil, err
	}
	return WriteXLSX(headers, rows)
}

// CSVToJSON преобразует CSV с заголовком в JSON-массив объектов.
// Значения остаются строками, порядок ключей повторяет заголовок.
func CSVToJSON(data []byte) ([]byte, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyInput
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("ошибка разбора CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyInput
	}

	header := records[0]
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, rec := range records[1:] {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for j, h := range header {
			if j > 0 {
				buf.WriteByte(',')
			}
			key, _ := json.Marshal(h)
			val, _ := json.Marshal(rec[j])
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(val)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// WriteCSV сериализует готовую таблицу (например из datagen) в CSV.
func WriteCSV(headers []string, rows [][]string) ([]byte, error) {
	return writeCSV(headers, rows)
}

// WriteXLSX сериализует готовую таблицу в книгу XLSX с одним листом.
func WriteXLSX(headers []string, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", rowValues(headers)); err != nil {
		return nil, err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, rowValues(row)); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func rowValues(row []string) *[]interface{} {
	vals := make([]interface{}, len(row))
	for i, v := range row {
		vals[i] = v
	}
	return &vals
}

func writeCSV(headers []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(headers); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// tabulate раскладывает JSON-массив объектов в заголовок и строки.
func tabulate(data []byte) ([]string, [][]string, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil, ErrEmptyInput
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		if json.Valid(data) {
			return nil, nil, ErrNotArray
		}
		return nil, nil, fmt.Errorf("ошибка разбора JSON: %w", err)
	}
	if len(raws) == 0 {
		return nil, nil, ErrEmptyInput
	}

	var headers []string
	seen := make(map[string]bool)
	objects := make([]map[string]string, 0, len(raws))

	for i, raw := range raws {
		keys, values, err := decodeObject(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("элемент %d: %w", i, err)
		}
		for _, k := range keys {
			if !seen[k] {
				seen[k] = true
				headers = append(headers, k)
			}
		}
		objects = append(objects, values)
	}

	rows := make([][]string, 0, len(objects))
	for _, obj := range objects {
		row := make([]string, len(headers))
		for i, h := range headers {
			row[i] = obj[h]
		}
		rows = append(rows, row)
	}

	return headers, rows, nil
}

// decodeObject читает объект токенами, сохраняя порядок ключей.
func decodeObject(raw json.RawMessage) ([]string, map[string]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, ErrNotArray
	}

	var keys []string
	values := make(map[string]string)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key := keyTok.(string)

		var val any
		if err := dec.Decode(&val); err != nil {
			return nil, nil, err
		}
		if _, dup := values[key]; !dup {
			keys = append(keys, key)
		}
		values[key] = formatValue(val)
	}

	return keys, values, nil
}

func formatValue(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		// Вложенные объекты и массивы попадают в ячейку как компактный JSON.
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	}
}
