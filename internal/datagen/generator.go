// Package datagen генерирует тестовые данные по списку именованных полей.
package datagen

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

const (
	defaultRows = 10
	maxRows     = 1000
)

var ErrNoFields = errors.New("не указаны поля для генерации")

// Request описывает запрос на генерацию: поля, число строк и seed.
// Seed = 0 означает случайный seed, ненулевой даёт воспроизводимый результат.
type Request struct {
	Fields []string `json:"fields"`
	Count  int      `json:"count"`
	Seed   uint64   `json:"seed"`
}

// Table — табличный результат генерации.
type Table struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// fieldKinds — фиксированная таблица поддерживаемых видов полей.
var fieldKinds = map[string]func(f *gofakeit.Faker) string{
	"fullName":   func(f *gofakeit.Faker) string { return f.Name() },
	"firstName":  func(f *gofakeit.Faker) string { return f.FirstName() },
	"lastName":   func(f *gofakeit.Faker) string { return f.LastName() },
	"email":      func(f *gofakeit.Faker) string { return f.Email() },
	"phone":      func(f *gofakeit.Faker) string { return f.Phone() },
	"address":    func(f *gofakeit.Faker) string { return f.Address().Address },
	"city":       func(f *gofakeit.Faker) string { return f.City() },
	"country":    func(f *gofakeit.Faker) string { return f.Country() },
	"company":    func(f *gofakeit.Faker) string { return f.Company() },
	"jobTitle":   func(f *gofakeit.Faker) string { return f.JobTitle() },
	"username":   func(f *gofakeit.Faker) string { return f.Username() },
	"password":   func(f *gofakeit.Faker) string { return f.Password(true, true, true, true, false, 12) },
	"uuid":       func(f *gofakeit.Faker) string { return f.UUID() },
	"ipv4":       func(f *gofakeit.Faker) string { return f.IPv4Address() },
	"url":        func(f *gofakeit.Faker) string { return f.URL() },
	"date":       func(f *gofakeit.Faker) string { return f.Date().Format(time.RFC3339) },
	"creditCard": func(f *gofakeit.Faker) string { return f.CreditCardNumber(nil) },
	"sentence":   func(f *gofakeit.Faker) string { return f.Sentence(8) },
	"word":       func(f *gofakeit.Faker) string { return f.Word() },
	"number":     func(f *gofakeit.Faker) string { return strconv.Itoa(f.Number(1, 9999)) },
	"bool":       func(f *gofakeit.Faker) string { return strconv.FormatBool(f.Bool()) },
}

// SupportedKinds возвращает отсортированный список поддерживаемых видов полей.
func SupportedKinds() []string {
	kinds := make([]string, 0, len(fieldKinds))
	for k := range fieldKinds {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Generate создаёт таблицу фейковых данных по запросу.
func Generate(req Request) (*Table, error) {
	if len(req.Fields) == 0 {
		return nil, ErrNoFields
	}

	for _, field := range req.Fields {
		if _, ok := fieldKinds[field]; !ok {
			return nil, fmt.Errorf("неизвестное поле %q, поддерживаются: %s",
				field, strings.Join(SupportedKinds(), ", "))
		}
	}

	count := req.Count
	if count <= 0 {
		count = defaultRows
	}
	if count > maxRows {
		count = maxRows
	}

	faker := gofakeit.New(req.Seed)

	rows := make([][]string, 0, count)
	for i := 0; i < count; i++ {
		row := make([]string, 0, len(req.Fields))
		for _, field := range req.Fields {
			row = append(row, fieldKinds[field](faker))
		}
		rows = append(rows, row)
	}

	return &Table{
		Headers: append([]string(nil), req.Fields...),
		Rows:    rows,
	}, nil
}
