package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"qakit/internal/cli/ui"
	"qakit/internal/convert"
	"qakit/internal/datagen"
)

// DataHandler генерирует тестовые данные и сохраняет их в CSV.
type DataHandler struct{}

func NewDataHandler() *DataHandler {
	return &DataHandler{}
}

// Generate обрабатывает команду "gen <n> <поля> [out.csv]".
func (h *DataHandler) Generate(args []string) {
	if len(args) < 2 {
		ui.PrintError("Использование: gen <n> <поле,поле,...> [out.csv]")
		return
	}

	count, err := strconv.Atoi(args[0])
	if err != nil {
		ui.PrintError("Неверное число строк: " + args[0])
		return
	}

	fields := strings.Split(args[1], ",")
	table, err := datagen.Generate(datagen.Request{Fields: fields, Count: count})
	if err != nil {
		ui.PrintError(err.Error())
		return
	}

	if len(args) >= 3 {
		out, err := convert.WriteCSV(table.Headers, table.Rows)
		if err != nil {
			ui.PrintError(err.Error())
			return
		}
		if err := os.WriteFile(args[2], out, 0o644); err != nil {
			ui.PrintError("Не удалось записать файл: " + err.Error())
			return
		}
		ui.PrintSuccess(fmt.Sprintf("Записано %d строк в %s", len(table.Rows), args[2]))
		return
	}

	ui.PrintSection(ui.IconChart + " Тестовые данные")
	fmt.Println("  " + ui.ColorBold + strings.Join(table.Headers, " | ") + ui.ColorReset)
	for _, row := range table.Rows {
		fmt.Println("  " + strings.Join(row, " | "))
	}
}

// Fields печатает список поддерживаемых видов полей.
func (h *DataHandler) Fields() {
	ui.PrintSection(ui.IconList + " Поддерживаемые поля")
	for _, kind := range datagen.SupportedKinds() {
		fmt.Println("  " + ui.ColorGreen + kind + ui.ColorReset)
	}
}
