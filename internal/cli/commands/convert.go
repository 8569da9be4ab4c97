package commands

import (
	"fmt"
	"os"

	"qakit/internal/cli/ui"
	"qakit/internal/convert"
)

// ConvertHandler — команды преобразования JSON/CSV/XLSX.
type ConvertHandler struct{}

func NewConvertHandler() *ConvertHandler {
	return &ConvertHandler{}
}

func (h *ConvertHandler) JSONToCSV(args []string) {
	h.run(args, "json2csv <in.json> [out.csv]", convert.JSONToCSV)
}

func (h *ConvertHandler) CSVToJSON(args []string) {
	h.run(args, "csv2json <in.csv> [out.json]", convert.CSVToJSON)
}

func (h *ConvertHandler) JSONToXLSX(args []string) {
	if len(args) < 2 {
		ui.PrintError("Использование: json2xlsx <in.json> <out.xlsx>")
		return
	}
	// XLSX бинарный, в терминал его не выводим — файл обязателен.
	h.run(args, "", convert.JSONToXLSX)
}

func (h *ConvertHandler) run(args []string, usage string, fn func([]byte) ([]byte, error)) {
	if len(args) < 1 {
		ui.PrintError("Использование: " + usage)
		return
	}

	in, err := os.ReadFile(args[0])
	if err != nil {
		ui.PrintError("Не удалось прочитать файл: " + err.Error())
		return
	}

	out, err := fn(in)
	if err != nil {
		ui.PrintError(err.Error())
		return
	}

	if len(args) >= 2 {
		if err := os.WriteFile(args[1], out, 0o644); err != nil {
			ui.PrintError("Не удалось записать файл: " + err.Error())
			return
		}
		ui.PrintSuccess("Записано в " + args[1])
		return
	}

	fmt.Println(string(out))
}
