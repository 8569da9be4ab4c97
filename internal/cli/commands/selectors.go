package commands

import (
	"context"
	"fmt"
	"os"

	"qakit/internal/browser"
	"qakit/internal/cli/ui"
	"qakit/internal/selector"
)

// SelectorsHandler генерирует локаторы по HTML из файла или живой страницы.
type SelectorsHandler struct {
	fetcher *browser.Fetcher
}

func NewSelectorsHandler(fetcher *browser.Fetcher) *SelectorsHandler {
	return &SelectorsHandler{fetcher: fetcher}
}

// FromFile читает HTML-файл и печатает кандидатов.
func (h *SelectorsHandler) FromFile(path string) {
	markup, err := os.ReadFile(path)
	if err != nil {
		ui.PrintError("Не удалось прочитать файл: " + err.Error())
		return
	}
	h.print(string(markup))
}

// FromURL забирает разметку живой страницы и печатает кандидатов.
func (h *SelectorsHandler) FromURL(ctx context.Context, url string) {
	markup, err := h.fetcher.FetchHTML(ctx, url)
	if err != nil {
		ui.PrintError("Не удалось загрузить страницу: " + err.Error())
		return
	}
	h.print(markup)
}

func (h *SelectorsHandler) print(markup string) {
	res, err := selector.Synthesize(markup)
	if err != nil {
		ui.PrintError(err.Error())
		return
	}

	printGroup("XPath", res.XPath)
	printGroup("CSS", res.CSS)
	printGroup("Test ID", res.TestID)
}

func printGroup(title string, items []string) {
	ui.PrintSection(ui.IconTarget + " " + title)
	for _, item := range items {
		fmt.Println("  " + ui.ColorCyan + item + ui.ColorReset)
	}
}
