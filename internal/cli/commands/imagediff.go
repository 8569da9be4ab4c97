package commands

import (
	"fmt"
	"os"

	"qakit/internal/cli/ui"
	"qakit/internal/imagediff"
)

// ImageDiffHandler сравнивает два PNG-скриншота.
type ImageDiffHandler struct{}

func NewImageDiffHandler() *ImageDiffHandler {
	return &ImageDiffHandler{}
}

// Compare обрабатывает команду "imgdiff <a.png> <b.png> [diff.png]".
func (h *ImageDiffHandler) Compare(args []string) {
	if len(args) < 2 {
		ui.PrintError("Использование: imgdiff <a.png> <b.png> [diff.png]")
		return
	}

	base, err := os.ReadFile(args[0])
	if err != nil {
		ui.PrintError("Не удалось прочитать " + args[0] + ": " + err.Error())
		return
	}
	actual, err := os.ReadFile(args[1])
	if err != nil {
		ui.PrintError("Не удалось прочитать " + args[1] + ": " + err.Error())
		return
	}

	res, err := imagediff.Compare(base, actual, 0)
	if err != nil {
		ui.PrintError(err.Error())
		return
	}

	ui.PrintSection(ui.IconImage + " Сравнение изображений")
	fmt.Printf("  Размер: %dx%d\n", res.Width, res.Height)
	fmt.Printf("  Отличий: %d из %d пикселей (%.2f%%)\n",
		res.DiffPixels, res.TotalPixels, res.MismatchRatio*100)

	if res.DiffPixels == 0 {
		ui.PrintSuccess("Изображения совпадают")
	}

	if len(args) >= 3 {
		if err := os.WriteFile(args[2], res.DiffImage, 0o644); err != nil {
			ui.PrintError("Не удалось записать diff: " + err.Error())
			return
		}
		ui.PrintSuccess("Diff сохранён в " + args[2])
	}
}
