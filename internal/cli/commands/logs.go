package commands

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"qakit/internal/cli/ui"
	"qakit/internal/llm"
	"qakit/internal/loganalyzer"
)

// LogsHandler — анализ логов и AI-инсайты.
type LogsHandler struct {
	llm *llm.Client
	log *zap.Logger
}

func NewLogsHandler(llmClient *llm.Client, log *zap.Logger) *LogsHandler {
	return &LogsHandler{llm: llmClient, log: log}
}

// Analyze обрабатывает команду "logs <файл>".
func (h *LogsHandler) Analyze(path string) {
	report, ok := h.analyzeFile(path)
	if !ok {
		return
	}

	ui.PrintSection(ui.IconChart + " Анализ лога")
	fmt.Print(loganalyzer.FormatReport(report))
}

// Insights обрабатывает команду "insights <файл>": анализ + запрос к LLM.
func (h *LogsHandler) Insights(ctx context.Context, path string) {
	if h.llm == nil {
		ui.PrintError(llm.ErrNoAPIKey.Error())
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		ui.PrintError("Не удалось прочитать файл: " + err.Error())
		return
	}

	report, err := loganalyzer.Analyze(string(data))
	if err != nil {
		ui.PrintError(err.Error())
		return
	}

	fmt.Println(ui.ColorGray + "Запрашиваю инсайты у модели..." + ui.ColorReset)
	insights, err := h.llm.LogInsights(ctx, loganalyzer.FormatReport(report), string(data))
	if err != nil {
		h.log.Error("Ошибка запроса инсайтов", zap.Error(err))
		ui.PrintError(err.Error())
		return
	}

	ui.PrintSection(ui.IconBulb + " Инсайты")
	fmt.Println(insights)
}

func (h *LogsHandler) analyzeFile(path string) (*loganalyzer.Report, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		ui.PrintError("Не удалось прочитать файл: " + err.Error())
		return nil, false
	}

	report, err := loganalyzer.Analyze(string(data))
	if err != nil {
		ui.PrintError(err.Error())
		return nil, false
	}
	return report, true
}
