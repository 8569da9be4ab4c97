// Package cli — интерактивная консоль инструментов qakit.
package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"

	"qakit/internal/browser"
	"qakit/internal/cli/commands"
	"qakit/internal/cli/ui"
	"qakit/internal/llm"
	"qakit/internal/logger"

	"github.com/chzyer/readline"
)

type CLI struct {
	log *logger.Zap
	rl  *readline.Instance

	selectorsHandler *commands.SelectorsHandler
	dataHandler      *commands.DataHandler
	convertHandler   *commands.ConvertHandler
	imageDiffHandler *commands.ImageDiffHandler
	logsHandler      *commands.LogsHandler
}

func New(log *logger.Zap, llmClient *llm.Client, fetcher *browser.Fetcher) *CLI {
	cli := &CLI{
		log:              log,
		selectorsHandler: commands.NewSelectorsHandler(fetcher),
		dataHandler:      commands.NewDataHandler(),
		convertHandler:   commands.NewConvertHandler(),
		imageDiffHandler: commands.NewImageDiffHandler(),
		logsHandler:      commands.NewLogsHandler(llmClient, log.Logger),
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     ".qakit-history",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		log.Warn("Не удалось инициализировать readline, будет использован fallback режим")
	} else {
		cli.rl = rl
	}

	return cli
}

func (c *CLI) readLine() (string, error) {
	if c.rl != nil {
		return c.rl.Readline()
	}
	// Fallback для работы без readline
	reader := bufio.NewReader(os.Stdin)
	println(ui.ColorCyan + "> " + ui.ColorReset)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (c *CLI) closeReadline() {
	if c.rl != nil {
		c.rl.Close()
	}
}

func (c *CLI) Run(ctx context.Context) {
	ui.PrintWelcome()
	defer c.closeReadline()

	for {
		select {
		case <-ctx.Done():
			println("\n" + ui.ColorCyan + ui.IconWave + " Получен сигнал завершения..." + ui.ColorReset)
			return
		default:
		}

		line, err := c.readLine()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		c.handleCommand(ctx, line)
	}
}

func (c *CLI) handleCommand(ctx context.Context, line string) {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "exit":
		println(ui.ColorCyan + ui.IconWave + " До свидания!" + ui.ColorReset)
		os.Exit(0)

	case "clear":
		ui.ClearScreen()

	case "selectors":
		if len(args) < 1 {
			ui.PrintError("Использование: selectors <файл>")
			return
		}
		c.selectorsHandler.FromFile(args[0])

	case "selectors-url":
		if len(args) < 1 {
			ui.PrintError("Использование: selectors-url <url>")
			return
		}
		c.selectorsHandler.FromURL(ctx, args[0])

	case "gen":
		c.dataHandler.Generate(args)

	case "fields":
		c.dataHandler.Fields()

	case "json2csv":
		c.convertHandler.JSONToCSV(args)

	case "csv2json":
		c.convertHandler.CSVToJSON(args)

	case "json2xlsx":
		c.convertHandler.JSONToXLSX(args)

	case "imgdiff":
		c.imageDiffHandler.Compare(args)

	case "logs":
		if len(args) < 1 {
			ui.PrintError("Использование: logs <файл>")
			return
		}
		c.logsHandler.Analyze(args[0])

	case "insights":
		if len(args) < 1 {
			ui.PrintError("Использование: insights <файл>")
			return
		}
		c.logsHandler.Insights(ctx, args[0])

	default:
		ui.PrintHelp()
	}
}
