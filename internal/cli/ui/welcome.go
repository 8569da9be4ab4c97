package ui

import "fmt"

// PrintWelcome выводит приветствие
func PrintWelcome() {
	fmt.Println(ColorBold + IconTarget + " qakit v0.1.0" + ColorReset)
	fmt.Println(ColorGray + "Набор QA-инструментов: селекторы, тестовые данные, конвертация, сравнение скриншотов, анализ логов" + ColorReset)
	fmt.Println()
	PrintHelp()
	fmt.Println(ColorGray + "⬆️ ⬇️" + ColorReset + " Используйте стрелки для навигации по истории команд")
	fmt.Println()
}

// PrintHelp выводит список доступных команд
func PrintHelp() {
	fmt.Println(ColorYellow + IconList + " Доступные команды:" + ColorReset)
	fmt.Println("  " + ColorGreen + "selectors" + ColorReset + " <файл>            - Селекторы по HTML-файлу")
	fmt.Println("  " + ColorGreen + "selectors-url" + ColorReset + " <url>        - Селекторы по живой странице")
	fmt.Println("  " + ColorGreen + "gen" + ColorReset + " <n> <поля> [out.csv]   - Тестовые данные (поля через запятую)")
	fmt.Println("  " + ColorGreen + "fields" + ColorReset + "                     - Список поддерживаемых полей")
	fmt.Println("  " + ColorGreen + "json2csv" + ColorReset + " <in> [out]        - JSON → CSV")
	fmt.Println("  " + ColorGreen + "csv2json" + ColorReset + " <in> [out]        - CSV → JSON")
	fmt.Println("  " + ColorGreen + "json2xlsx" + ColorReset + " <in> <out>       - JSON → XLSX")
	fmt.Println("  " + ColorGreen + "imgdiff" + ColorReset + " <a> <b> [diff.png] - Сравнить два PNG")
	fmt.Println("  " + ColorGreen + "logs" + ColorReset + " <файл>                - Анализ лога")
	fmt.Println("  " + ColorGreen + "insights" + ColorReset + " <файл>            - AI-разбор лога")
	fmt.Println("  " + ColorGreen + "clear" + ColorReset + "                      - Очистить экран")
	fmt.Println("  " + ColorGreen + "exit" + ColorReset + "                       - Выход")
	fmt.Println()
}
