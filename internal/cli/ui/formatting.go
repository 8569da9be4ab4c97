package ui

import "fmt"

// PrintError выводит сообщение об ошибке красным.
func PrintError(msg string) {
	fmt.Println(ColorRed + IconCross + " " + msg + ColorReset)
}

// PrintSuccess выводит сообщение об успехе зелёным.
func PrintSuccess(msg string) {
	fmt.Println(ColorGreen + IconCheckmark + " " + msg + ColorReset)
}

// PrintSection выводит заголовок секции вывода.
func PrintSection(title string) {
	fmt.Println("\n" + ColorBold + "=== " + title + " ===" + ColorReset)
}

// ClearScreen очищает терминал
func ClearScreen() {
	fmt.Print("\033[H\033[2J")
}
