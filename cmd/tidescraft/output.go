package main

import (
	"fmt"
	"os"
)

// ANSI severity labels used across check output.
const (
	labelError   = "\x1b[31mERROR\x1b[0m"
	labelWarning = "\x1b[33mWARNING\x1b[0m"
	labelOK      = "\x1b[32mOK\x1b[0m"
)

func printErrorLine(file string, line int, message string) {
	fmt.Fprintf(os.Stdout, "%s in %s:%d: %s\n", labelError, file, line, message)
}

func printWarningLine(file string, line int, message string) {
	fmt.Fprintf(os.Stdout, "%s in %s:%d: %s\n", labelWarning, file, line, message)
}
