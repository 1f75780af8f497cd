package main

import (
	"bufio"
	"os"
	"strings"

	"golang.org/x/term"
)

var stdin = bufio.NewReader(os.Stdin)

// readPassword lê sem eco no terminal; em pipes lê uma linha. Substituível nos testes.
var readPassword = func(fd int) ([]byte, error) {
	if term.IsTerminal(fd) {
		return term.ReadPassword(fd)
	}

	line, err := stdin.ReadString('\n')
	if err != nil && line == "" {
		return nil, err
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}
