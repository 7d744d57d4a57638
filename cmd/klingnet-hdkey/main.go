// klingnet-hdkey generates BIP-39 mnemonics and derives BIP-32 keys.
//
// Usage:
//
//	klingnet-hdkey [options] <command> [arguments]
//	klingnet-hdkey --help
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Klingon-tech/klingnet-hdkey/config"
	"github.com/Klingon-tech/klingnet-hdkey/internal/log"
	"golang.org/x/term"
)

const version = "0.1.0"

func main() {
	cfg, flags, err := config.Load(os.Args[1:])
	if err != nil {
		fatal("%v", err)
	}
	if flags.Help {
		config.PrintUsage(os.Stdout)
		return
	}
	if flags.Version {
		fmt.Printf("klingnet-hdkey version %s\n", version)
		return
	}

	if err := log.Init(cfg.Log.Level, cfg.Log.JSON, cfg.Log.File); err != nil {
		fatal("init logging: %v", err)
	}

	if len(flags.Args) == 0 {
		config.PrintUsage(os.Stderr)
		os.Exit(1)
	}

	a, err := newApp(cfg, os.Stdout, newStdinSecrets())
	if err != nil {
		fatal("%v", err)
	}
	if err := a.run(flags.Args[0], flags.Args[1:]); err != nil {
		fatal("%v", err)
	}
}

// secretReader supplies mnemonics and passphrases.
type secretReader interface {
	ReadSecret(prompt string) (string, error)
}

// stdinSecrets reads hidden input from a terminal, or lines from piped stdin.
type stdinSecrets struct {
	fd    int
	lines *bufio.Reader
}

func newStdinSecrets() *stdinSecrets {
	return &stdinSecrets{
		fd:    int(os.Stdin.Fd()),
		lines: bufio.NewReader(os.Stdin),
	}
}

func (s *stdinSecrets) ReadSecret(prompt string) (string, error) {
	if !term.IsTerminal(s.fd) {
		line, err := s.lines.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	fmt.Fprint(os.Stderr, prompt)
	secret, err := term.ReadPassword(s.fd)
	fmt.Fprintln(os.Stderr) // newline after hidden input
	if err != nil {
		return "", err
	}
	return string(secret), nil
}

// ── Error helper ────────────────────────────────────────────────────────

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
