package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/havrydotdev/treelox/config"
	"github.com/havrydotdev/treelox/scanner"
	"github.com/havrydotdev/treelox/token"
)

type prompter interface {
	Prompt(prompt string) (string, error)
}

func repl(cfg *config.Config, stdout, stderr io.Writer) int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if cfg.History != "" {
		if f, err := os.Open(cfg.History); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}

		defer func() {
			f, err := os.Create(cfg.History)
			if err != nil {
				log.Printf("save history: %v", err)
				return
			}

			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}()
	}

	s := newSession(stdout, stderr, cfg)
	for {
		src, ok := readEntry(ln, cfg.Prompt, cfg.Continuation)
		if !ok {
			fmt.Fprintln(stdout)
			return 0
		}

		cmd := strings.TrimSpace(src)
		switch {
		case cmd == "":
			continue
		case cmd == ":quit":
			return 0
		case strings.HasPrefix(cmd, ":"):
			fmt.Fprintln(stdout, "unknown command. Type :quit to exit.")
			continue
		}

		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		s.interactive(src)
	}
}

// readEntry reads lines until the brackets they contain are balanced. It
// reports false once input is exhausted.
func readEntry(p prompter, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		current := prompt
		if b.Len() > 0 {
			current = cont
		}

		line, err := p.Prompt(current)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			log.Printf("read input: %v", err)
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if !incomplete(b.String()) {
			return b.String(), true
		}
	}
}

// incomplete reports whether src opens more parentheses or braces than it
// closes.
func incomplete(src string) bool {
	tokens, _ := scanner.New(src).Scan()

	depth := 0
	for _, tok := range tokens {
		switch tok.Kind {
		case token.LeftParen, token.LeftBrace:
			depth++
		case token.RightParen, token.RightBrace:
			depth--
		}
	}

	return depth > 0
}
