package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"unicode"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL drives. App satisfies it.
type execIface interface {
	List(ctx context.Context, args []string) error
	Select(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Set(ctx context.Context, args []string) error
	Unset(ctx context.Context, args []string) error
	Save(ctx context.Context, args []string) error
	Reload(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
	Dirty() bool
}

const helpText = `Commands:
  list [text]           list interviewees, optionally filtered by name or unit
  select <n>            pick the n-th interviewee of the last list
  show                  show the selected interviewee and draft answers
  set <q> <answer...>   set the answer to question q in the draft
  unset <q>             remove the answer to question q from the draft
  save                  write the draft answers to the sheet
  reload                re-read the sheet
  export                upload an encrypted snapshot of the sheet
  exit | quit           leave (type twice to discard unsaved answers)`

// runREPL reads commands from scanner and dispatches them to a until the
// user exits, the scanner is exhausted or ctx is cancelled. Command errors
// are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	warned := false
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("ik %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			printlnFn(helpText)
		case "l", "list":
			err = a.List(ctx, args)
		case "select":
			err = a.Select(ctx, args)
		case "show":
			err = a.Show(ctx, args)
		case "set":
			err = a.Set(ctx, setArgs(line))
		case "unset":
			err = a.Unset(ctx, args)
		case "save":
			err = a.Save(ctx, args)
		case "reload":
			err = a.Reload(ctx, args)
		case "export":
			err = a.Export(ctx, args)
		case "exit", "quit":
			if a.Dirty() && !warned {
				warned = true
				printlnFn("There are unsaved answers. Run save, or exit again to discard them.")
				continue
			}
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}
		warned = false

		if err != nil {
			printlnFn("error:", err)
		}
	}
}

// setArgs splits a set command line into the question key and the answer
// text. The answer is the raw remainder of the line, so its inner whitespace
// is kept.
func setArgs(line string) []string {
	_, rest := cutField(line)
	key, rest := cutField(rest)
	if key == "" {
		return nil
	}
	text := strings.TrimSuffix(strings.TrimLeftFunc(rest, unicode.IsSpace), "\r")
	if text == "" {
		return []string{key}
	}
	return []string{key, text}
}

func cutField(s string) (field, rest string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i:]
}
