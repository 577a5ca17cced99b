package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-shellwords"
	"github.com/pkg/errors"
)

const shellPrompt = "attendance> "

var errNestedShell = errors.New("already in the shell")

// shell reads commands line by line until exit, quit or the end of the input.
// Errors are printed and the loop goes on.
func (cli *commandLine) shell(args []string) error {
	if cli.inShell {
		return errNestedShell
	}
	cli.inShell = true
	defer func() { cli.inShell = false }()

	fmt.Fprintln(cli.out, `Type "help" for the list of commands, "exit" to quit.`)
	for {
		fmt.Fprint(cli.out, shellPrompt)
		line, err := cli.in.ReadString('\n')
		if err != nil && err != io.EOF {
			return errors.Wrap(err, "reading command")
		}
		if line == "" && err == io.EOF {
			fmt.Fprintln(cli.out)
			return nil
		}

		words, perr := shellwords.Parse(strings.TrimSpace(line))
		switch {
		case perr != nil:
			cli.printError(errors.Wrap(perr, "parsing command"))
		case len(words) == 0:
		case words[0] == "exit" || words[0] == "quit":
			return nil
		case words[0] == "help":
			cli.printUsage()
		default:
			if rerr := cli.run(append([]string{"admin"}, words...)); rerr != nil && rerr != errHelp {
				cli.printError(rerr)
			}
		}
		if err == io.EOF {
			return nil
		}
	}
}
