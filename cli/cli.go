// Package cli provides the plain line-oriented front end: a REPL over
// engine.Step with ASCII maps and the shared meta-commands.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nathoo/dragonsrealm/engine"
	"github.com/nathoo/dragonsrealm/engine/parser"
	"github.com/nathoo/dragonsrealm/meta"
	"github.com/nathoo/dragonsrealm/render"
	"github.com/nathoo/dragonsrealm/types"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine    *engine.Engine
	Meta      *meta.Handler
	In        io.Reader
	Out       io.Writer
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI wired to the given engine.
func New(eng *engine.Engine) *CLI {
	return &CLI{
		Engine: eng,
		Meta:   &meta.Handler{Engine: eng},
		In:     os.Stdin,
		Out:    os.Stdout,
	}
}

// Run shows the title, the welcome chat and the starting room, then loops:
// prompt, input, dispatch, output. It returns on EOF or /quit.
func (c *CLI) Run(ctx context.Context) {
	game := c.Engine.Defs().Game
	c.printLine(fmt.Sprintf("%s v%s by %s", game.Title, game.Version, game.Author))
	c.printLine("")
	for _, m := range c.Engine.Messages() {
		c.printLine(fmt.Sprintf("%s: %s", m.PlayerName, m.Message))
	}
	c.look()

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		if meta.IsMeta(input) {
			reply := c.Meta.Run(ctx, input)
			for _, line := range reply.Lines {
				c.printSystem(line)
			}
			c.printTrace(reply.Result)
			if reply.Quit {
				return
			}
			continue
		}

		// "again" / "g" repeats the last game command.
		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		if parser.Parse(input).Verb == "look" {
			c.look()
			continue
		}
		result := c.Engine.Step(input)
		c.printResult(result)
		c.printTrace(result)
	}
}

// look prints the room description followed by the ASCII map and legend.
func (c *CLI) look() {
	c.printResult(c.Engine.Step("look"))
	m := render.Project(c.Engine.Snapshot())
	for _, line := range m.Lines() {
		c.printLine("  " + line)
	}
	if legend := m.Legend(); len(legend) > 0 {
		c.printLine("  " + strings.Join(legend, ", "))
	}
}

func (c *CLI) printTrace(result types.Result) {
	if !c.Meta.Trace {
		return
	}
	for _, line := range meta.Trace(result) {
		c.printSystem(line)
	}
}

func (c *CLI) printResult(result types.Result) {
	for _, line := range result.Output {
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
