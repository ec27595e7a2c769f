// Package console runs a Diplomacy+ session as a line-oriented prompt on a
// single shared terminal.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"

	"github.com/freeeve/diplomacy-plus/pkg/diplomacy"
)

const (
	Prompt = "(Diplomacy+) "
	Intro  = "Welcome to Diplomacy+.\n" +
		"Type help or ? to list commands.\n" +
		"Available commands:\n" +
		"  move <position> <unit> - Place a unit on the board.\n" +
		"  show_board - Display the current state of the game board.\n" +
		"  show_resources - Display the current state of your resources.\n" +
		"  quit - Exit the game.\n"
)

// ErrNoInput means the input ended before every player was named.
var ErrNoInput = errors.New("console: input closed during setup")

const (
	ansiReset  = "\033[0m"
	ansiYellow = "\033[93m"
	ansiBlue   = "\033[94m"
	ansiGrey   = "\033[90m"
)

var commandHelp = map[string]string{
	"move":           "Place a unit. Usage: move <position> <unit>",
	"show_board":     "Show the game board.",
	"show_resources": "Show the current player's resources.",
	"quit":           "Quit the game.",
	"help":           "List available commands with \"help\" or detailed help with \"help cmd\".",
}

// Console reads commands from in and writes game output to out.
type Console struct {
	in     *bufio.Scanner
	out    io.Writer
	color  bool
	engine *diplomacy.Engine

	readOnce sync.Once
	lines    chan string
}

// New creates a Console. Colour is off until SetColor enables it.
func New(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewScanner(in), out: out}
}

// SetColor toggles ANSI colouring of show_board.
func (c *Console) SetColor(on bool) {
	c.color = on
}

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Engine returns the engine created by Setup, or nil before it.
func (c *Console) Engine() *diplomacy.Engine {
	return c.engine
}

// readLine returns the next input line. The bool is false at end of input or
// when ctx is done, and the error then carries the read error or ctx.Err().
func (c *Console) readLine(ctx context.Context) (string, bool, error) {
	c.readOnce.Do(func() {
		c.lines = make(chan string)
		go c.scan()
	})
	select {
	case <-ctx.Done():
		return "", false, ctx.Err()
	case line, ok := <-c.lines:
		if !ok {
			return "", false, c.in.Err()
		}
		return line, true, nil
	}
}

// scan feeds lines to readLine. After cancellation it stays blocked on
// input until the process exits.
func (c *Console) scan() {
	defer close(c.lines)
	for c.in.Scan() {
		c.lines <- c.in.Text()
	}
}

// Setup asks for players names, then builds the game on cat. Reusing a
// name replaces that player's record but keeps their first seat.
func (c *Console) Setup(ctx context.Context, cat *diplomacy.Catalog, players int) error {
	names := make([]string, 0, players)
	for i := range players {
		fmt.Fprintf(c.out, "Enter name for player %d: ", i+1)
		line, ok, err := c.readLine(ctx)
		if !ok {
			fmt.Fprintln(c.out)
			if ctx.Err() != nil {
				return err
			}
			if err != nil {
				return fmt.Errorf("read player name: %w", err)
			}
			return ErrNoInput
		}
		name := strings.TrimSpace(line)
		names = append(names, name)
		fmt.Fprintf(c.out, "%s has been added to the game!\n", name)
	}

	gs, err := diplomacy.NewGameState(cat, names)
	if err != nil {
		return err
	}
	c.engine = diplomacy.NewEngine(gs)
	log.Debug().Strs("players", gs.Roster.Names()).Int("territories", gs.Board.Len()).Msg("Game set up")

	fmt.Fprintf(c.out, "\n%s will start the game!\n", gs.CurrentPlayer)
	return nil
}

// Run prints the intro and processes commands until quit, end of input or
// ctx is done. Cancellation returns ctx.Err().
func (c *Console) Run(ctx context.Context) error {
	if c.engine == nil {
		return errors.New("console: Run called before Setup")
	}
	fmt.Fprint(c.out, Intro)
	for {
		fmt.Fprint(c.out, Prompt)
		line, ok, err := c.readLine(ctx)
		if !ok {
			fmt.Fprintln(c.out)
			return err
		}
		if c.Exec(ctx, line) {
			return nil
		}
	}
}

// Exec runs one command line and reports whether the session should end.
func (c *Console) Exec(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if strings.HasPrefix(line, "?") {
		line = "help " + line[1:]
	}
	cmd := strings.Fields(line)[0]
	rest := strings.TrimSpace(line[len(cmd):])

	switch cmd {
	case "move":
		c.move(ctx, strings.Fields(rest))
	case "show_board":
		c.showBoard()
	case "show_resources":
		c.showResources()
	case "help":
		c.help(strings.TrimSpace(rest))
	case "quit", "EOF":
		fmt.Fprintln(c.out, "Thanks for playing!")
		return true
	default:
		fmt.Fprintf(c.out, "*** Unknown syntax: %s\n", line)
	}
	return false
}

func (c *Console) move(ctx context.Context, args []string) {
	p, err := c.engine.Move(ctx, args)
	if err != nil {
		fmt.Fprintln(c.out, rejection(err))
		return
	}
	log.Debug().Str("player", p.Player).Str("unit", p.Unit.String()).Str("position", p.Position).Msg("Unit placed")
	fmt.Fprintf(c.out, "%s moved %s to %s\n", p.Player, p.Unit, p.Position)
}

// rejection renders a move error the way the prompt has always worded it.
func rejection(err error) string {
	var me *diplomacy.MoveError
	if !errors.As(err, &me) {
		return err.Error()
	}
	switch {
	case errors.Is(err, diplomacy.ErrUsage):
		return "Invalid number of arguments. Usage: move <position> <unit>"
	case errors.Is(err, diplomacy.ErrInvalidPosition):
		return "Invalid position. Please choose a valid board position."
	case errors.Is(err, diplomacy.ErrInvalidUnitType):
		return "Invalid unit type. Please choose either 'army' or 'fleet'."
	case me.Reason == diplomacy.ArmyRequiresLand:
		return "Armies can only move to land territories."
	case me.Reason == diplomacy.FleetRequiresWater:
		return "Fleets can only move to sea territories or coastal land territories."
	default:
		return err.Error()
	}
}

func (c *Console) showBoard() {
	c.engine.State().Board.Each(func(name string, cell *diplomacy.Cell) {
		line := name + ": " + describeCell(cell)
		if c.color {
			line = kindColor(cell.Kind) + line + ansiReset
		}
		fmt.Fprintln(c.out, line)
	})
}

func kindColor(k diplomacy.TerritoryKind) string {
	switch k {
	case diplomacy.Land:
		return ansiYellow
	case diplomacy.Sea:
		return ansiBlue
	case diplomacy.Unmovable:
		return ansiGrey
	default:
		return ansiReset
	}
}

func describeCell(cell *diplomacy.Cell) string {
	units := make([]string, len(cell.Units))
	for i, u := range cell.Units {
		units[i] = fmt.Sprintf("(%s, %s)", u.Owner, u.Kind)
	}
	owner := cell.Owner
	if owner == "" {
		owner = "none"
	}
	return fmt.Sprintf("type=%s supply_center=%t coastal=%t neighbors=[%s] units=[%s] owner=%s buildings=[%s]",
		cell.Kind, cell.SupplyCenter, cell.Coastal,
		strings.Join(cell.Neighbors, ", "),
		strings.Join(units, ", "),
		owner,
		strings.Join(cell.Buildings, ", "))
}

func (c *Console) showResources() {
	r := c.engine.CurrentResources()
	fmt.Fprintf(c.out, "%s's resources: food=%d energy=%d material=%d hearts=%d\n",
		c.engine.CurrentPlayer(), r.Food, r.Energy, r.Material, r.Hearts)
}

func (c *Console) help(topic string) {
	if topic != "" {
		if text, ok := commandHelp[topic]; ok {
			fmt.Fprintln(c.out, text)
		} else {
			fmt.Fprintf(c.out, "*** No help on %s\n", topic)
		}
		return
	}
	names := make([]string, 0, len(commandHelp))
	for name := range commandHelp {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintln(c.out, "Documented commands (type help <topic>):")
	fmt.Fprintln(c.out, strings.Join(names, "  "))
}
