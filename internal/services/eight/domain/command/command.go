// Package command maps chat-style command text onto puzzle actions.
package command

import (
	"regexp"
	"strings"

	"github.com/nicklatkovich/ktane-eight/internal/services/eight/domain/puzzle"
	"golang.org/x/text/cases"
)

// HelpMessage summarizes the accepted command forms.
const HelpMessage = "`submit 123` - submit digits by its indices | " +
	"`remove 123` - remove digits | " +
	"`skip` `submit` - press button with label \"SKIP\""

// Kind classifies a parsed command.
type Kind int

const (
	KindUnspecified Kind = iota
	KindPress
	KindSubmit
	KindRemove
)

func (k Kind) String() string {
	switch k {
	case KindPress:
		return "press"
	case KindSubmit:
		return "submit"
	case KindRemove:
		return "remove"
	default:
		return "unspecified"
	}
}

// Board answers whether a slot can still take part in the current round.
type Board interface {
	Available(index int) bool
}

// Command is the action set a command text resolves to: remove the listed
// slots (0-based, ascending) and, when Press is set, press the button last.
type Command struct {
	Kind   Kind
	Remove []int
	Press  bool
}

var (
	submitPattern = regexp.MustCompile(`^submit +([1-8]+)$`)
	removePattern = regexp.MustCompile(`^remove +([1-8]+)$`)
)

// Parse resolves text against the board. It reports false when the text is
// not a command or a submit names a slot that is already gone.
func Parse(text string, board Board) (Command, bool) {
	text = strings.TrimSpace(cases.Fold().String(text))
	if text == "skip" || text == "submit" {
		return Command{Kind: KindPress, Press: true}, true
	}
	if m := submitPattern.FindStringSubmatch(text); m != nil {
		keep := indices(m[1])
		for index := range keep {
			if !board.Available(index) {
				return Command{}, false
			}
		}
		cmd := Command{Kind: KindSubmit, Press: true}
		for index := 0; index < puzzle.SlotCount; index++ {
			if _, ok := keep[index]; !ok && board.Available(index) {
				cmd.Remove = append(cmd.Remove, index)
			}
		}
		return cmd, true
	}
	if m := removePattern.FindStringSubmatch(text); m != nil {
		picked := indices(m[1])
		cmd := Command{Kind: KindRemove}
		for index := 0; index < puzzle.SlotCount; index++ {
			if _, ok := picked[index]; ok && board.Available(index) {
				cmd.Remove = append(cmd.Remove, index)
			}
		}
		return cmd, true
	}
	return Command{}, false
}

func indices(digits string) map[int]struct{} {
	out := make(map[int]struct{}, len(digits))
	for _, r := range digits {
		out[int(r-'1')] = struct{}{}
	}
	return out
}

// Actor performs slot actions; *puzzle.Engine satisfies it.
type Actor interface {
	Remove(index int) bool
	Submit() puzzle.Outcome
}

// Apply performs the command's removals in order, then the press. The
// outcome is OutcomeUnspecified when the command does not press.
func Apply(cmd Command, actor Actor) puzzle.Outcome {
	for _, index := range cmd.Remove {
		actor.Remove(index)
	}
	if !cmd.Press {
		return puzzle.OutcomeUnspecified
	}
	return actor.Submit()
}
