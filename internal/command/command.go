package command

import (
	"github.com/cotulenh/core/internal/board"
)

// Command is an ordered, undoable list of Actions built for one move
// (spec.md §4.6). Execution iterates in order; if an action fails,
// already-executed siblings are undone before the error is returned, so a
// Command never partially mutates the board.
type Command struct {
	Move    board.Move
	actions []*Action
	ran     int // number of actions successfully executed, for partial rollback
}

// Execute runs every action in order. On failure it undoes whatever ran
// so far and returns the error.
func (c *Command) Execute(b *board.Board) error {
	for i, a := range c.actions {
		if err := a.Execute(b); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = c.actions[j].Undo(b)
			}
			c.ran = 0
			return err
		}
		c.ran = i + 1
	}
	return nil
}

// Undo reverses every executed action in reverse order.
func (c *Command) Undo(b *board.Board) error {
	for i := c.ran - 1; i >= 0; i-- {
		if err := c.actions[i].Undo(b); err != nil {
			return err
		}
	}
	c.ran = 0
	return nil
}

// AppendPostEffect executes a post-move LazyAction (heroic promotion,
// Last Guard promotion) immediately, then folds it into this command's
// action list so a subsequent Undo reverses it along with the main
// actions, in reverse order (spec.md §4.6). Call this only after the
// command's own Execute has already run.
func (c *Command) AppendPostEffect(b *board.Board, a *Action) error {
	if err := a.Execute(b); err != nil {
		return err
	}
	c.actions = append(c.actions, a)
	c.ran++
	return nil
}

func newCommand(move board.Move, actions ...*Action) *Command {
	return &Command{Move: move, actions: actions}
}

// BuildMoveCommand dispatches on move.Flag to produce the Command kind
// described in spec.md §4.6's table.
func BuildMoveCommand(b *board.Board, move board.Move) *Command {
	switch move.Flag {
	case board.FlagCapture:
		return newCommand(move,
			RemovePiece(move.From, selectorFor(move)),
			RemovePiece(move.To, board.All()),
			PlacePiece(move.To, unitPiece(b, move)),
		)
	case board.FlagCombination:
		return newCommand(move,
			RemovePiece(move.From, selectorFor(move)),
			PlacePiece(move.To, unitPiece(b, move)),
		)
	case board.FlagStayCapture:
		return newCommand(move,
			RemovePiece(move.To, board.All()),
		)
	case board.FlagSuicideCapture:
		return newCommand(move,
			RemovePiece(move.From, selectorFor(move)),
			RemovePiece(move.To, board.All()),
		)
	default: // FlagNormal
		return newCommand(move,
			RemovePiece(move.From, selectorFor(move)),
			PlacePiece(move.To, unitPiece(b, move)),
		)
	}
}

// selectorFor picks whether the Remove(from) action should take the
// entire occupant (non-deploy move) or just the moving unit's kind out of
// a residual stack (deploy sub-move).
func selectorFor(move board.Move) board.PieceOrAll {
	if move.IsDeploy {
		return board.Specific(move.Kind)
	}
	return board.All()
}

// unitPiece snapshots the piece being relocated before the Remove(from)
// action runs, so Place(to) has the right value (including heroic flag
// and, for a whole-stack move, its passengers).
func unitPiece(b *board.Board, move board.Move) board.Piece {
	occupant := b.Get(move.From)
	if !move.IsDeploy {
		return occupant
	}
	for _, u := range occupant.Flatten() {
		if u.Kind == move.Kind {
			return board.Piece{Kind: u.Kind, Color: u.Color, Heroic: u.Heroic}
		}
	}
	return occupant
}

// DeploySequenceCommand wraps the ordered list of per-unit commands
// produced by one deploy turn. Undo walks them in reverse (spec.md §4.6's
// DeployMoveSequenceCommand).
type DeploySequenceCommand struct {
	Commands []*Command
	ran      int
}

// NewDeploySequence wraps a list of sub-commands that have already been
// executed individually (one at a time, as a deploy session accumulates
// them) so a later Undo reverses all of them in order without re-running
// Execute on work already done.
func NewDeploySequence(cmds []*Command) *DeploySequenceCommand {
	return &DeploySequenceCommand{Commands: cmds, ran: len(cmds)}
}

// Execute runs each sub-command in order.
func (d *DeploySequenceCommand) Execute(b *board.Board) error {
	for i, c := range d.Commands {
		if err := c.Execute(b); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = d.Commands[j].Undo(b)
			}
			d.ran = 0
			return err
		}
		d.ran = i + 1
	}
	return nil
}

// Undo reverses each executed sub-command in reverse order.
func (d *DeploySequenceCommand) Undo(b *board.Board) error {
	for i := d.ran - 1; i >= 0; i-- {
		if err := d.Commands[i].Undo(b); err != nil {
			return err
		}
	}
	d.ran = 0
	return nil
}
