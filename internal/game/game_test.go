package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cotulenh/core/internal/board"
)

func TestStandardMoveAutoCommitsAndUndo(t *testing.T) {
	g, err := NewGame("11/11/11/11/11/11/11/11/11/11/4I6/4C6 r - - 0 1")
	require.NoError(t, err)
	before := g.FEN()

	sans := g.Moves(MovesOptions{Square: board.NewSquare(4, 1), Kind: board.NoPieceKind})
	require.NotEmpty(t, sans)

	result, err := g.Move(sans[0])
	require.NoError(t, err)
	require.True(t, result.Completed)
	require.Equal(t, board.Blue, g.Turn())
	require.Len(t, g.History(), 1)

	require.NoError(t, g.Undo())
	require.Equal(t, before, g.FEN())
	require.Equal(t, board.Red, g.Turn())
	require.Empty(t, g.History())
}

func TestDeployMoveStaysOpenUntilCommitted(t *testing.T) {
	g, err := NewGame("11/11/11/11/11/11/11/11/11/4(TC)6/11/11 r - - 0 1")
	require.NoError(t, err)

	origin := board.NewSquare(4, 2)
	deployMove := board.Move{From: origin, To: board.NewSquare(4, 3), Kind: board.Tank, Color: board.Red, Flag: board.FlagNormal, IsDeploy: true}

	result, err := g.Move(deployMove)
	require.NoError(t, err)
	require.False(t, result.Completed, "a deploy sub-move never completes the turn by itself")
	require.Equal(t, board.Red, g.Turn(), "turn has not flipped while the session is open")
	require.False(t, g.IsGameOver(), "game-over is always false while a deploy session is open")

	_, isDeploy, ok := g.GetDeployState()
	require.True(t, ok)
	require.True(t, isDeploy)

	require.True(t, g.CanCommitSession())
	final, err := g.CommitSession()
	require.NoError(t, err)
	require.True(t, final.Completed)
	require.Equal(t, board.Blue, g.Turn())
	require.Len(t, g.History(), 1)
}

func TestReplayHistoryReproducesCurrentFEN(t *testing.T) {
	g, err := NewGame("11/11/11/11/11/11/11/11/11/11/4I6/4C6 r - - 0 1")
	require.NoError(t, err)

	sans := g.Moves(MovesOptions{Square: board.NewSquare(4, 1), Kind: board.NoPieceKind})
	require.NotEmpty(t, sans)
	_, err = g.Move(sans[0])
	require.NoError(t, err)

	replayed, err := g.ReplayFromStart()
	require.NoError(t, err)
	require.Equal(t, g.FEN(), replayed)
}

// TestRecombineRescuesExposedCommander reproduces spec.md §8's scenario
// S4: a deploy sub-move leaves the commander behind alone and exposed,
// and recombine pulls it onto the already-deployed piece's square to
// escape check before the session commits.
func TestRecombineRescuesExposedCommander(t *testing.T) {
	g, err := NewGame("11/11/11/11/11/11/11/11/4t6/11/4(TC)6/11 r - - 0 1")
	require.NoError(t, err)
	require.True(t, g.IsCheck(), "the commander starts attacked by the blue tank on the same file")

	origin := board.NewSquare(4, 1)
	deployTarget := board.NewSquare(6, 1)
	deployMove := board.Move{From: origin, To: deployTarget, Kind: board.Tank, Color: board.Red, Flag: board.FlagNormal, IsDeploy: true}

	result, err := g.Move(deployMove)
	require.NoError(t, err)
	require.False(t, result.Completed, "a deploy sub-move never completes the turn by itself")
	require.True(t, g.IsCheck(), "the commander, left behind alone at the origin, is still exposed")
	require.False(t, g.CanCommitSession(), "committing now would leave the commander attacked")

	require.NoError(t, g.RecombineSession(deployTarget, board.Commander))

	require.True(t, g.CanCommitSession(), "recombine should have carried the commander to safety")
	final, err := g.CommitSession()
	require.NoError(t, err)
	require.True(t, final.Completed)
	require.Equal(t, board.Blue, g.Turn())
	require.Len(t, g.History(), 1)
}

func TestCommanderCaptureReportedAsGameOver(t *testing.T) {
	g, err := NewGame("4c6/11/11/11/11/11/11/11/11/11/4C6/11 r - - 0 1")
	require.NoError(t, err)
	require.False(t, g.IsCommanderCaptured())

	g2, err := NewGame("11/11/11/11/11/11/11/11/11/11/4C6/11 r - - 0 1")
	require.NoError(t, err)
	require.True(t, g2.IsCommanderCaptured())
	require.True(t, g2.IsGameOver())
}
