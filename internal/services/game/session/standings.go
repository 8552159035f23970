package session

import (
	"sort"

	"github.com/louisbranch/boardwalk/internal/services/game/domain/player"
)

// Standing is one player's place at the end of a game.
type Standing struct {
	Rank       int
	Player     player.ID
	Name       string
	Status     player.Status
	Balance    int
	Properties int
}

// Result is the outcome of a game.
type Result struct {
	GameID string
	Seed   int64
	Turns  int
	// Winner is empty when nobody is left standing.
	Winner    player.ID
	Halted    bool
	Standings []Standing
}

// Result ranks the table as it stands. Players still in the game come first
// by balance, then bankrupt players; seat order breaks ties.
func (s *Session) Result() Result {
	ids := s.roster.IDs()
	standings := make([]Standing, 0, len(ids))
	for _, pid := range ids {
		name, _ := s.roster.Name(pid)
		status, _ := s.roster.Status(pid)
		balance, _ := s.bank.Balance(pid)
		standings = append(standings, Standing{
			Player:     pid,
			Name:       name,
			Status:     status,
			Balance:    balance,
			Properties: len(s.props.PropertiesOf(pid)),
		})
	}
	sort.SliceStable(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.Status.Final() != b.Status.Final() {
			return !a.Status.Final()
		}
		return a.Balance > b.Balance
	})

	result := Result{
		GameID: s.id,
		Seed:   s.Seed(),
		Turns:  s.turns,
		Halted: s.halted,
	}
	for i := range standings {
		standings[i].Rank = i + 1
	}
	if len(standings) > 0 && !standings[0].Status.Final() {
		result.Winner = standings[0].Player
	}
	result.Standings = standings
	return result
}
