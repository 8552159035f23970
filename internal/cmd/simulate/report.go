package simulate

import (
	"io"
	"sort"
	"strconv"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/louisbranch/boardwalk/internal/services/game/domain/player"
	"github.com/louisbranch/boardwalk/internal/services/game/session"
)

// report prints per-game standings and a closing win tally.
type report struct {
	out     io.Writer
	printer *message.Printer
	games   int
	wins    map[player.ID]int
	order   []player.ID
}

func newReport(out io.Writer) *report {
	return &report{
		out:     out,
		printer: message.NewPrinter(language.English),
		wins:    make(map[player.ID]int),
	}
}

func (r *report) Game(result session.Result) error {
	r.games++
	winner := string(result.Winner)
	if winner == "" {
		winner = "nobody"
	} else {
		r.wins[result.Winner]++
	}
	// Seeds print without digit grouping.
	if _, err := r.printer.Fprintf(r.out, "game %s seed %s: %d turns, winner %s\n",
		result.GameID, strconv.FormatInt(result.Seed, 10), result.Turns, winner); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, st := range result.Standings {
		if !r.seen(st.Player) {
			r.order = append(r.order, st.Player)
		}
		if _, err := r.printer.Fprintf(tw, "%d\t%s\t%s\t%d\t%d properties\t\n",
			st.Rank, st.Name, st.Status, st.Balance, st.Properties); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func (r *report) seen(id player.ID) bool {
	for _, other := range r.order {
		if other == id {
			return true
		}
	}
	return false
}

// Summary prints wins per player, most wins first.
func (r *report) Summary() error {
	if r.games < 2 {
		return nil
	}
	players := append([]player.ID(nil), r.order...)
	sort.SliceStable(players, func(i, j int) bool { return r.wins[players[i]] > r.wins[players[j]] })
	if _, err := r.printer.Fprintf(r.out, "\n%d games\n", r.games); err != nil {
		return err
	}
	for _, pid := range players {
		if _, err := r.printer.Fprintf(r.out, "%s won %d\n", pid, r.wins[pid]); err != nil {
			return err
		}
	}
	return nil
}
