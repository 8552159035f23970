package player

import (
	"strings"

	apperrors "github.com/louisbranch/boardwalk/internal/platform/errors"
)

type seat struct {
	name     string
	position int
	status   Status
}

// Roster tracks seat order, positions and statuses.
type Roster struct {
	order []ID
	seats map[ID]*seat
}

// NewRoster returns an empty roster.
func NewRoster() *Roster {
	return &Roster{seats: make(map[ID]*seat)}
}

// Add seats a player at position 0, in game.
func (r *Roster) Add(id ID, name string) error {
	if strings.TrimSpace(string(id)) == "" {
		return apperrors.New(apperrors.CodeUnknownPlayer, "player id is required")
	}
	if _, ok := r.seats[id]; ok {
		return apperrors.Derive(ErrDuplicatePlayer, map[string]string{"player": string(id)})
	}
	if strings.TrimSpace(name) == "" {
		name = string(id)
	}
	r.order = append(r.order, id)
	r.seats[id] = &seat{name: name, status: StatusInGame}
	return nil
}

// IDs returns every seat in seat order.
func (r *Roster) IDs() []ID {
	return append([]ID(nil), r.order...)
}

// Active returns the seats whose status is not final, in seat order.
func (r *Roster) Active() []ID {
	active := make([]ID, 0, len(r.order))
	for _, id := range r.order {
		if !r.seats[id].status.Final() {
			active = append(active, id)
		}
	}
	return active
}

// Has reports whether id is seated.
func (r *Roster) Has(id ID) bool {
	_, ok := r.seats[id]
	return ok
}

// Name returns the display name of a seat.
func (r *Roster) Name(id ID) (string, error) {
	s, ok := r.seats[id]
	if !ok {
		return "", unknown(id)
	}
	return s.name, nil
}

// Position returns the board position of a seat.
func (r *Roster) Position(id ID) (int, error) {
	s, ok := r.seats[id]
	if !ok {
		return 0, unknown(id)
	}
	return s.position, nil
}

// SetPosition moves a seat to pos.
func (r *Roster) SetPosition(id ID, pos int) error {
	s, ok := r.seats[id]
	if !ok {
		return unknown(id)
	}
	s.position = pos
	return nil
}

// Status returns the standing of a seat.
func (r *Roster) Status(id ID) (Status, error) {
	s, ok := r.seats[id]
	if !ok {
		return 0, unknown(id)
	}
	return s.status, nil
}

// SetStatus updates the standing of a seat.
func (r *Roster) SetStatus(id ID, status Status) error {
	s, ok := r.seats[id]
	if !ok {
		return unknown(id)
	}
	s.status = status
	return nil
}

// NextActive returns the first non-final seat after current, wrapping around
// the table. It reports false when no other seat is still playing.
func (r *Roster) NextActive(current ID) (ID, bool) {
	start := -1
	for i, id := range r.order {
		if id == current {
			start = i
			break
		}
	}
	n := len(r.order)
	for step := 1; step < n+1; step++ {
		idx := (start + step) % n
		if idx < 0 {
			idx += n
		}
		id := r.order[idx]
		if id == current {
			continue
		}
		if !r.seats[id].status.Final() {
			return id, true
		}
	}
	return "", false
}
