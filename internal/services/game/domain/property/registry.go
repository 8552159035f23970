// Package property records who owns which property land.
package property

import (
	"sort"
	"strconv"

	"go.uber.org/zap"

	apperrors "github.com/louisbranch/boardwalk/internal/platform/errors"
	"github.com/louisbranch/boardwalk/internal/platform/logging"
	"github.com/louisbranch/boardwalk/internal/services/game/domain/player"
)

// ErrNotAProperty indicates a land that cannot be owned.
var ErrNotAProperty = apperrors.New(apperrors.CodeNotAProperty, "land is not a property")

// Registry maps property lands to at most one owner each.
type Registry struct {
	lands  []int
	owners map[int]player.ID
	known  map[int]struct{}
	logger *zap.Logger
}

// NewRegistry returns a registry over the given property land ids, all free.
func NewRegistry(lands []int, logger *zap.Logger) *Registry {
	r := &Registry{
		owners: make(map[int]player.ID),
		known:  make(map[int]struct{}, len(lands)),
		logger: logging.OrNop(logger).Named("property"),
	}
	for _, land := range lands {
		if _, ok := r.known[land]; ok {
			continue
		}
		r.known[land] = struct{}{}
		r.lands = append(r.lands, land)
	}
	sort.Ints(r.lands)
	return r
}

// Lands returns every property land id in ascending order.
func (r *Registry) Lands() []int {
	return append([]int(nil), r.lands...)
}

// OwnerOf returns the owner of land, if any.
func (r *Registry) OwnerOf(land int) (player.ID, bool, error) {
	if err := r.check(land); err != nil {
		return "", false, err
	}
	owner, ok := r.owners[land]
	return owner, ok, nil
}

// Transfer assigns land to owner and returns the previous owner.
func (r *Registry) Transfer(land int, owner player.ID) (player.ID, bool, error) {
	if err := r.check(land); err != nil {
		return "", false, err
	}
	prev, had := r.owners[land]
	r.owners[land] = owner
	r.logger.Info("property owner changed",
		zap.Int("land", land),
		zap.String("owner", string(owner)),
		zap.String("previous", string(prev)),
	)
	return prev, had, nil
}

// Clear removes the owner of land and returns who it was.
func (r *Registry) Clear(land int) (player.ID, bool, error) {
	if err := r.check(land); err != nil {
		return "", false, err
	}
	prev, had := r.owners[land]
	if !had {
		return "", false, nil
	}
	delete(r.owners, land)
	r.logger.Info("property released", zap.Int("land", land), zap.String("previous", string(prev)))
	return prev, true, nil
}

// PropertiesOf returns the lands owned by id in ascending order.
func (r *Registry) PropertiesOf(id player.ID) []int {
	var owned []int
	for _, land := range r.lands {
		if owner, ok := r.owners[land]; ok && owner == id {
			owned = append(owned, land)
		}
	}
	return owned
}

// Free returns the lands nobody owns in ascending order.
func (r *Registry) Free() []int {
	var free []int
	for _, land := range r.lands {
		if _, ok := r.owners[land]; !ok {
			free = append(free, land)
		}
	}
	return free
}

func (r *Registry) check(land int) error {
	if _, ok := r.known[land]; !ok {
		return apperrors.Derive(ErrNotAProperty, map[string]string{"land": strconv.Itoa(land)})
	}
	return nil
}
