package integrity

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/louisbranch/boardwalk/internal/services/game/storage"
)

// StepHash computes the content hash of a single step. Hash itself is not
// part of the input.
func StepHash(step storage.StepRecord) (string, error) {
	return hashEnvelope(envelope(step))
}

// ChainHash computes the hash that links step to its predecessor.
func ChainHash(step storage.StepRecord, prevHash string) (string, error) {
	fields := envelope(step)
	fields["prev_hash"] = prevHash
	return hashEnvelope(fields)
}

// Verify walks steps in order and reports the first whose stored hash does not
// match its recomputed chain hash.
func Verify(steps []storage.StepRecord) error {
	prev := ""
	for _, step := range steps {
		want, err := ChainHash(step, prev)
		if err != nil {
			return err
		}
		if step.Hash != want {
			return fmt.Errorf("step %d of game %s: chain hash mismatch", step.Seq, step.GameID)
		}
		prev = step.Hash
	}
	return nil
}

func envelope(step storage.StepRecord) map[string]any {
	return map[string]any{
		"game_id":  step.GameID,
		"seq":      step.Seq,
		"turn":     step.Turn,
		"step":     step.Step,
		"player":   step.Player,
		"card":     step.Card,
		"action":   step.Action,
		"decision": step.Decision,
		"executed": step.Executed,
		"requeued": step.Requeued,
		"balance":  step.Balance,
	}
}

// hashEnvelope relies on encoding/json sorting map keys.
func hashEnvelope(fields map[string]any) (string, error) {
	data, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("marshal step envelope: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
