package integrity

import (
	"testing"

	"github.com/louisbranch/boardwalk/internal/services/game/storage"
)

func sampleStep() storage.StepRecord {
	return storage.StepRecord{
		GameID:   "g1",
		Seq:      1,
		Turn:     1,
		Step:     1,
		Player:   "alice",
		Card:     "Roll dice",
		Action:   "ROLL_DICE",
		Decision: "accept",
		Executed: true,
		Balance:  1500,
	}
}

func TestStepHashDeterministic(t *testing.T) {
	first, err := StepHash(sampleStep())
	if err != nil {
		t.Fatalf("step hash: %v", err)
	}
	second, err := StepHash(sampleStep())
	if err != nil {
		t.Fatalf("step hash: %v", err)
	}
	if first != second {
		t.Fatalf("expected deterministic hash, got %s and %s", first, second)
	}

	changed := sampleStep()
	changed.Balance = 1499
	third, err := StepHash(changed)
	if err != nil {
		t.Fatalf("step hash: %v", err)
	}
	if third == first {
		t.Fatal("expected hash to change with balance")
	}
}

func TestChainHashDependsOnPrevious(t *testing.T) {
	a, err := ChainHash(sampleStep(), "")
	if err != nil {
		t.Fatal(err)
	}
	b, err := ChainHash(sampleStep(), "abc")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatal("expected previous hash to change the chain hash")
	}
}

func TestVerify(t *testing.T) {
	steps := make([]storage.StepRecord, 3)
	prev := ""
	for i := range steps {
		step := sampleStep()
		step.Seq = int64(i + 1)
		step.Step = i + 1
		hash, err := ChainHash(step, prev)
		if err != nil {
			t.Fatal(err)
		}
		step.Hash = hash
		steps[i] = step
		prev = hash
	}
	if err := Verify(steps); err != nil {
		t.Fatalf("Verify() error = %v", err)
	}

	steps[1].Balance = 9999
	if err := Verify(steps); err == nil {
		t.Fatal("expected tampered step to fail verification")
	}
}
