package cmd

import (
	"context"
	"errors"
	"flag"
	"testing"
)

type testConfig struct {
	Seed  int64  `env:"CMD_TEST_SEED" envDefault:"7"`
	Board string `env:"CMD_TEST_BOARD" envDefault:"classic"`
}

func TestParseConfigReadsEnvAndFlags(t *testing.T) {
	t.Setenv("CMD_TEST_SEED", "42")
	t.Setenv("CMD_TEST_BOARD", "env-board")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfgRef := testConfig{}
	if err := ParseConfig(&cfgRef); err != nil {
		t.Fatalf("load config defaults: %v", err)
	}
	fs.Int64Var(&cfgRef.Seed, "seed", cfgRef.Seed, "seed")
	fs.StringVar(&cfgRef.Board, "board", cfgRef.Board, "board")

	if err := ParseArgs(fs, []string{"-seed", "99"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if cfgRef.Seed != 99 {
		t.Fatalf("expected flag value for seed, got %d", cfgRef.Seed)
	}
	if cfgRef.Board != "env-board" {
		t.Fatalf("expected env default board, got %q", cfgRef.Board)
	}
}

func TestParseConfigFromArgsReadsEnvAndFlags(t *testing.T) {
	t.Setenv("CMD_TEST_SEED", "3")
	t.Setenv("CMD_TEST_BOARD", "configarg-board")

	cfgRef := testConfig{}
	fs := flag.NewFlagSet("configargs", flag.ContinueOnError)
	fs.Int64Var(&cfgRef.Seed, "seed", 0, "seed")
	if err := ParseConfigFromArgs(&cfgRef, fs, []string{"-seed", "11"}); err != nil {
		t.Fatalf("parse config and args: %v", err)
	}
	if cfgRef.Seed != 11 {
		t.Fatalf("expected parsed flag seed, got %d", cfgRef.Seed)
	}
	if cfgRef.Board != "configarg-board" {
		t.Fatalf("expected env board, got %q", cfgRef.Board)
	}
}

func TestParseConfigRejectsNilTarget(t *testing.T) {
	if err := ParseConfig[testConfig](nil); err == nil {
		t.Fatal("expected nil target error")
	}
}

func TestParseArgsRejectsNilParser(t *testing.T) {
	if err := ParseArgs(nil, []string{}); err == nil {
		t.Fatal("expected parse args to reject nil parser")
	}
}

func TestRunWithTelemetryRejectsMissingInputs(t *testing.T) {
	if err := RunWithTelemetry(context.Background(), "", func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected missing service error")
	}
	if err := RunWithTelemetry(context.Background(), ServiceSimulate, nil); err == nil {
		t.Fatal("expected missing run function error")
	}
}

func TestRunWithTelemetryReturnsRunError(t *testing.T) {
	t.Setenv("BOARDWALK_OTEL_ENDPOINT", "")
	want := errors.New("run failed")
	err := RunWithTelemetry(context.Background(), ServiceSimulate, func(context.Context) error { return want })
	if !errors.Is(err, want) {
		t.Fatalf("RunWithTelemetry() = %v, want %v", err, want)
	}
}
