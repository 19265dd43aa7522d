package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitializeLevels(t *testing.T) {
	defer SetLogger(nil)

	if err := Initialize("loud"); err == nil {
		t.Error("expected unknown level to fail")
	}

	t.Setenv(LevelEnv, "warn")
	if err := Initialize(""); err != nil {
		t.Fatal(err)
	}
	if get().Core().Enabled(zapcore.InfoLevel) || !get().Core().Enabled(zapcore.WarnLevel) {
		t.Error("expected the environment level to apply")
	}

	if err := Initialize("debug"); err != nil {
		t.Fatal(err)
	}
	if !get().Core().Enabled(zapcore.DebugLevel) {
		t.Error("expected an explicit level to win over the environment")
	}
}

func TestSetLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	Debug("one", zap.Int("n", 1))
	Info("two")
	Warn("three")
	Error("four")
	if logs.Len() != 4 {
		t.Fatalf("expected four entries, got %d", logs.Len())
	}
	if entry := logs.All()[0]; entry.Message != "one" || entry.ContextMap()["n"] != int64(1) {
		t.Errorf("unexpected entry %+v", entry)
	}

	SetLogger(nil)
	Info("dropped")
	if logs.Len() != 4 {
		t.Error("expected nil to restore the silent logger")
	}
}
