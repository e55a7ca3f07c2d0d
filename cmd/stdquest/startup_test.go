package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/stdquest/internal/game/content"
	"github.com/cory-johannsen/stdquest/internal/game/progress"
)

type brokenStore struct{ saves int }

func (b *brokenStore) Load(context.Context) ([]byte, error) {
	return nil, errors.New("reading save: is a directory")
}

func (b *brokenStore) Save(context.Context, []byte) error {
	b.saves++
	return errors.New("writing save: is a directory")
}

func (b *brokenStore) Reset(context.Context) error { return nil }

func TestLoadProgress_UnreadableStoreStartsFresh(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	store := &brokenStore{}
	d := progress.Defaults{StartLocation: "intro", StartEra: "n4950"}

	p := loadProgress(context.Background(), store, d, zap.New(core))
	require.NotNil(t, p)
	assert.Equal(t, "intro", p.Location())
	assert.Equal(t, 1, p.Level())

	warned := logs.FilterLevelExact(zapcore.WarnLevel).FilterMessageSnippet("unreadable").All()
	require.Len(t, warned, 1)
	assert.Contains(t, warned[0].ContextMap()["error"], "is a directory")

	p.MoveTo("expr")
	assert.Error(t, progress.Persist(context.Background(), store, p))
	assert.Equal(t, 1, store.saves)
	assert.True(t, p.Dirty())
}

func TestCheckContent(t *testing.T) {
	broken := content.Report{
		Errors:   []string{`quest "q1": giver npc "nobody" does not exist`},
		Warnings: []string{`quest "q2": npc "bjarne" has no topic "x"`},
	}

	tests := []struct {
		name    string
		report  content.Report
		allow   bool
		wantErr bool
	}{
		{name: "clean", report: content.Report{}},
		{name: "warnings only", report: content.Report{Warnings: broken.Warnings}},
		{name: "errors refuse to start", report: broken, wantErr: true},
		{name: "errors allowed", report: broken, allow: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.InfoLevel)
			err := checkContent(tt.report, tt.allow, zap.New(core))
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "-allow-content-errors")
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, len(tt.report.Errors), logs.FilterLevelExact(zapcore.ErrorLevel).Len())
			assert.Equal(t, len(tt.report.Warnings), logs.FilterLevelExact(zapcore.WarnLevel).Len())
		})
	}
}
