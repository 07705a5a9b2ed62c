package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/pricebook/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestLogUseCaseObserver_Levels(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantLevel string
	}{
		{name: "success", wantLevel: "level=INFO"},
		{name: "missing entity", err: &domain.NotFoundError{Kind: "phase", ID: "x"}, wantLevel: "level=WARN"},
		{name: "bad transition", err: domain.ErrInvalidTransition, wantLevel: "level=WARN"},
		{name: "storage failure", err: errors.New("disk I/O error"), wantLevel: "level=ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			obs := NewLogUseCaseObserver(&buf)
			obs.ObserveUseCase(context.Background(), UseCaseEvent{
				Name:     "add-phase",
				Duration: 3 * time.Millisecond,
				Success:  tt.err == nil,
				Err:      tt.err,
				Fields:   map[string]any{"project_id": "proj-1"},
			})
			out := buf.String()
			assert.Contains(t, out, tt.wantLevel)
			assert.Contains(t, out, "msg=pricebook_use_case")
			assert.Contains(t, out, "use_case=add-phase")
			assert.Contains(t, out, "project_id=proj-1")
			if tt.err != nil {
				assert.Contains(t, out, "error=")
			}
		})
	}
}

func TestNewLogUseCaseObserver_NilWriterIsNoop(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
	assert.IsType(t, NoopUseCaseObserver{}, NewSlogUseCaseObserver(nil))
}

func TestProjectService_ReportsToObserver(t *testing.T) {
	repos := setupRepos(t)
	obs := &recordingObserver{}
	svc := NewProjectService(repos.projects, nil, nil, obs)

	err := svc.Create(context.Background(), &domain.Project{Name: "Acme", ShortID: "bad"})
	assert.Error(t, err)
	ev := obs.last()
	assert.Equal(t, "create-project", ev.Name)
	assert.False(t, ev.Success)
	assert.Equal(t, "bad", ev.Fields["short_id"])
}
