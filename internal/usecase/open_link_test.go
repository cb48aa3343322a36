package usecase

import (
	"testing"

	"github.com/St1cky1/task-calendar/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func calendarWithLink(link string) entity.TaskCalendar {
	return entity.TaskCalendar{Tasks: []entity.Task{{ID: "t1", Title: "linked", Link: link}}}
}

func TestOpenLink(t *testing.T) {
	for _, link := range []string{"https://example.com/a?b=c", "http://localhost:8080", "  https://example.com  "} {
		out, err := NewOpenLinkUseCase().Execute(calendarWithLink(link), OpenLinkInput{TaskID: "t1"})
		require.NoError(t, err, link)
		assert.NotEmpty(t, out.Link)
	}
}

func TestOpenLinkFailures(t *testing.T) {
	tests := []struct {
		name     string
		link     string
		taskID   string
		sentinel error
		wantLink string
	}{
		{name: "task not found", taskID: "missing", sentinel: entity.ErrTaskNotFound},
		{name: "empty link", taskID: "t1", link: "", sentinel: entity.ErrLinkNotSet},
		{name: "blank link", taskID: "t1", link: "   ", sentinel: entity.ErrLinkNotSet},
		{name: "ftp scheme", taskID: "t1", link: "ftp://example.com", sentinel: entity.ErrInvalidURL, wantLink: "ftp://example.com"},
		{name: "no scheme", taskID: "t1", link: "example.com", sentinel: entity.ErrInvalidURL, wantLink: "example.com"},
		{name: "file path", taskID: "t1", link: "/tmp/notes.txt", sentinel: entity.ErrInvalidURL, wantLink: "/tmp/notes.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := NewOpenLinkUseCase().Execute(calendarWithLink(tt.link), OpenLinkInput{TaskID: tt.taskID})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.Equal(t, tt.wantLink, out.Link)
		})
	}
}
