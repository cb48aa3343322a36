package usecase

import (
	"net/url"
	"strings"

	"github.com/St1cky1/task-calendar/internal/entity"
)

type OpenLinkInput struct {
	TaskID string
}

type OpenLinkOutput struct {
	Link string
}

// OpenLinkUseCase только проверяет ссылку; открывает ее вызывающая сторона.
type OpenLinkUseCase struct{}

func NewOpenLinkUseCase() *OpenLinkUseCase {
	return &OpenLinkUseCase{}
}

// Execute при неверном формате все равно возвращает ссылку в Link.
func (uc *OpenLinkUseCase) Execute(cal entity.TaskCalendar, in OpenLinkInput) (OpenLinkOutput, error) {
	task, ok := entity.GetTaskByID(cal, in.TaskID)
	if !ok {
		return OpenLinkOutput{}, taskNotFound()
	}

	link := strings.TrimSpace(task.Link)
	if link == "" {
		return OpenLinkOutput{}, entity.NewFieldError("link", entity.MsgLinkNotSet, entity.ErrLinkNotSet)
	}
	if !isWebURL(link) {
		return OpenLinkOutput{Link: task.Link}, entity.NewFieldError("link", entity.MsgInvalidURL, entity.ErrInvalidURL)
	}
	return OpenLinkOutput{Link: link}, nil
}

func isWebURL(link string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
