package service

import (
	"context"
	"strings"

	"transapp/internal/domain"
)

type WorkerService struct {
	Repo domain.WorkerRepo
}

func NewWorkerService(repo domain.WorkerRepo) *WorkerService {
	return &WorkerService{Repo: repo}
}

func (s *WorkerService) GetAllWorkers(ctx context.Context) ([]domain.Worker, error) {
	return s.Repo.GetAllWorkers(ctx)
}

func (s *WorkerService) GetWorkerByID(ctx context.Context, id int) (domain.Worker, error) {
	return s.Repo.GetWorkerByID(ctx, id)
}

// ByChat finds the worker linked to a Telegram chat.
func (s *WorkerService) ByChat(ctx context.Context, chatID int64) (domain.Worker, error) {
	workers, err := s.Repo.GetAllWorkers(ctx)
	if err != nil {
		return domain.Worker{}, err
	}
	for _, w := range workers {
		if w.ChatID == chatID {
			return w, nil
		}
	}
	return domain.Worker{}, domain.ErrNotFound
}

// LinkChat attaches a Telegram chat to the worker with the given name. A
// worker already linked to another chat is refused with ErrAlreadyLinked.
func (s *WorkerService) LinkChat(ctx context.Context, name string, chatID int64) (domain.Worker, error) {
	w, err := s.Repo.GetWorkerByName(ctx, strings.Join(strings.Fields(name), " "))
	if err != nil {
		return domain.Worker{}, err
	}
	if w.ChatID != 0 && w.ChatID != chatID {
		return domain.Worker{}, domain.ErrAlreadyLinked
	}
	if err := s.Repo.SetChatID(ctx, w.ID, chatID); err != nil {
		return domain.Worker{}, err
	}
	w.ChatID = chatID
	return w, nil
}
