package domain

import "context"

type WorkerRepo interface {
	GetAllWorkers(ctx context.Context) ([]Worker, error)
	GetWorkerByID(ctx context.Context, id int) (Worker, error)
	GetWorkerByName(ctx context.Context, name string) (Worker, error)
	UpsertWorker(ctx context.Context, name string) (int, error)
	SetChatID(ctx context.Context, id int, chatID int64) error
}

type Worker struct {
	ID     int
	Name   string
	ChatID int64
	Role   string
}
