package main

import (
	"github.com/hibiken/asynq"

	orderingJob "elearn-backend/internal/ordering/job"
	"elearn-backend/internal/shared"
	"elearn-backend/pkg/container"
)

// HandlerRegistry holds all job handlers.
type HandlerRegistry struct {
	compactPositions *orderingJob.CompactPositionsHandler
}

// initializeHandlers creates all job handlers with their dependencies.
func initializeHandlers(c *container.Container) *HandlerRegistry {
	// Every ordered table registers under its own kind so a manual run
	// can target one table instead of all four.
	targets := map[string]orderingJob.Target{
		"courses":   {Scopes: c.CourseOrderStore, Reorder: c.CourseOrdering},
		"lessons":   {Scopes: c.LessonOrderStore, Reorder: c.LessonOrdering},
		"textbooks": {Scopes: c.TextbookOrderStore, Reorder: c.TextbookOrdering},
		"teachers":  {Scopes: c.TeacherOrderStore, Reorder: c.TeacherOrdering},
	}

	return &HandlerRegistry{
		compactPositions: orderingJob.NewCompactPositionsHandler(targets),
	}
}

// RegisterHandlers registers all handlers with the mux.
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeCompactPositions, h.compactPositions.ProcessTask)
}
