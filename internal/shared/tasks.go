package shared

// Task type names and queues shared between the API and the worker.
const (
	// TypeCompactPositions re-runs position reconciliation for every
	// scope of one ordered entity kind.
	TypeCompactPositions = "ordering:compact_positions"

	QueueMaintenance = "maintenance"
)
