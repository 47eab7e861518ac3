package tasks

// TaskSchedulerInterface defines the interface for task scheduling operations.
// Used by the main application to manage background snapshot refreshes.
// Example usage:
//
//	scheduler := NewScheduler(reg, adapterSet, store)
//	scheduler.Start()
//	defer scheduler.Stop()
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}
