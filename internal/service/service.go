// Package service defines the backend-agnostic interface for task and account operations.
package service

import "context"

// Service defines the interface for the task API.
// All HTTP calls go through this interface; commands never build requests directly.
type Service interface {
	// Login exchanges credentials for a bearer token and the user profile.
	Login(ctx context.Context, email, password string) (AuthResult, error)

	// Register creates an account and returns a bearer token and the user profile.
	Register(ctx context.Context, name, email, password string) (AuthResult, error)

	// UpdateProfile changes the current user's name, email and password.
	UpdateProfile(ctx context.Context, in ProfileInput) (User, error)

	// Logout revokes the current bearer token.
	Logout(ctx context.Context) error

	// ListTasks returns the user's tasks in API order.
	ListTasks(ctx context.Context) ([]Task, error)

	// CreateTask creates a task.
	CreateTask(ctx context.Context, in TaskInput) error

	// UpdateTask replaces the editable fields of task id.
	UpdateTask(ctx context.Context, id int64, in TaskInput) error

	// DeleteTask deletes task id.
	DeleteTask(ctx context.Context, id int64) error
}
