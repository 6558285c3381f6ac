// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"taskdash/internal/service"
)

// Error helpers for injection.
var (
	ErrUnauthorized = &service.APIError{Status: 401, Message: "Unauthenticated."}
	ErrServer       = &service.APIError{Status: 500, Message: "Server Error"}
)

// ValidationError builds a 422 error with one message for field.
func ValidationError(field, msg string) *service.APIError {
	return &service.APIError{
		Status:  422,
		Message: msg,
		Fields:  map[string][]string{field: {msg}},
	}
}

// FakeService is an in-memory implementation of service.Service for testing.
// Every call is recorded in Calls, e.g. "ListTasks" or "DeleteTask 3".
type FakeService struct {
	mu     sync.Mutex
	tasks  []service.Task
	nextID int64
	Calls  []string

	// Account data returned by Login/Register/UpdateProfile.
	User  service.User
	Token string

	// Last payloads seen.
	LastTaskInput    service.TaskInput
	LastProfileInput service.ProfileInput

	// Error injection for testing
	LoginErr         error
	RegisterErr      error
	UpdateProfileErr error
	LogoutErr        error
	ListTasksErr     error
	CreateTaskErr    error
	UpdateTaskErr    error
	DeleteTaskErr    error
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		nextID: 1,
		User:   service.User{ID: 1, Name: "Test User", Email: "test@example.com"},
		Token:  "1|test-token",
	}
}

// AddTask adds a task and returns its ID.
func (f *FakeService) AddTask(title string, status service.Status, priority service.Priority) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++
	f.tasks = append(f.tasks, service.Task{
		ID:        id,
		Title:     title,
		Status:    status,
		Priority:  priority,
		CreatedAt: "2025-01-01T00:00:00.000000Z",
		Creator:   service.Person{ID: f.User.ID, Name: f.User.Name, Email: f.User.Email},
	})
	return id
}

// PutTask stores t as-is, replacing any task with the same ID.
func (f *FakeService) PutTask(t service.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == t.ID {
			f.tasks[i] = t
			return
		}
	}
	f.tasks = append(f.tasks, t)
	if t.ID >= f.nextID {
		f.nextID = t.ID + 1
	}
}

// Tasks returns a copy of the stored tasks.
func (f *FakeService) Tasks() []service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]service.Task, len(f.tasks))
	copy(out, f.tasks)
	return out
}

// CallCount returns how many recorded calls equal call.
func (f *FakeService) CallCount(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		if c == call {
			n++
		}
	}
	return n
}

func (f *FakeService) record(call string) {
	f.mu.Lock()
	f.Calls = append(f.Calls, call)
	f.mu.Unlock()
}

// Login implements service.Service.
func (f *FakeService) Login(ctx context.Context, email, password string) (service.AuthResult, error) {
	f.record("Login")
	if f.LoginErr != nil {
		return service.AuthResult{}, f.LoginErr
	}
	return service.AuthResult{Token: f.Token, User: f.User}, nil
}

// Register implements service.Service.
func (f *FakeService) Register(ctx context.Context, name, email, password string) (service.AuthResult, error) {
	f.record("Register")
	if f.RegisterErr != nil {
		return service.AuthResult{}, f.RegisterErr
	}
	f.User = service.User{ID: f.User.ID, Name: name, Email: email}
	return service.AuthResult{Token: f.Token, User: f.User}, nil
}

// UpdateProfile implements service.Service.
func (f *FakeService) UpdateProfile(ctx context.Context, in service.ProfileInput) (service.User, error) {
	f.record("UpdateProfile")
	f.LastProfileInput = in
	if f.UpdateProfileErr != nil {
		return service.User{}, f.UpdateProfileErr
	}
	f.User = service.User{ID: f.User.ID, Name: in.Name, Email: in.Email}
	return f.User, nil
}

// Logout implements service.Service.
func (f *FakeService) Logout(ctx context.Context) error {
	f.record("Logout")
	return f.LogoutErr
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	f.record("ListTasks")
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	return f.Tasks(), nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, in service.TaskInput) error {
	f.record("CreateTask")
	f.LastTaskInput = in
	if f.CreateTaskErr != nil {
		return f.CreateTaskErr
	}
	f.AddTask(in.Title, in.Status, in.Priority)
	f.mu.Lock()
	defer f.mu.Unlock()
	t := &f.tasks[len(f.tasks)-1]
	t.Description = in.Description
	t.DueDate = in.DueDate
	return nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id int64, in service.TaskInput) error {
	f.record(fmt.Sprintf("UpdateTask %d", id))
	f.LastTaskInput = in
	if f.UpdateTaskErr != nil {
		return f.UpdateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			t := &f.tasks[i]
			t.Title = in.Title
			t.Description = in.Description
			t.Priority = in.Priority
			t.Status = in.Status
			t.DueDate = in.DueDate
			return nil
		}
	}
	return &service.APIError{Status: 404, Message: "Not Found"}
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id int64) error {
	f.record(fmt.Sprintf("DeleteTask %d", id))
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return &service.APIError{Status: 404, Message: "Not Found"}
}
