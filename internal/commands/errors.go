package commands

import (
	"fmt"
	"io"

	"taskdash/internal/exitcode"
	"taskdash/internal/logger"
	"taskdash/internal/service"
)

// User-facing messages for failed API calls.
const (
	msgSessionExpired     = "session expired, log in again"
	msgLoadTasksFailed    = "could not load tasks"
	msgSaveTaskFailed     = "could not save task"
	msgUpdateProfile      = "could not update profile"
	msgDeleteTaskFailed   = "could not delete task"
	msgInvalidCredentials = "invalid credentials"
)

// reportFetchError prints the message for a failed task fetch.
// 401 means the session expired; anything else is a generic failure.
func reportFetchError(errOut io.Writer, err error) int {
	logger.Debug("fetch tasks failed", "err", err)
	if service.IsUnauthorized(err) {
		fmt.Fprintf(errOut, "error: %s\n", msgSessionExpired)
		return exitcode.AuthError
	}
	fmt.Fprintf(errOut, "error: %s\n", msgLoadTasksFailed)
	return exitcode.BackendError
}

// reportSaveError prints the message for a failed create or update.
// 422 shows the first validation message; otherwise the server message, then a generic one.
func reportSaveError(errOut io.Writer, err error) int {
	logger.Debug("save task failed", "err", err)
	return reportAPIError(errOut, err, msgSaveTaskFailed, msgSessionExpired)
}

// reportDeleteError prints the message for a failed delete.
func reportDeleteError(errOut io.Writer, err error) int {
	logger.Debug("delete task failed", "err", err)
	if service.IsUnauthorized(err) {
		fmt.Fprintf(errOut, "error: %s\n", msgSessionExpired)
		return exitcode.AuthError
	}
	fmt.Fprintf(errOut, "error: %s\n", msgDeleteTaskFailed)
	return exitcode.BackendError
}

// reportAuthError prints the message for a failed login or register.
func reportAuthError(errOut io.Writer, err error, generic string) int {
	logger.Debug("account request failed", "err", err)
	return reportAPIError(errOut, err, generic, msgInvalidCredentials)
}

// reportProfileError prints the message for a failed profile update.
func reportProfileError(errOut io.Writer, err error) int {
	logger.Debug("update profile failed", "err", err)
	return reportAPIError(errOut, err, msgUpdateProfile, msgSessionExpired)
}

func reportAPIError(errOut io.Writer, err error, generic, unauthorized string) int {
	apiErr, ok := service.AsAPIError(err)
	switch {
	case !ok:
		fmt.Fprintf(errOut, "error: %s\n", generic)
		return exitcode.BackendError
	case service.IsValidation(err):
		msg := apiErr.FirstValidationMessage()
		if msg == "" {
			msg = generic
		}
		fmt.Fprintf(errOut, "error: %s\n", msg)
		return exitcode.UserError
	case service.IsUnauthorized(err):
		fmt.Fprintf(errOut, "error: %s\n", unauthorized)
		return exitcode.AuthError
	case apiErr.Message != "":
		fmt.Fprintf(errOut, "error: %s\n", apiErr.Message)
		return exitcode.BackendError
	default:
		fmt.Fprintf(errOut, "error: %s\n", generic)
		return exitcode.BackendError
	}
}
