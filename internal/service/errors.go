package service

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by a service wraps exactly one of them, so the HTTP layer
// can map with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrBadRequest   = errors.New("bad request")
	ErrConflict     = errors.New("conflict")
)

// --- Error Definitions ---
var (
	// ErrPlanNotFound is also returned when the caller does not own the plan.
	ErrPlanNotFound     = fmt.Errorf("%w: training plan not found", ErrNotFound)
	ErrSessionNotFound  = fmt.Errorf("%w: session not found", ErrNotFound)
	ErrExerciseNotFound = fmt.Errorf("%w: exercise not found", ErrNotFound)
	ErrMediaNotFound    = fmt.Errorf("%w: no media recorded for this exercise", ErrNotFound)
	ErrAthleteNotFound  = fmt.Errorf("%w: athlete not found", ErrNotFound)
	ErrCoachNotFound    = fmt.Errorf("%w: coach not found", ErrNotFound)
	ErrUserNotFound     = fmt.Errorf("%w: user not found", ErrNotFound)
	// ErrTemplateNotFound is also returned for templates of another coach.
	ErrTemplateNotFound = fmt.Errorf("%w: template not found", ErrNotFound)

	ErrAuthenticationFailed = fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	ErrNotCoach             = fmt.Errorf("%w: only coaches can access the dashboard", ErrUnauthorized)
	ErrForeignDashboard     = fmt.Errorf("%w: not allowed to access this dashboard", ErrUnauthorized)

	ErrInvalidInput         = fmt.Errorf("%w: invalid input", ErrBadRequest)
	ErrInvalidDateRange     = fmt.Errorf("%w: startDate must not be after endDate", ErrBadRequest)
	ErrInvalidMediaRef      = fmt.Errorf("%w: mediaRef was not issued for this exercise", ErrBadRequest)
	ErrPredefinedTemplate   = fmt.Errorf("%w: predefined templates cannot be deleted", ErrBadRequest)
	ErrUnsupportedMediaType = fmt.Errorf("%w: unsupported media content type", ErrBadRequest)

	ErrUserAlreadyExists = fmt.Errorf("%w: user with this email already exists", ErrConflict)
	ErrPlanModified      = fmt.Errorf("%w: training plan was modified concurrently, reload and retry", ErrConflict)

	ErrHashingFailed   = errors.New("failed to hash password")
	ErrTokenGeneration = errors.New("failed to generate authentication token")
	ErrMediaURL        = errors.New("failed to generate media URL")
	ErrMediaDisabled   = errors.New("media storage is not configured")
)

// outcome names the error kind for metrics labels.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrBadRequest):
		return "bad_request"
	case errors.Is(err, ErrConflict):
		return "conflict"
	default:
		return "error"
	}
}
