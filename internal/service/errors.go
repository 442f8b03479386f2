package service

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrGoalNotFound     = errors.New("goal not found")
	ErrQuestNotFound    = errors.New("quest not found")
	ErrAlreadyCompleted = errors.New("already completed")
	ErrInvalidInput     = errors.New("invalid input")
	ErrForbidden        = errors.New("forbidden")
)
