package service

import (
	"errors"
	"strings"
	"testing"

	"defi_quest/internal/progression"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func validGoalInput() CreateGoalInput {
	return CreateGoalInput{
		Title:        "Hold ETH for a month",
		Type:         progression.GoalHolding,
		DurationDays: 30,
	}
}

func TestCreateGoalInputValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CreateGoalInput)
		wantOK bool
	}{
		{"valid", func(in *CreateGoalInput) {}, true},
		{"title too short", func(in *CreateGoalInput) { in.Title = "ab" }, false},
		{"title whitespace only", func(in *CreateGoalInput) { in.Title = "   x   " }, false},
		{"unknown type", func(in *CreateGoalInput) { in.Type = "yolo" }, false},
		{"zero duration", func(in *CreateGoalInput) { in.DurationDays = 0 }, false},
		{"duration too long", func(in *CreateGoalInput) { in.DurationDays = 366 }, false},
		{"max duration ok", func(in *CreateGoalInput) { in.DurationDays = 365 }, true},
		{"long description", func(in *CreateGoalInput) { in.Description = strPtr(strings.Repeat("x", 501)) }, false},
		{"negative target", func(in *CreateGoalInput) { in.TargetAmount = floatPtr(-1) }, false},
		{"zero target ok", func(in *CreateGoalInput) { in.TargetAmount = floatPtr(0) }, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validGoalInput()
			tc.mutate(&in)
			err := in.validate()
			if tc.wantOK && err != nil {
				t.Fatalf("validate() = %v; want nil", err)
			}
			if !tc.wantOK {
				if err == nil {
					t.Fatal("validate() = nil; want error")
				}
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("validate() = %v; want ErrInvalidInput", err)
				}
			}
		})
	}
}
