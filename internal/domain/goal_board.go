package domain

import (
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultAvailableGoals seeds a new board.
var DefaultAvailableGoals = []string{
	"Daily Workout Completed",
	"10,000 Steps",
	"Hydrated with 2L Water",
	"8 Hours Sleep",
}

// GoalBoard is the free-form variant of goal tracking: named goals move
// between the available and active lists and carry a completion flag.
// A name is never in ActiveGoals and AvailableGoals at the same time.
//
// The four core flags are tracked separately from the named goals.
type GoalBoard struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         primitive.ObjectID `bson:"userId" json:"userId"`
	ActiveGoals    []string           `bson:"activeGoals" json:"activeGoals"`
	AvailableGoals []string           `bson:"availableGoals" json:"availableGoals"`
	CompletedGoals map[string]bool    `bson:"completedGoals" json:"completedGoals"`

	WorkoutCompleted bool `bson:"workoutCompleted" json:"workoutCompleted"`
	StepsGoalMet     bool `bson:"stepsGoalMet" json:"stepsGoalMet"`
	WaterIntakeMet   bool `bson:"waterIntakeMet" json:"waterIntakeMet"`
	SleepGoalMet     bool `bson:"sleepGoalMet" json:"sleepGoalMet"`

	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// NewGoalBoard returns a board with nothing active and the default goals available.
func NewGoalBoard(userID primitive.ObjectID) *GoalBoard {
	return &GoalBoard{
		UserID:         userID,
		ActiveGoals:    []string{},
		AvailableGoals: slices.Clone(DefaultAvailableGoals),
		CompletedGoals: map[string]bool{},
	}
}

// AddActiveGoal starts tracking name. It returns false, changing nothing,
// if name is already active.
func (b *GoalBoard) AddActiveGoal(name string) bool {
	if b.HasActiveGoal(name) {
		return false
	}
	b.ActiveGoals = append(b.ActiveGoals, name)
	b.AvailableGoals = removeAll(b.AvailableGoals, name)
	b.completed()[name] = false
	return true
}

// RemoveActiveGoal stops tracking name and returns it to the available list.
func (b *GoalBoard) RemoveActiveGoal(name string) {
	b.ActiveGoals = removeAll(b.ActiveGoals, name)
	if !slices.Contains(b.AvailableGoals, name) {
		b.AvailableGoals = append(b.AvailableGoals, name)
	}
	b.completed()[name] = false
}

// CompleteGoal marks name done and drops it from the active list. The goal
// is not returned to the available list.
func (b *GoalBoard) CompleteGoal(name string) {
	b.completed()[name] = true
	b.ActiveGoals = removeAll(b.ActiveGoals, name)
}

// ToggleGoalCompletion flips the completion flag of an active goal and
// leaves it active. It returns false if name is not active.
func (b *GoalBoard) ToggleGoalCompletion(name string) bool {
	if !b.HasActiveGoal(name) {
		return false
	}
	done := b.completed()
	done[name] = !done[name]
	return true
}

func (b *GoalBoard) IsGoalCompleted(name string) bool {
	return b.CompletedGoals[name]
}

func (b *GoalBoard) HasActiveGoal(name string) bool {
	return slices.Contains(b.ActiveGoals, name)
}

// HasMetAllGoals reports whether all four core flags are set.
func (b *GoalBoard) HasMetAllGoals() bool {
	return b.StepsGoalMet && b.WaterIntakeMet && b.SleepGoalMet && b.WorkoutCompleted
}

func (b *GoalBoard) UpdateWorkoutCompletion(status bool) { b.WorkoutCompleted = status }
func (b *GoalBoard) UpdateStepsGoal(status bool)         { b.StepsGoalMet = status }
func (b *GoalBoard) UpdateWaterIntake(status bool)       { b.WaterIntakeMet = status }
func (b *GoalBoard) UpdateSleepGoal(status bool)         { b.SleepGoalMet = status }

// completed lazily allocates the map; boards decoded from storage may have it nil.
func (b *GoalBoard) completed() map[string]bool {
	if b.CompletedGoals == nil {
		b.CompletedGoals = map[string]bool{}
	}
	return b.CompletedGoals
}

func removeAll(names []string, name string) []string {
	return slices.DeleteFunc(names, func(n string) bool { return n == name })
}
