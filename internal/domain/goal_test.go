package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDailyGoalRecord(t *testing.T) {
	r := NewDailyGoalRecord(primitive.NewObjectID(), time.Now())

	assert.False(t, r.IsPerfectDay())
	assert.Equal(t, 0.0, r.ProportionOfGoalsMet())

	r.UpdateGoals(true, true, true, true)
	assert.True(t, r.IsPerfectDay())
	assert.Equal(t, 1.0, r.ProportionOfGoalsMet())

	r.UpdateGoals(true, false, false, false)
	assert.False(t, r.IsPerfectDay())
	assert.Equal(t, 0.25, r.ProportionOfGoalsMet())

	r.UpdateGoals(false, true, true, false)
	assert.Equal(t, 0.5, r.ProportionOfGoalsMet())

	r.UpdateGoals(true, true, false, true)
	assert.Equal(t, 0.75, r.ProportionOfGoalsMet())
}

func TestTruncateToDay(t *testing.T) {
	loc := time.FixedZone("AEST", 10*60*60)
	in := time.Date(2024, 10, 13, 23, 30, 0, 0, loc)

	got := TruncateToDay(in)
	assert.Equal(t, time.Date(2024, 10, 13, 0, 0, 0, 0, time.UTC), got)
}

func TestNewGoalBoard(t *testing.T) {
	b := NewGoalBoard(primitive.NewObjectID())

	assert.Empty(t, b.ActiveGoals)
	assert.Equal(t, DefaultAvailableGoals, b.AvailableGoals)

	// The default list must not be shared with the board
	b.AvailableGoals[0] = "changed"
	assert.Equal(t, "Daily Workout Completed", DefaultAvailableGoals[0])
}

func TestGoalBoardAddAndComplete(t *testing.T) {
	b := NewGoalBoard(primitive.NewObjectID())

	assert.True(t, b.AddActiveGoal("Run 5k"))
	assert.True(t, b.HasActiveGoal("Run 5k"))
	assert.False(t, b.IsGoalCompleted("Run 5k"))

	b.CompleteGoal("Run 5k")
	assert.True(t, b.IsGoalCompleted("Run 5k"))
	assert.False(t, b.HasActiveGoal("Run 5k"))
	assert.NotContains(t, b.AvailableGoals, "Run 5k")
}

func TestGoalBoardAddDeduplicates(t *testing.T) {
	b := NewGoalBoard(primitive.NewObjectID())

	assert.True(t, b.AddActiveGoal("8 Hours Sleep"))
	assert.False(t, b.AddActiveGoal("8 Hours Sleep"))

	assert.Equal(t, []string{"8 Hours Sleep"}, b.ActiveGoals)
	assert.NotContains(t, b.AvailableGoals, "8 Hours Sleep")
}

func TestGoalBoardRemoveReturnsToAvailable(t *testing.T) {
	b := NewGoalBoard(primitive.NewObjectID())
	b.AddActiveGoal("10,000 Steps")
	b.ToggleGoalCompletion("10,000 Steps")
	assert.True(t, b.IsGoalCompleted("10,000 Steps"))

	b.RemoveActiveGoal("10,000 Steps")

	assert.False(t, b.HasActiveGoal("10,000 Steps"))
	assert.False(t, b.IsGoalCompleted("10,000 Steps"))
	count := 0
	for _, name := range b.AvailableGoals {
		if name == "10,000 Steps" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestGoalBoardRemoveAllOccurrences(t *testing.T) {
	b := &GoalBoard{ActiveGoals: []string{"Run 5k", "Swim", "Run 5k"}}

	b.RemoveActiveGoal("Run 5k")

	assert.Equal(t, []string{"Swim"}, b.ActiveGoals)
	assert.Equal(t, []string{"Run 5k"}, b.AvailableGoals)
}

func TestGoalBoardToggle(t *testing.T) {
	b := NewGoalBoard(primitive.NewObjectID())

	assert.False(t, b.ToggleGoalCompletion("Swim"))

	b.AddActiveGoal("Swim")
	assert.True(t, b.ToggleGoalCompletion("Swim"))
	assert.True(t, b.IsGoalCompleted("Swim"))
	assert.True(t, b.HasActiveGoal("Swim"))

	assert.True(t, b.ToggleGoalCompletion("Swim"))
	assert.False(t, b.IsGoalCompleted("Swim"))
}

func TestGoalBoardNilMap(t *testing.T) {
	b := &GoalBoard{}

	assert.False(t, b.IsGoalCompleted("anything"))
	b.CompleteGoal("anything")
	assert.True(t, b.IsGoalCompleted("anything"))
}

func TestGoalBoardCoreFlags(t *testing.T) {
	b := NewGoalBoard(primitive.NewObjectID())
	assert.False(t, b.HasMetAllGoals())

	b.UpdateWorkoutCompletion(true)
	b.UpdateStepsGoal(true)
	b.UpdateWaterIntake(true)
	assert.False(t, b.HasMetAllGoals())

	b.UpdateSleepGoal(true)
	assert.True(t, b.HasMetAllGoals())
}

func TestRoutineCatalog(t *testing.T) {
	catalog := RoutineCatalog()
	assert.Len(t, catalog, 15)

	r, ok := FindRoutine("Fullbody Mat Routine")
	assert.True(t, ok)
	assert.Equal(t, "20 mins", r.Duration)
	assert.Equal(t, CategoryFullBody, r.Category)

	_, ok = FindRoutine("Couch Routine")
	assert.False(t, ok)

	catalog[0].Name = "mutated"
	r, _ = FindRoutine("Pull Day Routine")
	assert.Equal(t, "strength1", r.ImageName)
}
