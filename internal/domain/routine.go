package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Routine is an entry in the predefined workout catalog.
type Routine struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	ImageName   string `json:"imageName"` // Key into the static asset catalog
	Duration    string `json:"duration"`  // Display label, e.g. "20 mins"
	Description string `json:"description"`
}

// SavedRoutine is a catalog routine a user chose to keep. It is never
// modified after creation. Name acts as the de-duplication key per user.
type SavedRoutine struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	Name        string             `bson:"name" json:"name"`
	ImageName   string             `bson:"imageName" json:"imageName"`
	Duration    string             `bson:"duration" json:"duration"`
	Description string             `bson:"description" json:"description"`
	SavedAt     time.Time          `bson:"savedAt" json:"savedAt"`
}

// NewSavedRoutine copies a catalog routine into a saved record for userID.
func NewSavedRoutine(userID primitive.ObjectID, r Routine) *SavedRoutine {
	return &SavedRoutine{
		UserID:      userID,
		Name:        r.Name,
		ImageName:   r.ImageName,
		Duration:    r.Duration,
		Description: r.Description,
	}
}

// Catalog categories.
const (
	CategoryStrength   = "Strength Training"
	CategoryFullBody   = "Full Body Workouts"
	CategoryDumbbell   = "DumbBell Only"
	CategoryStretching = "Stretching Routines"
	CategoryCardio     = "Cardio"
)

var routineCatalog = []Routine{
	{"Pull Day Routine", CategoryStrength, "strength1", "90 mins", "Push the limits with pull day exercises."},
	{"Push Day Routine", CategoryStrength, "strength2", "90 mins", "Push the limits with push day exercises."},
	{"Intense Glute Workout", CategoryStrength, "strength3", "90 mins", "Train your glutes with this high intensity lower body workout."},
	{"7 Minute Daily Workout", CategoryFullBody, "fullbody1", "7 mins", "7 mins a day keeps the doctor away."},
	{"Fullbody Mat Routine", CategoryFullBody, "fullbody2", "20 mins", "Grab your yoga mat and complete this low intensity full body workout."},
	{"Moderate Intensity Fullbody Workout", CategoryFullBody, "fullbody3", "30 mins", "Moderate in intensity for a full body workout at home."},
	{"Strength Dumbbell Workout", CategoryDumbbell, "dumbbell1", "20 mins", "Train your core strength with this dumb bell only workout."},
	{"Lower Body Workout", CategoryDumbbell, "dumbbell2", "15 mins", "Minimal equipment lower body workout."},
	{"Upper Body Workout", CategoryDumbbell, "dumbbell3", "15 mins", "Minimal equipment upper body workout."},
	{"Everyday Stretch Routine", CategoryStretching, "stretch1", "7 mins", "Low intensity, quick and perfect to incorporate into your everyday life."},
	{"Flexibility Stretch Routine", CategoryStretching, "stretch2", "10 mins", "Perfect for those trying to increase their flexibility."},
	{"Full Body Stretch Routine", CategoryStretching, "stretch3", "10 mins", "Essential start for a great workout."},
	{"Skipping Warm Up Routine", CategoryCardio, "cardio1", "10 mins", "Warm up before your workout with this skipping routine."},
	{"Outdoor Cardio Routine", CategoryCardio, "cardio2", "30 mins", "Perfect for outdoors."},
	{"Easy Treadmill Workout", CategoryCardio, "cardio3", "20 mins", "Grab a friend and get your heart pumping with this treadmill routine."},
}

// RoutineCatalog returns a copy of the predefined routines in display order.
func RoutineCatalog() []Routine {
	out := make([]Routine, len(routineCatalog))
	copy(out, routineCatalog)
	return out
}

// FindRoutine looks a catalog routine up by exact name.
func FindRoutine(name string) (Routine, bool) {
	for _, r := range routineCatalog {
		if r.Name == name {
			return r, true
		}
	}
	return Routine{}, false
}
