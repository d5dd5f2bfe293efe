package model

import "github.com/fitlog/fitlog-cli/internal/codec"

// Enumerations persist as their exact case-sensitive names so a value
// written by one build can be rejected loudly, not misread, by an older
// one.

type WorkoutType string

const (
	WorkoutWalk  WorkoutType = "WALK"
	WorkoutBike  WorkoutType = "BIKE"
	WorkoutHome  WorkoutType = "HOME"
	WorkoutMixed WorkoutType = "MIXED"
	WorkoutOther WorkoutType = "OTHER"
)

var workoutTypes = []WorkoutType{WorkoutWalk, WorkoutBike, WorkoutHome, WorkoutMixed, WorkoutOther}

func WorkoutTypes() []WorkoutType {
	return append([]WorkoutType(nil), workoutTypes...)
}

func (t WorkoutType) String() string { return string(t) }

func ParseWorkoutType(name string) (WorkoutType, error) {
	for _, t := range workoutTypes {
		if string(t) == name {
			return t, nil
		}
	}
	return "", &codec.UnknownVariantError{Enum: "workout type", Name: name}
}

type MealType string

const (
	MealBreakfast  MealType = "BREAKFAST"
	MealLunch      MealType = "LUNCH"
	MealDinner     MealType = "DINNER"
	MealSnack      MealType = "SNACK"
	MealPreWorkout MealType = "PRE_WORKOUT"
)

var mealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnack, MealPreWorkout}

func MealTypes() []MealType {
	return append([]MealType(nil), mealTypes...)
}

func (t MealType) String() string { return string(t) }

func ParseMealType(name string) (MealType, error) {
	for _, t := range mealTypes {
		if string(t) == name {
			return t, nil
		}
	}
	return "", &codec.UnknownVariantError{Enum: "meal type", Name: name}
}
