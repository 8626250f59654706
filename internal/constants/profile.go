package constants

const (
	DefaultActivityLevel = "Sedentary"
	DefaultGender        = "male"

	// MinPasswordLength is the shortest password accepted at sign-up
	MinPasswordLength = 8
)

// ActivityLevels is the suggested set shown by the profile editor. The field
// itself is free-form; anything the backend accepts is kept.
var ActivityLevels = []string{
	"Sedentary",
	"Lightly Active",
	"Moderately Active",
	"Very Active",
	"Extremely Active",
	"goes to gym",
}

// DietaryOptions are the preset dietary tags offered at sign-up.
var DietaryOptions = []string{"veg", "non-veg", "vegan", "keto", "paleo"}

// AllergyOptions are the preset allergy tags offered at sign-up.
var AllergyOptions = []string{"milk", "eggs", "nuts", "soy", "gluten", "banana"}
