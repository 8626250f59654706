package constants

import "time"

// SessionState represents the current view of the TUI application
type SessionState int

const (
	AppName            = "nutritrack"
	DefaultKeyringUser = "cache-connection"
	DefaultConfigPath  = "~/.config/nutritrack/nutritrack.db"
	MemoryConfigPath   = ":memory:"
	Version            = "v0.3.0"
	EnvPrefix          = "NUTRITRACK"

	// Local cache keys. These match the keys the mobile app wrote, so a cache
	// exported from a device can be loaded as-is.
	CacheKeyIdentity = "email"
	CacheKeyProfile  = "userData"
	CacheKeyPlan     = "meal_plan_data"

	// Remote endpoints, relative to the configured server URL
	PathRegister     = "/user/addUser"
	PathLogin        = "/user/login"
	PathEditUser     = "/user/edit/%s"
	PathExistingPlan = "/user-meal-plan/get-meal-plan/%s"
	PathSavePlan     = "/user-meal-plan/add-meal-plan/%s"
	PathGeneratePlan = "/DailyMealPlan/%s"
	PathUpdatePlan   = "/DailyMealPlan/UpdateMealPlan/%s"

	DefaultHTTPTimeout = 60 * time.Second
	RequestIDHeader    = "X-Request-ID"
	DefaultUserAgent   = AppName + "/" + Version

	// Instance lock
	LockfileName = "nutritrack.lock"

	// Log rotation
	LogDirName    = "logs"
	LogFileName   = "nutritrack.log"
	LogMaxSizeMB  = 10
	LogMaxBackups = 3
	LogMaxAgeDays = 28
)

// Session States
const (
	StatePlan SessionState = iota
	StateProfile
	StateEditPrompt
	StateEditProfile
	StateConfirmSignOut
	StateSignIn
)
