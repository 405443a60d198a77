package common

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	// ProjectID is the GCP project hosting the Firestore database.
	ProjectID string

	Domain string

	GAEService string

	GAEVersion string

	Env string

	// Production flag indicating if app is running the production backend on appengine
	Production bool

	// IsLocalhost flag indicating if app is running on localhost
	IsLocalhost bool
)

const (
	productionProject = "adalert-io"

	TestProjectID = "adalert-io-dev"
)

// Firestore query operators
const (
	ArrayContains = "array-contains"
	In            = "in"
)

func initEnvVariables() {
	ProjectID = GetEnv("GOOGLE_CLOUD_PROJECT", "")

	if ProjectID == "" {
		log.Fatalln("environment variable GOOGLE_CLOUD_PROJECT is not set")
	}

	IsLocalhost = gin.Mode() != gin.ReleaseMode
	GAEService = GetEnv("GAE_SERVICE", "accounts-api")
	GAEVersion = GetEnv("GAE_VERSION", "localhost")

	if value := os.Getenv("FIRESTORE_EMULATOR_HOST"); value != "" {
		log.Printf("Using Firestore Emulator: %s", value)
	}

	switch ProjectID {
	case productionProject:
		Env = "production"
		Production = true
		Domain = "app.adalert.io"
	default:
		Env = "development"
		Production = false
		Domain = "dev.adalert.io"
	}
}

func init() {
	initEnvVariables()
}

// GetEnv returns the value of the environment variable named by key,
// or fallback when the variable is unset or empty.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}

	return fallback
}

// GetDurationEnv parses the environment variable named by key as a
// time.Duration ("30s", "1m"), or returns fallback when unset or invalid.
func GetDurationEnv(key string, fallback time.Duration) time.Duration {
	value := GetEnv(key, "")
	if value == "" {
		return fallback
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}

	return d
}
