package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultStoryTTL is how long a story stays visible after creation.
	DefaultStoryTTL = 24 * time.Hour
	// DefaultSweepInterval is how often expired stories are reclaimed.
	DefaultSweepInterval = time.Hour
)

// Load reads an optional .env file into the process environment. Missing
// files are fine; real deployments set the environment directly.
func Load() {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file loaded")
	}
}

// Getenv returns the value of key or fallback when unset.
func Getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// StoryTTL returns the configured story lifetime.
func StoryTTL() time.Duration {
	return durationEnv("STORY_TTL", DefaultStoryTTL)
}

// SweepInterval returns the configured period of the expiration sweep.
func SweepInterval() time.Duration {
	return durationEnv("SWEEP_INTERVAL", DefaultSweepInterval)
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		logrus.WithFields(logrus.Fields{"key": key, "value": v}).
			Warn("Invalid duration in environment, using default")
		return fallback
	}
	return d
}
