// Command seed populates the database with demo data.
package main

import (
	"flag"
	"log"

	"warbler/internal/config"
	"warbler/internal/database"
	"warbler/internal/seed"
)

func main() {
	preset := flag.String("preset", "", "path to a YAML seed preset")
	users := flag.Int("users", 0, "number of users (overrides preset)")
	tweets := flag.Int("tweets", 0, "number of tweets (overrides preset)")
	clean := flag.Bool("clean", false, "truncate existing data first")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	opts := seed.DefaultOptions()
	if *preset != "" {
		opts, err = seed.LoadPreset(*preset)
		if err != nil {
			log.Fatalf("Failed to load preset: %v", err)
		}
	}
	if *users > 0 {
		opts.NumUsers = *users
	}
	if *tweets > 0 {
		opts.NumTweets = *tweets
	}
	if *clean {
		opts.ShouldClean = true
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
