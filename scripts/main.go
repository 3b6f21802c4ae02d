package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/flexprice/rvpark/scripts/internal"
)

// Command represents a script that can be run
type Command struct {
	Name        string
	Description string
	Run         func() error
}

var commands = []Command{
	{
		Name:        "create-admin",
		Description: "Create the first administrator account",
		Run:         internal.CreateAdminUser,
	},
	{
		Name:        "seed-park",
		Description: "Create an RV park with a block of available spots",
		Run:         internal.SeedRvPark,
	},
	{
		Name:        "generate-secret",
		Description: "Generate a token signing secret",
		Run:         internal.GenerateAuthSecret,
	},
}

func main() {
	var (
		listCommands bool
		cmdName      string
		username     string
		password     string
		parkName     string
		parkID       string
		spotCount    string
		spotPrefix   string
	)

	flag.BoolVar(&listCommands, "list", false, "List all available commands")
	flag.StringVar(&cmdName, "cmd", "", "Command to run")
	flag.StringVar(&username, "username", "", "Username for the admin account")
	flag.StringVar(&password, "password", "", "Password for the admin account")
	flag.StringVar(&parkName, "park-name", "", "Name of the RV park to seed")
	flag.StringVar(&parkID, "park-id", "", "RV park the admin account belongs to")
	flag.StringVar(&spotCount, "spots", "", "Number of spots to seed")
	flag.StringVar(&spotPrefix, "spot-prefix", "", "Prefix of the seeded spot codes")

	flag.Parse()

	if listCommands {
		fmt.Println("Available commands:")
		for _, cmd := range commands {
			fmt.Printf("  %-20s %s\n", cmd.Name, cmd.Description)
		}
		return
	}

	if cmdName == "" {
		log.Fatal("Please specify a command to run using -cmd flag. Use -list to see available commands.")
	}

	// Set command-specific environment variables
	for env, value := range map[string]string{
		"ADMIN_USERNAME": username,
		"ADMIN_PASSWORD": password,
		"PARK_NAME":      parkName,
		"RV_PARK_ID":     parkID,
		"SPOT_COUNT":     spotCount,
		"SPOT_PREFIX":    spotPrefix,
	} {
		if value != "" {
			os.Setenv(env, value)
		}
	}

	for _, cmd := range commands {
		if cmd.Name == cmdName {
			if err := cmd.Run(); err != nil {
				log.Fatalf("Error running command %s: %v", cmdName, err)
			}
			return
		}
	}

	log.Fatalf("Unknown command: %s. Use -list to see available commands.", cmdName)
}
