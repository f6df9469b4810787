package main

import (
	"log"
	"os"
	osx "os"
)

func helper() {
	os.Exit(2)
}

func main() {
	defer helper()

	go func() {
		os.Exit(3)
	}()

	if len(os.Args) > 5 {
		log.Fatalf("too many args: %d", len(os.Args)) // want "avoid using log.Fatalf in main.main"
	}
	log.Println("starting")
	osx.Exit(1) // want "avoid using os.Exit in main.main"
	os.Exit(0)  // want "avoid using os.Exit in main.main"
}
