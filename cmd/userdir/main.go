// Command userdir serves the users directory: the JSON API under /api and
// the users page under /users.
//
// Settings come from defaults, an optional JSON file (CONFIG or -c), the
// environment and flags, in that order of priority:
//
//	-a  SERVER_ADDRESS     address to listen on (":8080")
//	-b  API_BASE_URL       base URL the page uses to reach the API
//	-l  LOG_LEVEL          debug, info, warn, error or fatal
//	-f  FILE_STORAGE_PATH  JSON file holding the collection ("data/users.json")
//	-d  DATABASE_DSN       PostgreSQL DSN, takes priority over the file
//	-r  REDIS_ADDR         Redis address, used when no DSN is given
//	-t  TRUSTED_SUBNET     CIDR allowed to read /api/internal/stats
package main

import (
	"github.com/patric-chuzhbe/userdir/internal/app"
)

func run() error {
	theApp, err := app.New()
	if err != nil {
		return err
	}
	defer theApp.Close()

	return theApp.Run()
}

func main() {
	if err := run(); err != nil {
		panic(err)
	}
}
