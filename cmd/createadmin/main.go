// Command createadmin provisions an administrator account.  The API has
// no self-registration, so the first (and any further) admin is created
// from the shell:
//
//	createadmin -email info@athenesolijf.nl -password <password>
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/athenesolijf/reservation-api/internal/config"
	"github.com/athenesolijf/reservation-api/internal/database"
	"github.com/athenesolijf/reservation-api/internal/repository"
)

func main() {
	email := flag.String("email", "", "admin email address")
	password := flag.String("password", "", "admin password")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("both -email and -password are required")
	}

	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users := repository.NewUserRepo(db)
	id, err := users.Create(ctx, *email, *password, "ADMIN", cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrEmailExists {
			log.Fatalf("an account with email %s already exists", *email)
		}
		log.Fatalf("create admin: %v", err)
	}
	fmt.Printf("created admin %s (id %d)\n", *email, id)
}
