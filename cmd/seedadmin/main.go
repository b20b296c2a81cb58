// Command seedadmin creates the initial admin account directly in the
// database. It is idempotent: re-running against a database that already
// holds the email is a no-op.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/lodgepole/console/internal/console/domain"
	"github.com/lodgepole/console/internal/console/service"
	"github.com/lodgepole/console/internal/console/store"
	"github.com/lodgepole/console/internal/console/store/drivers/sqlite"
	"github.com/lodgepole/console/pkg/cryptox"
	"github.com/lodgepole/console/pkg/idx"
)

func main() {
	var (
		dbFile   = flag.String("db", "console.db", "path to the SQLite database file")
		name     = flag.String("name", "Admin", "display name for the admin account")
		email    = flag.String("email", "", "email address for the admin account")
		password = flag.String("password", "", "password for the admin account")
	)
	flag.Parse()

	if *email == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*dbFile, *name, *email, *password); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run(dbFile, name, email, password string) error {
	ctx := context.Background()
	email = service.NormalizeEmail(email)

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", dbFile)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.ApplyMigrations(); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	if _, err := db.Users().GetUserByEmail(ctx, email); err == nil {
		log.Printf("user %s already exists, nothing to do", email)
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("failed to check for existing user: %w", err)
	}

	hash, err := cryptox.HashPassword(password, cryptox.DefaultPasswordCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.User{
		ID:           idx.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	}

	if err := db.Users().CreateUser(ctx, user); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	log.Printf("admin user %s created", email)
	return nil
}
