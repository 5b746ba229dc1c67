// Createadmin provisions a staff account. Run from project root:
//
//	go run ./cmd/createadmin -email admin@example.com -password secret123
package main

import (
	"context"
	"flag"

	"github.com/sirupsen/logrus"

	"todo-api/internal/config"
	"todo-api/internal/repository/sqlite"
	"todo-api/internal/service"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	email := flag.String("email", "", "email of the admin account")
	password := flag.String("password", "", "password of the admin account")
	flag.Parse()

	if *email == "" || *password == "" {
		logger.Fatal("both -email and -password are required")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	ctx := context.Background()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	userRepo := sqlite.NewUserRepository(db)
	if err := userRepo.Init(ctx); err != nil {
		logger.Fatalf("init user repository: %v", err)
	}

	users := service.NewUserService(userRepo)
	user, err := users.RegisterAdmin(ctx, *email, *password)
	if err != nil {
		logger.Fatalf("create admin: %v", err)
	}

	logger.Infof("created admin account %s (id %d)", user.Email, user.ID)
}
