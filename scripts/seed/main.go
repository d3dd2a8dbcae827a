package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mickaelbalensi/ProductManager/internal/app"
	"github.com/mickaelbalensi/ProductManager/internal/auth"
	"github.com/mickaelbalensi/ProductManager/internal/comments"
	"github.com/mickaelbalensi/ProductManager/internal/platform/db"
	"github.com/mickaelbalensi/ProductManager/internal/projects"
	"github.com/mickaelbalensi/ProductManager/internal/shared"
	"github.com/mickaelbalensi/ProductManager/internal/tasks"
)

const demoPassword = "demo1234"

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN, db.PoolOptions{})
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()
	if err := db.Migrate(ctx, pool, logger); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	authCfg := cfg.AuthConfig()
	hasher, err := auth.NewHasherFromConfig(authCfg)
	if err != nil {
		log.Fatalf("hasher: %v", err)
	}
	tokens, err := auth.NewTokenServiceFromConfig(authCfg)
	if err != nil {
		log.Fatalf("tokens: %v", err)
	}
	users := auth.NewRepository(pool)
	authService := auth.NewService(users, hasher, tokens, nil, logger)
	projectService := projects.NewService(projects.NewRepository(pool), users, nil, logger)
	taskService := tasks.NewService(tasks.NewRepository(pool), projectService, projectService)
	commentService := comments.NewService(comments.NewRepository(pool), taskService, users, projectService)

	fmt.Println("→ Seeding users...")
	ada, err := seedUser(ctx, authService, auth.RegisterRequest{
		FirstName: "Ada", FamilyName: "Lovelace", Email: "ada@productmanager.local", Password: demoPassword,
	})
	if err != nil {
		log.Fatalf("seed user: %v", err)
	}
	grace, err := seedUser(ctx, authService, auth.RegisterRequest{
		FirstName: "Grace", FamilyName: "Hopper", Email: "grace@productmanager.local", Password: demoPassword,
	})
	if err != nil {
		log.Fatalf("seed user: %v", err)
	}

	fmt.Println("→ Seeding project...")
	project, err := projectService.Create(ctx, ada.ID, projects.CreateRequest{
		Name:        "Analytical Engine",
		Description: "Demo project created by the seed script",
	})
	if errors.Is(err, shared.ErrDuplicate) {
		fmt.Println("✓ Demo data already present")
		return
	}
	if err != nil {
		log.Fatalf("seed project: %v", err)
	}

	fmt.Println("→ Seeding tasks and comments...")
	for _, t := range []struct {
		title  string
		status tasks.Status
	}{
		{"Design the mill", tasks.StatusDone},
		{"Punch the cards", tasks.StatusInProgress},
		{"Write the notes", tasks.StatusTodo},
	} {
		task, err := taskService.Create(ctx, project.ID, tasks.CreateRequest{Title: t.title, Status: string(t.status)})
		if err != nil {
			log.Fatalf("seed task: %v", err)
		}
		requester := auth.Identity{ID: grace.ID, Email: grace.Email}
		if _, err := commentService.Create(ctx, requester, task.ID, comments.CreateRequest{
			Content: "Looks good to me.",
		}); err != nil {
			log.Fatalf("seed comment: %v", err)
		}
	}

	fmt.Println("✓ Seed complete at", time.Now().Format(time.RFC3339))
}

func seedUser(ctx context.Context, svc *auth.Service, req auth.RegisterRequest) (auth.UserSummary, error) {
	result, err := svc.Register(ctx, req)
	if errors.Is(err, shared.ErrDuplicate) {
		result, err = svc.Login(ctx, auth.LoginRequest{Email: req.Email, Password: req.Password})
	}
	if err != nil {
		return auth.UserSummary{}, err
	}
	return result.User, nil
}
