// Seeds the demo fixtures: four chat users and a conversation per pair the
// front-end prototype expects to exist.
package main

import (
	"context"
	"log"
	"time"

	"xlai-be/internal/config"
	"xlai-be/internal/entity"
	"xlai-be/internal/repository/specification"
	"xlai-be/internal/repository/unitofwork"
	"xlai-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

type demoUser struct {
	handle      string
	displayName string
}

var demoUsers = []demoUser{
	{handle: "user_a", displayName: "User A"},
	{handle: "user_b", displayName: "User B"},
	{handle: "alex", displayName: "Alex"},
	{handle: "jordan", displayName: "Jordan"},
}

func main() {
	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)

	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	for _, du := range demoUsers {
		existing, err := uow.UserRepository().FindOne(ctx, specification.ByHandle{Handle: du.handle})
		if err != nil {
			log.Fatalf("Seed lookup failed for %s: %v", du.handle, err)
		}
		if existing != nil {
			yellow.Printf("• user %s already exists, skipping\n", du.handle)
			continue
		}

		user := entity.User{
			Id:          uuid.New(),
			Handle:      du.handle,
			DisplayName: du.displayName,
			CreatedAt:   time.Now(),
		}
		if err := uow.UserRepository().Create(ctx, &user); err != nil {
			log.Fatalf("Seed failed for %s: %v", du.handle, err)
		}
		green.Printf("✓ created user %s (%s)\n", du.handle, du.displayName)
	}

	for i := 0; i < len(demoUsers); i++ {
		for j := i + 1; j < len(demoUsers); j++ {
			a, b := demoUsers[i].handle, demoUsers[j].handle
			key := entity.ConversationKey(a, b)

			existing, err := uow.ConversationRepository().FindOne(ctx, specification.ByConversationKey{Key: key})
			if err != nil {
				log.Fatalf("Seed lookup failed for conversation %s: %v", key, err)
			}
			if existing != nil {
				yellow.Printf("• conversation %s already exists, skipping\n", key)
				continue
			}

			conversation := entity.Conversation{
				Id:           uuid.New(),
				Key:          key,
				ParticipantA: a,
				ParticipantB: b,
				CreatedAt:    time.Now(),
			}
			if err := uow.ConversationRepository().Create(ctx, &conversation); err != nil {
				log.Fatalf("Seed failed for conversation %s: %v", key, err)
			}
			green.Printf("✓ created conversation %s\n", key)
		}
	}

	green.Println("✅ Seed complete")
}
