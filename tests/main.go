// Seeds the local database with a demo account and a week of tasks, so the
// sweep and the calendar API have something to chew on during development.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"tasknest/config"
	"tasknest/database"
	"tasknest/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.LoadConfig()
	database.InitDB()
	db := database.MongoClient.Database(database.DatabaseName)
	userColl := db.Collection("users")
	taskColl := db.Collection("tasks")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Clear existing demo data.
	if _, err := taskColl.DeleteMany(ctx, bson.M{}); err != nil {
		log.Fatalf("Failed to clear tasks collection: %v", err)
	}
	if _, err := userColl.DeleteMany(ctx, bson.M{}); err != nil {
		log.Fatalf("Failed to clear users collection: %v", err)
	}

	// Demo account.
	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}
	demoUser := models.User{
		ID:           uuid.NewString(),
		Email:        "demo@tasknest.local",
		Username:     "demo",
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if _, err := userColl.InsertOne(ctx, demoUser); err != nil {
		log.Fatalf("Failed to insert demo user: %v", err)
	}

	titles := []string{
		"Morning run", "Team standup", "Dentist appointment",
		"Grocery shopping", "Project review", "Call the bank",
		"Water the plants", "Write weekly report",
	}
	colors := []string{"#8b5cf6", "#22c55e", "#f97316", "#0ea5e9"}
	priorities := []models.Priority{models.PriorityHigh, models.PriorityMedium, models.PriorityLow}

	// A week of tasks, a few per day, roughly half with notification times.
	var tasks []interface{}
	today := time.Now().Truncate(24 * time.Hour)
	for day := 0; day < 7; day++ {
		perDay := 2 + rand.Intn(3)
		for i := 0; i < perDay; i++ {
			start := today.AddDate(0, 0, day).Add(time.Duration(8+rand.Intn(10)) * time.Hour)
			t := models.Task{
				ID:            uuid.NewString(),
				UserID:        demoUser.ID,
				Title:         titles[rand.Intn(len(titles))],
				StartDate:     start,
				EndDate:       start.Add(time.Hour),
				Priority:      priorities[rand.Intn(len(priorities))],
				CategoryColor: colors[rand.Intn(len(colors))],
				CreatedAt:     time.Now().UnixMilli(),
			}
			if rand.Intn(2) == 0 {
				nt := start.Add(-15 * time.Minute)
				t.NotificationTime = &nt
			}
			tasks = append(tasks, t)
		}
	}

	res, err := taskColl.InsertMany(ctx, tasks)
	if err != nil {
		log.Fatalf("Failed to insert tasks: %v", err)
	}

	fmt.Printf("Seeded 1 user (%s) and %d tasks\n", demoUser.Email, len(res.InsertedIDs))
}
