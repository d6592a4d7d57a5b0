package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/mediadesk/coverage-allocator/internal/allocator"
	"github.com/mediadesk/coverage-allocator/internal/auth"
	"github.com/mediadesk/coverage-allocator/internal/db"
	"github.com/mediadesk/coverage-allocator/internal/handlers"
	"github.com/mediadesk/coverage-allocator/internal/middleware"
	"github.com/mediadesk/coverage-allocator/internal/models"
	"github.com/mediadesk/coverage-allocator/internal/notify"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	if level, err := log.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		log.SetLevel(level)
	}

	client, err := db.ConnectMongo()
	if err != nil {
		log.WithError(err).Fatal("failed to connect to MongoDB")
	}
	database := client.Database(db.DatabaseName())

	resources := &db.MongoResourceCollection{Collection: database.Collection("resources")}
	assignments := &db.MongoAssignmentCollection{Collection: database.Collection("assignments")}
	events := &db.MongoEventCollection{Collection: database.Collection("events")}
	notifications := &db.MongoNotificationCollection{Collection: database.Collection("notifications")}
	users := &db.MongoUserCollection{Collection: database.Collection("users")}

	sender := notify.MultiSender{&notify.StoreSender{Notifications: notifications}}
	if broker := os.Getenv("MQTT_BROKER"); broker != "" {
		mqttSender, err := notify.NewMQTTSender(broker, "coverage-allocator")
		if err != nil {
			log.WithError(err).Warn("MQTT broker unreachable, continuing without it")
		} else {
			sender = append(sender, mqttSender)
		}
	}

	alloc := allocator.New(resources, assignments, sender)

	authService, err := auth.NewService()
	if err != nil {
		log.WithError(err).Fatal("failed to create auth service")
	}
	authMiddleware := middleware.NewAuthMiddleware(authService)
	editorOnly := authMiddleware.RequireRole(models.RoleEditor)

	authHandler := handlers.NewAuthHandler(authService, users)
	allocationHandler := handlers.NewAllocationHandler(alloc, events, assignments)
	resourceHandler := handlers.NewResourceHandler(resources)
	eventHandler := handlers.NewEventHandler(events, alloc)
	assignmentHandler := handlers.NewAssignmentHandler(assignments)
	notificationHandler := handlers.NewNotificationHandler(notifications)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/api/auth/login", authHandler.Login)
	mux.HandleFunc("/api/auth/register", authHandler.Register)
	mux.Handle("/api/events", editorOnly(http.HandlerFunc(eventHandler.Events)))
	mux.Handle("/api/events/cancel", editorOnly(http.HandlerFunc(eventHandler.Cancel)))
	mux.Handle("/api/events/allocate", editorOnly(http.HandlerFunc(allocationHandler.Allocate)))
	mux.Handle("/api/events/release", editorOnly(http.HandlerFunc(allocationHandler.Release)))
	mux.Handle("/api/resources", editorOnly(http.HandlerFunc(resourceHandler.Resources)))
	mux.Handle("/api/resources/location", http.HandlerFunc(resourceHandler.Location))
	mux.Handle("/api/assignments", editorOnly(http.HandlerFunc(assignmentHandler.ByEvent)))
	mux.HandleFunc("/api/assignments/respond", assignmentHandler.Respond)
	mux.HandleFunc("/api/notifications", notificationHandler.List)
	mux.HandleFunc("/api/notifications/read", notificationHandler.MarkRead)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.WithField("port", port).Info("coverage allocator listening")
	log.Fatal(http.ListenAndServe(":"+port, authMiddleware.Authenticate(mux)))
}
