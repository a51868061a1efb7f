package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/tutorhub/booking-service/internal/config"
	"github.com/tutorhub/booking-service/internal/infra/database"
	"github.com/tutorhub/booking-service/internal/infra/http/handlers"
	"github.com/tutorhub/booking-service/internal/infra/http/middleware"
	"github.com/tutorhub/booking-service/internal/infra/integration/stripe"
	"github.com/tutorhub/booking-service/internal/infra/mail"
	"github.com/tutorhub/booking-service/internal/infra/queue"
	"github.com/tutorhub/booking-service/internal/usecase"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	// Repositories
	familyRepo := database.NewFamilyRepository(db)
	bookingRepo := database.NewBookingRepository(db)
	leadActivityRepo := database.NewLeadActivityRepository(db)
	mergeLogRepo := database.NewMergeLogRepository(db)
	enrollmentRepo := database.NewEnrollmentRepository(db)
	studentRepo := database.NewStudentRepository(db)
	sessionRepo := database.NewSessionRepository(db)
	invoiceRepo := database.NewInvoiceRepository(db)
	messageRepo := database.NewMessageRepository(db)

	// Lead notifications are optional: no RABBITMQ_URL means the
	// webhook path simply skips publishing.
	var producer usecase.NotificationProducer
	var rabbitConn *amqp.Connection
	if cfg.RabbitURL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("rabbitmq connection failed: %v", err)
		}
		defer rabbitMQ.Conn.Close()
		defer rabbitMQ.Ch.Close()
		rabbitConn = rabbitMQ.Conn
		producer = queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

		if cfg.OpsNotifyEmail != "" && cfg.MailHost != "" {
			sender := mail.NewEmailSender(
				cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPassword,
				"no-reply@tutorhub.app", cfg.OpsNotifyEmail,
			)
			worker := queue.NewWorker(rabbitMQ.Ch, sender)
			go worker.Start(queue.QueueName)
		} else {
			log.Printf("WARNING: lead notifications queued but no ops mailer configured")
		}
	}

	// Use cases
	resolver := usecase.NewContactResolver(familyRepo, enrollmentRepo, mergeLogRepo)
	ingestUC := usecase.NewIngestBookingUseCase(
		resolver, familyRepo, bookingRepo, leadActivityRepo,
		studentRepo, sessionRepo, producer,
	)
	checkoutUC := usecase.NewCreateCheckoutUseCase(
		invoiceRepo,
		stripe.NewGateway(stripe.NewClient(cfg.StripeAPIKey)),
		cfg.StripeSuccessURL,
		cfg.StripeCancelURL,
	)
	messageUC := usecase.NewUpdateMessageStatusUseCase(messageRepo)

	// Handlers
	calendlyHandler := handlers.NewCalendlyHandler(ingestUC, cfg.CalendlySecret)
	twilioHandler := handlers.NewTwilioStatusHandler(messageUC)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutUC)
	healthHandler := handlers.NewHealthHandler(db, rabbitConn, cfg.StripeAPIKey != "")

	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
	}))

	r.Post("/webhooks/calendly", calendlyHandler.Handle)
	r.Post("/webhooks/twilio-status", twilioHandler.Handle)
	r.Post("/checkout", checkoutHandler.Handle)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	addr := ":" + cfg.Port
	log.Printf("booking service listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal(err)
	}
}
