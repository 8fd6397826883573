package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/nmehta6/shopassist/internal/assistant"
	"github.com/nmehta6/shopassist/internal/config"
	"github.com/nmehta6/shopassist/internal/domain"
	"github.com/nmehta6/shopassist/internal/repository/mongo"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// seed loads a demo catalog, store policies, an admin account and a few
// orders so the assistant has something to talk about on a fresh database.
func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, relying on environment")
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	ctx := context.Background()

	db, err := mongo.NewDB(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer db.Close(ctx)

	if err := db.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure indexes")
	}

	if err := run(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("Seeding failed")
	}

	log.Info().Msg("Seed data inserted successfully")
}

func run(ctx context.Context, db *mongo.DB) error {
	now := time.Now()

	userRepo := mongo.NewUserRepository(db)
	productRepo := mongo.NewProductRepository(db)
	orderRepo := mongo.NewOrderRepository(db)
	policyRepo := mongo.NewPolicyRepository(db)

	// Admin account
	admin, err := seedAdmin(ctx, userRepo, now)
	if err != nil {
		return err
	}

	// Catalog
	for _, p := range seedProducts(now) {
		product := p
		if err := productRepo.Create(ctx, &product); err != nil {
			if errors.Is(err, domain.ErrDuplicateSKU) {
				log.Info().Str("sku", product.SKU).Msg("product already seeded, skipping")
				continue
			}
			return fmt.Errorf("failed to seed product %s: %w", product.SKU, err)
		}
		log.Info().Str("name", product.Name).Msg("product seeded")
	}

	// Policies
	for _, p := range seedPolicies(now) {
		policy := p
		if err := policyRepo.Upsert(ctx, &policy); err != nil {
			return fmt.Errorf("failed to seed policy %s: %w", policy.Type, err)
		}
		log.Info().Str("type", string(policy.Type)).Msg("policy seeded")
	}

	// Orders belong to the admin so a fresh login has some history
	for _, o := range seedOrders(admin.ID) {
		order := o
		existing, err := orderRepo.GetByNumber(ctx, order.OrderNumber)
		if err != nil {
			return fmt.Errorf("failed to check order %s: %w", order.OrderNumber, err)
		}
		if existing != nil {
			log.Info().Str("order_number", order.OrderNumber).Msg("order already seeded, skipping")
			continue
		}
		if err := orderRepo.Create(ctx, &order); err != nil {
			return fmt.Errorf("failed to seed order %s: %w", order.OrderNumber, err)
		}
		log.Info().Str("order_number", order.OrderNumber).Msg("order seeded")
	}

	return nil
}

func seedAdmin(ctx context.Context, userRepo *mongo.UserRepository, now time.Time) (*domain.User, error) {
	email := "meghana@example.com"

	existing, err := userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check admin user: %w", err)
	}
	if existing != nil {
		log.Info().Str("email", email).Msg("admin already seeded, skipping")
		return existing, nil
	}

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "changeme-now"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &domain.User{
		ID:           uuid.New(),
		Username:     "Meghana",
		Email:        email,
		PasswordHash: string(hash),
		Role:         "admin",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("failed to create admin user: %w", err)
	}

	log.Info().Str("email", email).Msg("admin user created")
	return admin, nil
}

func seedProducts(now time.Time) []domain.Product {
	return []domain.Product{
		{
			ID:            uuid.New(),
			Name:          "Smartphone X",
			Description:   "High-end smartphone with advanced camera and long battery life.",
			Price:         82270,
			Category:      "Electronics",
			InStock:       true,
			StockQuantity: 50,
			SKU:           "PHONE-X-001",
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			ID:            uuid.New(),
			Name:          "Wireless Headphones",
			Description:   "Premium noise-canceling wireless headphones with 30-hour battery life.",
			Price:         20567,
			Category:      "Audio",
			InStock:       true,
			StockQuantity: 100,
			SKU:           "AUDIO-HP-002",
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			ID:            uuid.New(),
			Name:          "Smart Watch",
			Description:   "Track your fitness, receive notifications, and more with this smart watch.",
			Price:         28793,
			Category:      "Wearables",
			InStock:       true,
			StockQuantity: 75,
			SKU:           "WATCH-SW-003",
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			ID:            uuid.New(),
			Name:          "Laptop Pro",
			Description:   "Powerful laptop for professionals with high-performance specs.",
			Price:         123404,
			Category:      "Computers",
			InStock:       true,
			StockQuantity: 25,
			SKU:           "COMP-LP-004",
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			ID:            uuid.New(),
			Name:          "Gaming Console",
			Description:   "Next-generation gaming console with 4K graphics and fast load times.",
			Price:         41134,
			Category:      "Gaming",
			InStock:       false,
			StockQuantity: 0,
			SKU:           "GAME-C-005",
			CreatedAt:     now,
			UpdatedAt:     now,
		},
	}
}

func seedPolicies(now time.Time) []domain.Policy {
	return []domain.Policy{
		{
			Type:  domain.PolicyReturn,
			Title: "Return Policy",
			Content: "Our return policy allows you to return items within 30 days of delivery for a full refund.\n\n" +
				"Return shipping costs are the responsibility of the customer unless the item was received damaged or incorrect.\n\n" +
				"For damaged or defective items, we will cover return shipping costs.\n\n" +
				"Please contact our customer service team to initiate a return.",
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			Type:  domain.PolicyRefund,
			Title: "Refund Policy",
			Content: "Refunds are processed within 5-7 business days after receiving returned items.\n" +
				"Refunds will be issued to the original payment method used for the purchase.\n" +
				"Shipping charges are non-refundable unless the return is due to our error.\n" +
				"For damaged or defective items, we will cover return shipping costs.",
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			Type:  domain.PolicyShipping,
			Title: "Shipping Policy",
			Content: "We offer standard and express shipping options.\n\n" +
				"Standard shipping: 3-5 business days\n" +
				"Express shipping: 1-2 business days\n\n" +
				"Free shipping on orders over " + assistant.FormatCurrency(4000) + "\n\n" +
				"International shipping is available to select countries. Rates and delivery times vary by location.",
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			Type:  domain.PolicyPrivacy,
			Title: "Privacy Policy",
			Content: "We collect and process your personal data in accordance with our privacy policy.\n" +
				"Your data is used to process orders, provide customer support, and improve our services.\n" +
				"We never share your personal information with third parties without your consent.\n" +
				"You can request your data to be deleted at any time.",
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

func seedOrders(userID uuid.UUID) []domain.Order {
	return []domain.Order{
		{
			ID:          uuid.New(),
			OrderNumber: "ORD-001",
			UserID:      userID,
			Items: []domain.OrderItem{
				{ProductID: "PHONE-X-001", Name: "Smartphone X", Quantity: 1, Price: 82270},
			},
			TotalAmount: 82270,
			Status:      domain.OrderDelivered,
			ShippingAddress: &domain.Address{
				Street: "42 MG Road", City: "Bangalore", State: "Karnataka", ZipCode: "560001", Country: "India",
			},
			CreatedAt: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:          uuid.New(),
			OrderNumber: "ORD-002",
			UserID:      userID,
			Items: []domain.OrderItem{
				{ProductID: "AUDIO-HP-002", Name: "Wireless Headphones", Quantity: 1, Price: 20567},
			},
			TotalAmount: 20567,
			Status:      domain.OrderProcessing,
			ShippingAddress: &domain.Address{
				Street: "15 Park Street", City: "Mumbai", State: "Maharashtra", ZipCode: "400001", Country: "India",
			},
			CreatedAt: time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:          uuid.New(),
			OrderNumber: "ORD-003",
			UserID:      userID,
			Items: []domain.OrderItem{
				{ProductID: "WATCH-SW-003", Name: "Smart Watch", Quantity: 1, Price: 28793},
			},
			TotalAmount: 28793,
			Status:      domain.OrderShipped,
			ShippingAddress: &domain.Address{
				Street: "7 Connaught Place", City: "New Delhi", State: "Delhi", ZipCode: "110001", Country: "India",
			},
			CreatedAt: time.Date(2024, time.April, 5, 0, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2024, time.April, 6, 0, 0, 0, 0, time.UTC),
		},
	}
}
