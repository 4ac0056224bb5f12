// Command seed provisions a demo tenant with an admin account, coaches and
// starter FAQs. Intended for development environments.
package main

import (
	"os"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"gym-service/internal/model"
	"gym-service/pkg/config"
	"gym-service/pkg/database"
	"gym-service/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}

	if err := logger.InitLogger(&logger.LogConfig{
		Level:       cfg.Log.Level,
		Environment: cfg.Server.Env,
		ServiceName: "gym-service-seed",
	}); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()

	if _, err := database.InitDB(&cfg.DB); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	if err := database.Migrate(); err != nil {
		log.Fatal("Failed to migrate database models", zap.Error(err))
	}

	db := database.GetDB()

	tenant := model.Tenant{
		Name:  "Maximal Gym",
		Slug:  "maximal-gym",
		Email: "admin@maximalgym.com",
		Phone: "+91 9876543210",
		Address: model.TenantAddress{
			Street:  "123 Fitness Street",
			City:    "Bengaluru",
			State:   "Karnataka",
			ZipCode: "560001",
			Country: "India",
		},
		Subscription: model.Subscription{
			Plan:   model.PlanPremium,
			Status: model.SubscriptionActive,
		},
		IsActive: true,
	}
	if err := db.Where(model.Tenant{Slug: tenant.Slug}).FirstOrCreate(&tenant).Error; err != nil {
		log.Fatal("Failed to seed tenant", zap.Error(err))
	}
	log.Info("Seeded tenant", zap.String("id", tenant.ID), zap.String("slug", tenant.Slug))

	password, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash admin password", zap.Error(err))
	}
	admin := model.User{
		Name:     "Admin User",
		Email:    "admin@maximalgym.com",
		Password: string(password),
		Role:     model.RoleAdmin,
		TenantID: &tenant.ID,
		Phone:    "+91 9876543210",
		IsActive: true,
	}
	if err := db.Where(model.User{Email: admin.Email}).FirstOrCreate(&admin).Error; err != nil {
		log.Fatal("Failed to seed admin user", zap.Error(err))
	}
	log.Info("Seeded admin user", zap.String("email", admin.Email))

	coaches := []model.Coach{
		{
			TenantID:       tenant.ID,
			Name:           "Vikram Malhotra",
			Slug:           "vikram",
			Specialty:      "Strength & Conditioning",
			Experience:     "8+ years",
			Certifications: "NASM-CPT, CSCS",
			Bio:            "Specializes in building strength and muscle gain with personalized training programs.",
			Email:          "vikram@maximalgym.com",
			Phone:          "+91 9876543211",
			Availability: model.Availability{
				{Day: "monday", Slots: []string{"6am", "8am", "4pm", "6pm"}},
				{Day: "wednesday", Slots: []string{"6am", "8am", "4pm", "6pm"}},
				{Day: "friday", Slots: []string{"6am", "8am", "4pm", "6pm"}},
			},
			Rating:        4.8,
			TotalSessions: 325,
			IsActive:      true,
		},
		{
			TenantID:       tenant.ID,
			Name:           "Anjali Gupta",
			Slug:           "priya",
			Specialty:      "Yoga & Mindfulness",
			Experience:     "10+ years",
			Certifications: "RYT-500, Yoga Alliance",
			Bio:            "Expert in yoga, flexibility, and mindfulness practices for holistic wellness.",
			Email:          "anjali@maximalgym.com",
			Phone:          "+91 9876543212",
			Availability: model.Availability{
				{Day: "tuesday", Slots: []string{"6am", "8am", "10am"}},
				{Day: "thursday", Slots: []string{"6am", "8am", "10am"}},
				{Day: "saturday", Slots: []string{"8am", "10am"}},
			},
			Rating:        4.9,
			TotalSessions: 450,
			IsActive:      true,
		},
		{
			TenantID:       tenant.ID,
			Name:           "Arjun Nair",
			Slug:           "arjun",
			Specialty:      "Nutrition & Weight Management",
			Experience:     "6+ years",
			Certifications: "Precision Nutrition L2",
			Bio:            "Helps members reach their goals with sustainable nutrition and training plans.",
			Email:          "arjun@maximalgym.com",
			Phone:          "+91 9876543213",
			Availability: model.Availability{
				{Day: "monday", Slots: []string{"10am", "6pm", "8pm"}},
				{Day: "thursday", Slots: []string{"10am", "6pm", "8pm"}},
			},
			Rating:        4.7,
			TotalSessions: 210,
			IsActive:      true,
		},
	}
	for i := range coaches {
		if err := db.Where(model.Coach{TenantID: tenant.ID, Slug: coaches[i].Slug}).
			FirstOrCreate(&coaches[i]).Error; err != nil {
			log.Fatal("Failed to seed coach", zap.String("slug", coaches[i].Slug), zap.Error(err))
		}
	}
	log.Info("Seeded coaches", zap.Int("count", len(coaches)))

	faqs := []model.FAQ{
		{
			TenantID: tenant.ID,
			Question: "What are your opening hours?",
			Answer:   "We are open 24/7.",
			Category: model.FAQGeneral,
			Order:    1,
			IsActive: true,
		},
		{
			TenantID: tenant.ID,
			Question: "Do you offer personal training?",
			Answer:   "Yes, all our coaches offer one-on-one personal training sessions.",
			Category: model.FAQTraining,
			Order:    2,
			IsActive: true,
		},
		{
			TenantID: tenant.ID,
			Question: "Can I freeze my membership?",
			Answer:   "Memberships can be frozen for up to 3 months per year.",
			Category: model.FAQMembership,
			Order:    3,
			IsActive: true,
		},
	}
	for i := range faqs {
		if err := db.Where(model.FAQ{TenantID: tenant.ID, Question: faqs[i].Question}).
			FirstOrCreate(&faqs[i]).Error; err != nil {
			log.Fatal("Failed to seed FAQ", zap.Error(err))
		}
	}
	log.Info("Seeded FAQs", zap.Int("count", len(faqs)))

	log.Info("Seeding complete",
		zap.String("tenant_id", tenant.ID),
		zap.String("admin_email", admin.Email))
}
