package seed

import (
	"log"

	"golang.org/x/crypto/bcrypt"

	"cords_connector/internal/models"
	"cords_connector/internal/store"
)

// Admin makes sure a bootstrap admin user exists so the token-gated policy
// endpoints are reachable on a fresh install.
func Admin(users *store.Users, email, password string) {
	existing, err := users.ByEmail(email)
	if err != nil {
		log.Fatalf("❌ Seed lookup failed: %v", err)
	}
	if existing != nil {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("❌ Seed hash failed: %v", err)
	}

	user := models.User{
		UserID: models.HashedID(map[string]interface{}{
			"email": email,
		}),
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    "CORDS",
		LastName:     "Admin",
		Role:         "admin",
		Timestamp:    models.Timestamp(),
	}
	if err := users.Add(&user); err != nil {
		log.Fatalf("❌ Seed insert failed: %v", err)
	}
	log.Printf("✅ Seeded admin user %s", email)
}
