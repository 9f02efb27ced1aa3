package config

import (
	"database/sql"
	"log"

	"golang.org/x/crypto/bcrypt"
)

type seedUser struct {
	Name     string
	Email    string
	Phone    string
	Aadhaar  string
	Password string
	Role     string
}

var defaultUsers = []seedUser{
	{Name: "Admin User", Email: "admin@yatrasathi.com", Phone: "9999999999", Aadhaar: "999999999999", Password: "Admin@123", Role: "ADMIN"},
	{Name: "Employee One", Email: "employee1@yatrasathi.com", Phone: "8888888888", Aadhaar: "888888888888", Password: "Emp@123", Role: "EMPLOYEE"},
	{Name: "Customer One", Email: "customer1@yatrasathi.com", Phone: "7777777777", Aadhaar: "777777777777", Password: "Cust@123", Role: "CUSTOMER"},
}

// SeedDefaults inserts the default accounts when they are missing so a fresh
// install is usable immediately.
func SeedDefaults(db *sql.DB) {
	for _, u := range defaultUsers {
		var exists int
		if err := db.QueryRow(`SELECT COUNT(*) FROM users WHERE email = ?`, u.Email).Scan(&exists); err != nil {
			log.Printf("seed: check %s failed: %v", u.Email, err)
			continue
		}
		if exists > 0 {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("seed: hash for %s failed: %v", u.Email, err)
			continue
		}
		if _, err := db.Exec(`
			INSERT INTO users (name, email, phone, aadhaar, password_hash, role, active)
			VALUES (?, ?, ?, ?, ?, ?, 1)
		`, u.Name, u.Email, u.Phone, u.Aadhaar, string(hash), u.Role); err != nil {
			log.Printf("seed: insert %s failed: %v", u.Email, err)
			continue
		}
		log.Printf("seed: created default %s account %s", u.Role, u.Email)
	}
}
