// Command create-admin provisions (or resets the password of) an admin
// identity directly against the database. Elevated roles are never granted
// through the public registration endpoint, so this is the way to bootstrap
// the first admin on an existing installation.
package main

import (
	"flag"

	"go-inventory-ledger/internal/config"
	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/pkg/database"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	name := flag.String("name", "Administrator", "display name for the admin identity")
	email := flag.String("email", "", "admin email (defaults to ADMIN_EMAIL)")
	password := flag.String("password", "", "admin password (defaults to ADMIN_PASSWORD)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}
	if *email == "" {
		*email = cfg.AdminEmail
	}
	if *password == "" {
		*password = cfg.AdminPassword
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}

	normalized := model.NormalizeEmail(*email)
	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Fatal("failed to hash password")
	}

	var user model.User
	if err := db.Where("email = ?", normalized).First(&user).Error; err == nil {
		// Existing identity: reset password, promote to admin, reactivate.
		updates := map[string]interface{}{
			"password":  string(hashed),
			"role":      model.RoleAdmin,
			"is_active": true,
		}
		if err := db.Model(&user).Updates(updates).Error; err != nil {
			logrus.WithError(err).Fatal("failed to update admin identity")
		}
		logrus.WithField("email", normalized).Info("admin identity updated")
		return
	}

	user = model.User{
		Name:     *name,
		Email:    normalized,
		Password: string(hashed),
		Role:     model.RoleAdmin,
		IsActive: true,
	}
	if err := db.Create(&user).Error; err != nil {
		logrus.WithError(err).Fatal("failed to create admin identity")
	}
	logrus.WithField("email", normalized).Info("admin identity created")
}
