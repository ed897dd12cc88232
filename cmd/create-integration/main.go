package main

import (
	"flag"
	"fmt"

	"github.com/franciscosanchezn/gin-pizzeria-orders/internal/config"
	"github.com/franciscosanchezn/gin-pizzeria-orders/internal/database"
	"github.com/franciscosanchezn/gin-pizzeria-orders/internal/models"
	"github.com/franciscosanchezn/gin-pizzeria-orders/internal/services"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	// Parse command line flags
	role := flag.String("role", models.RoleAdmin, "Staff role (admin or staff)")
	email := flag.String("email", "", "Staff member email (defaults to <role>@pizzeria.local)")
	name := flag.String("name", "", "Integration name")
	domain := flag.String("domain", "http://localhost", "Integration domain")
	scopes := flag.String("scopes", "deliveries", "Space-separated scopes")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}

	conf, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	db, err := database.InitDatabase(conf.Database())
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}

	if *email == "" {
		*email = fmt.Sprintf("%s@pizzeria.local", *role)
	}
	if *name == "" {
		*name = fmt.Sprintf("Delivery %s integration", *role)
	}

	service := services.NewIntegrationService(db)

	// Get or create staff member with specified role
	member, err := service.EnsureStaffMember(*email, fmt.Sprintf("%s staff", *role), *role)
	if err != nil {
		log.Fatal("Failed to get staff member: ", err)
	}
	if member.Role != *role {
		log.Warnf("Staff member %s already exists with role '%s'", member.Email, member.Role)
	}

	client, secret, err := service.CreateIntegration(*name, *domain, *scopes, member.ID)
	if err != nil {
		log.Fatal("Failed to create integration: ", err)
	}

	fmt.Printf("✓ OAuth client created for %s (role '%s')\n", member.Email, member.Role)
	fmt.Printf("Client ID: %s\n", client.ID)
	fmt.Printf("Client Secret: %s\n", secret)
	fmt.Println("\nThe secret is shown only once. Request a token with:")
	fmt.Printf("curl -X POST http://%s:%d/oauth/token \\\n", conf.Host, conf.Port)
	fmt.Printf("  -d 'grant_type=client_credentials' \\\n")
	fmt.Printf("  -d 'client_id=%s' \\\n", client.ID)
	fmt.Printf("  -d 'client_secret=%s'\n", secret)
}
