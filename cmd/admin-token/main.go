package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/noah-isme/contoso-university-api/internal/models"
	"github.com/noah-isme/contoso-university-api/internal/service"
	"github.com/noah-isme/contoso-university-api/pkg/config"
)

// admin-token prints a bearer token signed with JWT_SECRET for calling the
// mutating endpoints when AUTH_ENABLED=true.
func main() {
	var (
		subject string
		role    string
	)

	flag.StringVar(&subject, "subject", "registrar", "Token subject")
	flag.StringVar(&role, "role", string(models.RoleAdmin), "Token role (ADMIN or VIEWER)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	parsed := models.Role(strings.ToUpper(strings.TrimSpace(role)))
	if parsed != models.RoleAdmin && parsed != models.RoleViewer {
		log.Fatalf("unknown role %q", role)
	}

	token, expiresAt, err := service.NewAuthService(cfg.Auth).IssueToken(subject, parsed)
	if err != nil {
		log.Fatalf("failed to issue token: %v", err)
	}

	fmt.Println(token)
	log.Printf("token for %s (%s) expires at %s", subject, parsed, expiresAt.Format("2006-01-02T15:04:05Z07:00"))
}
