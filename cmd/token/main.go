// Command token emite un JWT de desarrollo firmado con JWT_SECRET para probar la API.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/jhoicas/Bodegas-api/internal/domain/entity"
	"github.com/jhoicas/Bodegas-api/pkg/config"
	"github.com/jhoicas/Bodegas-api/pkg/jwt"
)

func main() {
	userID := flag.String("user", "", "user_id del token")
	companyID := flag.String("company", "", "company_id (vacío para admin)")
	role := flag.String("role", entity.RoleManager, "manager | supervisor | vendor | admin")
	exp := flag.Int("exp", 0, "minutos de vigencia (0 = JWT_EXPIRATION_MINUTES)")
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	if *userID == "" || !entity.IsValidRole(*role) {
		fmt.Fprintln(os.Stderr, "uso: token -user <id> [-company <id>] -role manager|supervisor|vendor|admin")
		os.Exit(2)
	}
	minutes := *exp
	if minutes <= 0 {
		minutes = cfg.JWT.Expiration
	}
	tok, err := jwt.Generate(cfg.JWT.Secret, *userID, *companyID, *role, cfg.JWT.Issuer, minutes)
	if err != nil {
		fmt.Fprintln(os.Stderr, "generar token:", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
