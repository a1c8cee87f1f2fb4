// seed crea cuentas de prueba para desarrollo: un super admin, un admin con
// flags, un vendor aprobado y un vendor pendiente.
//
// Uso: go run ./cmd/seed  (lee la misma configuración que el servidor)
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/vendorhub/portal-api/internal/domain/entity"
	"github.com/vendorhub/portal-api/internal/infrastructure/postgres"
	"github.com/vendorhub/portal-api/pkg/config"
)

const seedPassword = "password123"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail("cargar configuración: %v", err)
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fail("conexión a PostgreSQL: %v", err)
	}
	defer pool.Close()

	repo := postgres.NewAccountRepository(pool)
	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		fail("hashear password: %v", err)
	}
	now := time.Now()

	superAdmin := &entity.Account{
		ID:           uuid.New().String(),
		Name:         "Super Admin",
		Email:        "superadmin@example.com",
		PasswordHash: string(hash),
		Role:         entity.RoleSuperAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	seedAccount(ctx, repo, superAdmin)

	admin := &entity.Account{
		ID:           uuid.New().String(),
		Name:         "Admin User",
		Email:        "admin@example.com",
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
		Designation:  "Operations Manager",
		FeatureFlags: &entity.FeatureFlags{ManageVendors: true, ManageOrders: true},
		ApprovedAt:   &now,
		ApprovedByID: &superAdmin.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	seedAccount(ctx, repo, admin)

	approvedVendor := &entity.Account{
		ID:           uuid.New().String(),
		Name:         "Approved Vendor",
		Email:        "vendor@example.com",
		PasswordHash: string(hash),
		Role:         entity.RoleVendor,
		CompanyName:  "Acme Corp",
		PhoneNumber:  "+1234567890",
		Address:      "123 Business St, City, State 12345",
		Website:      "https://acmecorp.com",
		TaxID:        "TAX123456",
		ApprovedAt:   &now,
		ApprovedByID: &admin.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	seedAccount(ctx, repo, approvedVendor)

	pendingVendor := &entity.Account{
		ID:           uuid.New().String(),
		Name:         "Pending Vendor",
		Email:        "pending@example.com",
		PasswordHash: string(hash),
		Role:         entity.RoleVendor,
		CompanyName:  "New Business LLC",
		PhoneNumber:  "+9876543210",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	seedAccount(ctx, repo, pendingVendor)

	fmt.Println("Seed completo. Credenciales de prueba (password: password123):")
	fmt.Println("  superadmin@example.com / admin@example.com / vendor@example.com")
	fmt.Println("  pending@example.com (no puede loguearse hasta ser aprobado)")
}

func seedAccount(ctx context.Context, repo *postgres.AccountRepo, a *entity.Account) {
	existing, err := repo.GetByEmail(ctx, a.Email)
	if err != nil {
		fail("buscar %s: %v", a.Email, err)
	}
	if existing != nil {
		fmt.Printf("ya existe: %s\n", a.Email)
		return
	}
	if err := repo.Create(ctx, a); err != nil {
		fail("crear %s: %v", a.Email, err)
	}
	fmt.Printf("creada: %s (%s)\n", a.Email, a.Role)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
