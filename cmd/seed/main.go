// Dev database seeder. Reads fixture data from a YAML file and upserts
// it, hashing user passwords on the way in. Never run against production.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

type seedFile struct {
	Companies []companyEntry  `yaml:"companies"`
	Users     []userEntry     `yaml:"users"`
	Customers []customerEntry `yaml:"customers"`
	Items     []itemEntry     `yaml:"items"`
}

type companyEntry struct {
	ID      string  `yaml:"id"`
	Name    string  `yaml:"name"`
	Address *string `yaml:"address"`
	Phone   *string `yaml:"phone"`
}

type userEntry struct {
	ID        string `yaml:"id"`
	CompanyID string `yaml:"company_id"`
	Email     string `yaml:"email"`
	Password  string `yaml:"password"`
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	IsAdmin   bool   `yaml:"is_admin"`
}

type customerEntry struct {
	ID          string  `yaml:"id"`
	CompanyID   string  `yaml:"company_id"`
	Name        string  `yaml:"name"`
	ContactName *string `yaml:"contact_name"`
	Email       *string `yaml:"email"`
	Phone       *string `yaml:"phone"`
	Address     *string `yaml:"address"`
}

type itemEntry struct {
	ID          string  `yaml:"id"`
	CompanyID   string  `yaml:"company_id"`
	SKU         string  `yaml:"sku"`
	Name        string  `yaml:"name"`
	Description *string `yaml:"description"`
	Unit        string  `yaml:"unit"`
	UnitCost    float64 `yaml:"unit_cost"`
}

func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	seedPath := os.Getenv("SEED_FILE")
	if seedPath == "" {
		seedPath = "seeds/dev.yaml"
	}

	data, err := os.ReadFile(seedPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read seed file: %v\n", err)
		os.Exit(1)
	}

	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		fmt.Fprintf(os.Stderr, "parse seed file: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	fmt.Println("Seeding quotehub database...")

	fmt.Printf("  Inserting %d companies...\n", len(seed.Companies))
	for _, c := range seed.Companies {
		_, err := pool.Exec(ctx,
			`INSERT INTO companies (id, name, address, phone) VALUES ($1, $2, $3, $4)
			 ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, address = EXCLUDED.address, phone = EXCLUDED.phone`,
			c.ID, c.Name, c.Address, c.Phone)
		if err != nil {
			fmt.Fprintf(os.Stderr, "insert company %s: %v\n", c.ID, err)
			os.Exit(1)
		}
	}

	fmt.Printf("  Inserting %d users...\n", len(seed.Users))
	for _, u := range seed.Users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			fmt.Fprintf(os.Stderr, "hash password for %s: %v\n", u.Email, err)
			os.Exit(1)
		}
		_, err = pool.Exec(ctx,
			`INSERT INTO users (id, company_id, email, password_hash, first_name, last_name, is_admin)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email, password_hash = EXCLUDED.password_hash, is_admin = EXCLUDED.is_admin`,
			u.ID, u.CompanyID, u.Email, string(hash), u.FirstName, u.LastName, u.IsAdmin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "insert user %s: %v\n", u.ID, err)
			os.Exit(1)
		}
	}

	fmt.Printf("  Inserting %d customers...\n", len(seed.Customers))
	for _, c := range seed.Customers {
		_, err := pool.Exec(ctx,
			`INSERT INTO customers (id, company_id, name, contact_name, email, phone, address)
			 VALUES ($1, $2, $3, $4, $5, $6, $7) ON CONFLICT (id) DO NOTHING`,
			c.ID, c.CompanyID, c.Name, c.ContactName, c.Email, c.Phone, c.Address)
		if err != nil {
			fmt.Fprintf(os.Stderr, "insert customer %s: %v\n", c.ID, err)
			os.Exit(1)
		}
	}

	fmt.Printf("  Inserting %d items...\n", len(seed.Items))
	for _, i := range seed.Items {
		_, err := pool.Exec(ctx,
			`INSERT INTO items (id, company_id, sku, name, description, unit, unit_cost)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT (company_id, sku) DO UPDATE SET name = EXCLUDED.name, unit_cost = EXCLUDED.unit_cost`,
			i.ID, i.CompanyID, i.SKU, i.Name, i.Description, i.Unit, i.UnitCost)
		if err != nil {
			fmt.Fprintf(os.Stderr, "insert item %s: %v\n", i.ID, err)
			os.Exit(1)
		}
	}

	fmt.Println("Done.")
}
