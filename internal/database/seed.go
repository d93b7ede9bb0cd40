package database

import (
	"context"
	"database/sql"
	"log"

	"github.com/kitswap/kitswap-backend/internal/model"
	"github.com/kitswap/kitswap-backend/internal/utils"
)

// Seed inserts the default accounts and the catalog taxonomy when they are
// missing. It never overwrites existing rows, so it is safe to run on every
// startup.
func Seed(ctx context.Context, db *sql.DB, bcryptCost int) error {
	if err := seedUsers(ctx, db, bcryptCost); err != nil {
		return err
	}
	return seedTaxonomy(ctx, db)
}

type seedUser struct {
	email, password, first, last, phone string
	role                                model.Role
	suburb, town, province              string
}

func seedUsers(ctx context.Context, db *sql.DB, cost int) error {
	seeds := []seedUser{
		{"admin@kitswap.co.za", "admin123", "Admin", "User", "0000000000", model.RoleAdmin, "N/A", "N/A", "N/A"},
		{"pieter@buyer.co.za", "password123", "Pieter", "Buyer", "0811234567", model.RoleBuyer, "Sandton", "Johannesburg", "Gauteng"},
		{"susan@seller.co.za", "password123", "Susan", "Seller", "0829876543", model.RoleSeller, "Stellenbosch", "Cape Town", "Western Cape"},
	}
	for _, s := range seeds {
		var exists int
		err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE email=?", s.email).Scan(&exists)
		if err != nil {
			return err
		}
		if exists > 0 {
			continue
		}
		hash, err := utils.HashPassword(s.password, cost)
		if err != nil {
			return err
		}
		// Sellers start unverified and pending review; everyone else is
		// considered pre-verified.
		verification := model.VerificationVerified
		verified := true
		if s.role == model.RoleSeller {
			verification = model.VerificationPending
			verified = false
		}
		_, err = db.ExecContext(ctx,
			`INSERT INTO users (email, password_hash, first_name, last_name, phone, user_type,
				suburb, town, province, status, seller_verified, verification_status)
			 VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
			s.email, hash, s.first, s.last, s.phone, s.role.String(),
			s.suburb, s.town, s.province, model.StatusActive, verified, verification)
		if err != nil {
			return err
		}
		log.Printf("seeded user %s (%s)", s.email, s.role)
	}
	return nil
}

func seedTaxonomy(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	uniformsID, err := insertCategory(ctx, db, "School Uniforms", "school-uniforms", "shirt")
	if err != nil {
		return err
	}
	sportsID, err := insertCategory(ctx, db, "Sports Kit", "sports-kit", "trophy")
	if err != nil {
		return err
	}

	boysID, err := insertSubcategory(ctx, db, uniformsID, "Boys", "boys")
	if err != nil {
		return err
	}
	girlsID, err := insertSubcategory(ctx, db, uniformsID, "Girls", "girls")
	if err != nil {
		return err
	}

	sports := map[string]uint64{}
	for _, s := range []struct{ name, slug, icon string }{
		{"Rugby", "rugby", "rugby-ball"},
		{"Cricket", "cricket", "cricket-bat"},
		{"Netball", "netball", "netball"},
		{"Hockey", "hockey", "hockey-stick"},
	} {
		res, err := db.ExecContext(ctx,
			"INSERT INTO sports (name, slug, icon) VALUES (?,?,?)", s.name, s.slug, s.icon)
		if err != nil {
			return err
		}
		id, _ := res.LastInsertId()
		sports[s.slug] = uint64(id)
	}

	types := []struct {
		categoryID, subcategoryID, sportID uint64 // zero means NULL
		name, slug                         string
	}{
		{uniformsID, boysID, 0, "Blazer", "boys-blazer"},
		{uniformsID, boysID, 0, "Shorts", "boys-shorts"},
		{uniformsID, girlsID, 0, "Dress", "girls-dress"},
		{uniformsID, girlsID, 0, "Blouse", "girls-blouse"},
		{sportsID, 0, sports["rugby"], "Rugby Jersey", "rugby-jersey"},
		{sportsID, 0, sports["cricket"], "Cricket Whites", "cricket-whites"},
		{sportsID, 0, sports["netball"], "Netball Skirt", "netball-skirt"},
		{sportsID, 0, sports["hockey"], "Hockey Shirt", "hockey-shirt"},
	}
	for _, t := range types {
		_, err := db.ExecContext(ctx,
			"INSERT INTO item_types (category_id, subcategory_id, sport_id, name, slug) VALUES (?,?,?,?,?)",
			t.categoryID, nullable(t.subcategoryID), nullable(t.sportID), t.name, t.slug)
		if err != nil {
			return err
		}
	}
	log.Println("seeded catalog taxonomy")
	return nil
}

func insertCategory(ctx context.Context, db *sql.DB, name, slug, icon string) (uint64, error) {
	res, err := db.ExecContext(ctx,
		"INSERT INTO categories (name, slug, icon) VALUES (?,?,?)", name, slug, icon)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return uint64(id), err
}

func insertSubcategory(ctx context.Context, db *sql.DB, categoryID uint64, name, slug string) (uint64, error) {
	res, err := db.ExecContext(ctx,
		"INSERT INTO subcategories (category_id, name, slug) VALUES (?,?,?)", categoryID, name, slug)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return uint64(id), err
}

func nullable(id uint64) any {
	if id == 0 {
		return nil
	}
	return id
}
