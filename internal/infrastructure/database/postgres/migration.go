// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/your-org/audiosynthese-backend/internal/domain/catalog"
	"github.com/your-org/audiosynthese-backend/internal/domain/checkout"
	"github.com/your-org/audiosynthese-backend/internal/domain/customer"
	"github.com/your-org/audiosynthese-backend/internal/domain/inventory"
	"github.com/your-org/audiosynthese-backend/internal/domain/invoice"
	"github.com/your-org/audiosynthese-backend/internal/domain/user"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Dependency order: accounts and catalog first, then invoicing
	models := []interface{}{
		&user.User{},
		&customer.Customer{},

		&catalog.Product{},
		&catalog.ProductColor{},

		&invoice.Invoice{},
		&invoice.InvoiceLine{},

		&inventory.StockMovement{},
		&checkout.Attempt{},
	}

	for _, model := range models {
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed")
	return nil
}

// CreateIndexes creates additional indexes that auto-migration does not cover
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		// invoice number allocation scans by prefix, newest first
		"CREATE INDEX IF NOT EXISTS idx_invoices_number_desc ON invoices (invoice_number DESC)",
		"CREATE INDEX IF NOT EXISTS idx_invoices_customer_created ON invoices (customer_id, created_at DESC)",

		// guest resolution and account linking look customers up by email
		"CREATE INDEX IF NOT EXISTS idx_customers_email ON customers (email)",
		"CREATE INDEX IF NOT EXISTS idx_customers_auth_user ON customers (auth_user_id) WHERE auth_user_id IS NOT NULL",

		"CREATE INDEX IF NOT EXISTS idx_products_category_active ON products (category, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_stock_movements_product ON stock_movements (product_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_stock_movements_invoice ON stock_movements (ref_invoice_id)",
	}

	for _, index := range indexes {
		if err := m.db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	log.Println("✅ Additional indexes created")
	return nil
}

// SeedInitialData seeds the catalog for development
func (m *Migration) SeedInitialData() error {
	var count int64
	if err := m.db.Model(&catalog.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		log.Println("ℹ️ Catalog already seeded, skipping")
		return nil
	}

	log.Println("🔄 Seeding catalog...")

	products := []catalog.Product{
		// vitrine: shown on the site, ordered in store only
		{
			Brand:       "Focal",
			Name:        "Aria Evo X N°2",
			Slug:        "focal-aria-evo-x-n2",
			Description: "Enceinte colonne 3 voies, membrane lin et fibre de verre.",
			Category:    catalog.CategorySpeakers,
			PriceCents:  149900,
			StockQty:    2,
			IsActive:    true,
			IsFeatured:  true,
		},
		{
			Brand:       "Atoll",
			Name:        "IN200 Signature",
			Slug:        "atoll-in200-signature",
			Description: "Amplificateur intégré 2x120W, double alimentation torique.",
			Category:    catalog.CategoryAmplifiers,
			PriceCents:  169900,
			StockQty:    1,
			IsActive:    true,
			IsFeatured:  true,
		},
		{
			Brand:       "Denafrips",
			Name:        "Ares 15th",
			Slug:        "denafrips-ares-15th",
			Description: "DAC R2R discret, entrées USB, coaxiale et optique.",
			Category:    catalog.CategoryDAC,
			PriceCents:  89900,
			StockQty:    3,
			IsActive:    true,
		},
		{
			Brand:       "Audeze",
			Name:        "LCD-X",
			Slug:        "audeze-lcd-x",
			Description: "Casque planaire ouvert, fabrication californienne.",
			Category:    catalog.CategoryHeadphones,
			PriceCents:  129900,
			StockQty:    2,
			IsActive:    true,
		},

		// orderable online
		{
			Brand:       "AudioQuest",
			Name:        "Rocket 33 3m",
			Slug:        "audioquest-rocket-33-3m",
			Description: "Paire de câbles HP, conducteurs cuivre PSC, 3 mètres.",
			Category:    catalog.CategoryCables,
			PriceCents:  24900,
			StockQty:    12,
			IsActive:    true,
			Colors: []catalog.ProductColor{
				{ColorName: "Noir", ColorCode: "#1a1a1a", StockQty: 8, IsActive: true},
				{ColorName: "Rouge", ColorCode: "#b3252a", StockQty: 4, IsActive: true},
			},
		},
		{
			Brand:       "Oyaide",
			Name:        "Tunami Terzo XX 1m",
			Slug:        "oyaide-tunami-terzo-xx-1m",
			Description: "Câble de modulation XLR blindé, 1 mètre.",
			Category:    catalog.CategoryCables,
			PriceCents:  39900,
			StockQty:    6,
			IsActive:    true,
		},
		{
			Brand:       "IsoAcoustics",
			Name:        "Gaia II",
			Slug:        "isoacoustics-gaia-ii",
			Description: "Pieds découplants pour enceintes, lot de 4.",
			Category:    catalog.CategoryAccessories,
			PriceCents:  34900,
			StockQty:    10,
			IsActive:    true,
		},
		{
			Brand:       "Audioquest",
			Name:        "JitterBug FMJ",
			Slug:        "audioquest-jitterbug-fmj",
			Description: "Filtre USB contre le bruit haute fréquence.",
			Category:    catalog.CategoryAccessories,
			PriceCents:  7900,
			StockQty:    20,
			IsActive:    true,
		},
	}

	for i := range products {
		if err := m.db.Create(&products[i]).Error; err != nil {
			return fmt.Errorf("failed to seed product %s: %w", products[i].Slug, err)
		}
	}

	log.Printf("✅ Seeded %d products", len(products))
	return nil
}

// GetTableInfo prints row counts for the main tables
func (m *Migration) GetTableInfo() {
	tables := []string{"users", "customers", "products", "product_colors", "invoices", "invoice_lines", "stock_movements", "checkout_attempts"}

	log.Println("📊 Table information:")
	for _, table := range tables {
		var count int64
		if err := m.db.Table(table).Count(&count).Error; err != nil {
			log.Printf("   %s: error (%v)", table, err)
			continue
		}
		log.Printf("   %s: %d rows", table, count)
	}
}
