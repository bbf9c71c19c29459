package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

// Seeds the dashboard metric tables with the rows the UI expects, one set per
// period. Running twice is safe: rows are matched by name and period.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to connect db: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("failed to ping db: %v", err)
	}

	now := time.Now()
	for _, period := range []string{"weekly", "annual"} {
		seedPerformance(db, period, now)
		seedCustomerService(db, period, now)
		seedSatisfaction(db, period, now)
	}

	fmt.Println("Seed completed")
}

func seedPerformance(db *sql.DB, period string, now time.Time) {
	names := []string{
		"call answer rate",
		"inquiry resolution rate",
		"maintenance completion rate",
		"complaint resolution rate",
	}
	for _, name := range names {
		upsert(db, `
			INSERT INTO performance_metrics (id, metric_name, period_type, value, target, change, is_positive, target_achieved, created_at, updated_at)
			SELECT $1, $2, $3, 0, 100, 0, true, false, $4, $4
			WHERE NOT EXISTS (SELECT 1 FROM performance_metrics WHERE metric_name = $2 AND period_type = $3)`,
			uuid.New().String(), name, period, now)
	}
}

func seedCustomerService(db *sql.DB, period string, now time.Time) {
	counters := map[string][]string{
		"calls":       {"answered", "missed", "total"},
		"inquiries":   {"received", "resolved", "pending"},
		"maintenance": {"opened", "closed", "in progress"},
	}
	for category, names := range counters {
		for _, name := range names {
			upsert(db, `
				INSERT INTO customer_service_metrics (id, category, metric_name, period_type, value, created_at, updated_at)
				SELECT $1, $2, $3, $4, 0, $5, $5
				WHERE NOT EXISTS (SELECT 1 FROM customer_service_metrics WHERE category = $2 AND metric_name = $3 AND period_type = $4)`,
				uuid.New().String(), category, name, period, now)
		}
	}
}

func seedSatisfaction(db *sql.DB, period string, now time.Time) {
	categories := []string{"call center", "maintenance", "handover", "overall"}
	for _, category := range categories {
		upsert(db, `
			INSERT INTO customer_satisfaction (id, category, period_type, very_pleased, pleased, neutral, displeased, very_displeased, total_score, created_at, updated_at)
			SELECT $1, $2, $3, 0, 0, 0, 0, 0, 0, $4, $4
			WHERE NOT EXISTS (SELECT 1 FROM customer_satisfaction WHERE category = $2 AND period_type = $3)`,
			uuid.New().String(), category, period, now)
	}
}

func upsert(db *sql.DB, query string, args ...interface{}) {
	if _, err := db.Exec(query, args...); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}
