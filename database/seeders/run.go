// Package seeders fills a fresh install with the accounts and demo
// inventory the dashboard needs to be usable. Seeders register
// themselves from init() and run in registration order via the seed
// CLI commands.
package seeders

import (
	"fmt"
	"sync"

	"gorm.io/gorm"
)

// SeederFunc seeds one slice of data. Seeders must be safe to re-run;
// existing rows are skipped, not duplicated.
type SeederFunc func(db *gorm.DB) error

type seeder struct {
	name string
	fn   SeederFunc
}

var (
	mu       sync.Mutex
	registry []seeder
)

// Register adds a seeder under a short name ("users", "products").
func Register(name string, fn SeederFunc) {
	mu.Lock()
	defer mu.Unlock()
	registry = append(registry, seeder{name: name, fn: fn})
}

// RunAll runs every registered seeder, stopping at the first failure.
func RunAll(db *gorm.DB) error {
	mu.Lock()
	pending := make([]seeder, len(registry))
	copy(pending, registry)
	mu.Unlock()

	for _, s := range pending {
		fmt.Printf("  seeding %s ... ", s.name)
		if err := s.fn(db); err != nil {
			fmt.Println("FAILED")
			return fmt.Errorf("seeder %q: %w", s.name, err)
		}
		fmt.Println("done")
	}
	return nil
}
