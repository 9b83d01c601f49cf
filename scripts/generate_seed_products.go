package main

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

type seedProduct struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Price       string  `json:"price"`
	Category    string  `json:"category"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	Stock       int     `json:"stock"`
}

func str(s string) *string { return &s }

// generateSeedProducts writes a gzipped JSONL catalogue seed file that the
// API server can load at startup via SEED_ENABLED/SEED_FILE.
func main() {
	dataDir := "data/seeds"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	products := []seedProduct{
		{Name: "Walnut Desk Organiser", Description: str("Five-compartment organiser in oiled walnut"), Price: "34.99", Category: "office", Stock: 120},
		{Name: "Ceramic Pour-Over Set", Description: str("Dripper, carafe and filter holder"), Price: "48.50", Category: "kitchen", Stock: 45},
		{Name: "Linen Throw Blanket", Description: str("Stonewashed linen, 130x170cm"), Price: "79.00", Category: "home", Stock: 60},
		{Name: "Brass Desk Lamp", Description: str("Adjustable arm, warm LED"), Price: "112.00", Category: "office", Stock: 25},
		{Name: "Stoneware Mug", Price: "14.99", Category: "kitchen", Stock: 300},
		{Name: "Canvas Tote Bag", Description: str("Heavyweight 16oz canvas"), Price: "22.49", Category: "accessories", Stock: 150},
		{Name: "Cork Yoga Mat", Description: str("Natural cork surface on rubber base"), Price: "64.00", Category: "fitness", Stock: 40},
		{Name: "Glass Water Carafe", Price: "19.99", Category: "kitchen", Stock: 85},
	}

	path := filepath.Join(dataDir, "products.jsonl.gz")
	file, err := os.Create(path)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", path, err)
	}
	defer file.Close()

	gz := gzip.NewWriter(file)
	defer gz.Close()

	enc := json.NewEncoder(gz)
	for _, p := range products {
		if err := enc.Encode(p); err != nil {
			log.Fatalf("Failed to encode product %q: %v", p.Name, err)
		}
	}

	fmt.Printf("Wrote %d products to %s\n", len(products), path)
}
