package main

import (
	"compress/gzip"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// generateSampleSellers creates sample seller roster files for local
// development. The roster is the union of every configured file, so a seller
// only needs to appear in one of them to be checkout-eligible.
func main() {
	dataDir := "data/sellers"

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	rosters := map[string][]string{
		"roster.gz": {
			"seller-a",
			"seller-b",
			"seller-c",
			"acme-retail",
			"northwind-traders",
		},
		"roster-regional.gz": {
			"seller-c",
			"mekong-wholesale",
			"hanoi-books",
		},
	}

	for filename, sellerIDs := range rosters {
		filePath := filepath.Join(dataDir, filename)

		if err := createRosterFile(filePath, sellerIDs); err != nil {
			log.Fatalf("Failed to create %s: %v", filename, err)
		}

		fmt.Printf("Created %s with %d sellers\n", filePath, len(sellerIDs))
	}

	fmt.Println("\nSample roster files created successfully!")
	fmt.Println("Set SELLER_ROSTER_FILES=data/sellers/roster.gz,data/sellers/roster-regional.gz")
	fmt.Println("to load both; any seller listed in either file can receive orders.")
}

func createRosterFile(filePath string, sellerIDs []string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	for _, id := range sellerIDs {
		if _, err := fmt.Fprintf(gzipWriter, "%s\n", id); err != nil {
			return fmt.Errorf("failed to write seller id: %w", err)
		}
	}

	return nil
}
