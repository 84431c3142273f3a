package main

import (
	"fmt"
	"os"

	"quickzone-backend/database"
	"quickzone-backend/services/tracking"
)

func main() {
	if len(os.Args) < 2 || os.Args[1] != "backfill" {
		fmt.Println("Usage:")
		fmt.Println("  go run tools/backfill.go backfill - Seed tracking history for parcels created before history existed")
		return
	}

	fmt.Println("🚀 Backfilling parcel tracking history...")

	db, err := database.InitDB()
	if err != nil {
		fmt.Printf("❌ Failed to connect to the database: %v\n", err)
		os.Exit(1)
	}

	inserted, err := tracking.NewHistoryStore(db).Backfill()
	if err != nil {
		fmt.Printf("❌ Backfill failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Backfill completed, %d history rows inserted\n", inserted)
}
