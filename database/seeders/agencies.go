package seeders

import (
	"log"

	"quickzone-backend/models/agency"

	"gorm.io/gorm"
)

func SeedAgencies(db *gorm.DB) {
	log.Printf("🔍 Checking agency data integrity...")

	agencies := []agency.Agency{
		{Name: "QuickZone Tunis", City: "Tunis", Governorate: "Tunis"},
		{Name: "QuickZone Ariana", City: "Ariana", Governorate: "Ariana"},
		{Name: "QuickZone Ben Arous", City: "Ben Arous", Governorate: "Ben Arous"},
		{Name: "QuickZone Nabeul", City: "Nabeul", Governorate: "Nabeul"},
		{Name: "QuickZone Bizerte", City: "Bizerte", Governorate: "Bizerte"},
		{Name: "QuickZone Sousse", City: "Sousse", Governorate: "Sousse"},
		{Name: "QuickZone Monastir", City: "Monastir", Governorate: "Monastir"},
		{Name: "QuickZone Mahdia", City: "Mahdia", Governorate: "Mahdia"},
		{Name: "QuickZone Kairouan", City: "Kairouan", Governorate: "Kairouan"},
		{Name: "QuickZone Sfax", City: "Sfax", Governorate: "Sfax"},
		{Name: "QuickZone Gabès", City: "Gabès", Governorate: "Gabès"},
		{Name: "QuickZone Médenine", City: "Médenine", Governorate: "Médenine"},
		{Name: "QuickZone Gafsa", City: "Gafsa", Governorate: "Gafsa"},
		{Name: "QuickZone Kasserine", City: "Kasserine", Governorate: "Kasserine"},
		{Name: "QuickZone Jendouba", City: "Jendouba", Governorate: "Jendouba"},
	}

	var existingNames []string
	if err := db.Model(&agency.Agency{}).Pluck("name", &existingNames).Error; err != nil {
		log.Printf("❌ Failed to fetch existing agency names: %v", err)
		return
	}

	existingNamesMap := make(map[string]bool)
	for _, name := range existingNames {
		existingNamesMap[name] = true
	}

	var missingAgencies []agency.Agency
	for _, a := range agencies {
		if !existingNamesMap[a.Name] {
			missingAgencies = append(missingAgencies, a)
		}
	}

	log.Printf("📊 Data integrity check:")
	log.Printf("   Expected agencies: %d", len(agencies))
	log.Printf("   Existing agencies: %d", len(existingNames))
	log.Printf("   Missing agencies: %d", len(missingAgencies))

	if len(missingAgencies) == 0 {
		log.Printf("✅ All agencies are already present. No seeding needed.")
		return
	}

	log.Printf("🌱 Seeding %d missing agencies...", len(missingAgencies))

	successCount := 0
	failureCount := 0

	for _, a := range missingAgencies {
		if err := db.Create(&a).Error; err != nil {
			log.Printf("❌ Failed to seed agency %s: %v", a.Name, err)
			failureCount++
		} else {
			successCount++
		}
	}

	log.Printf("🎉 Seeding completed! Successfully inserted %d agencies, %d failures", successCount, failureCount)
}
