// Package seed populates a fresh store with the demo universities, users and
// products the application ships with. The data only lives for the process
// lifetime; every restart begins from this baseline.
package seed

import (
	"log"

	"github.com/Obiagu00/CampusConnectNG/internal/models"
	"github.com/Obiagu00/CampusConnectNG/internal/store"
)

// Universities is the selectable seller-university option set.
var Universities = []models.University{
	{Name: "University of Lagos", Type: "Federal"},
	{Name: "University of Ibadan", Type: "Federal"},
	{Name: "Ahmadu Bello University", Type: "Federal"},
	{Name: "University of Nigeria, Nsukka", Type: "Federal"},
	{Name: "Obafemi Awolowo University", Type: "Federal"},
	{Name: "Lagos State University", Type: "State"},
	{Name: "Covenant University", Type: "Private"},
	{Name: "Babcock University", Type: "Private"},
}

// Apply inserts the demo users and products into the store. No session user
// is set; visitors start logged out.
func Apply(st *store.Store) {
	users := []models.User{
		{Name: "Chiamaka Obi", Email: "chiamaka@unilag.edu.ng", UniversityName: "University of Lagos"},
		{Name: "Emeka Eze", Email: "emeka@ui.edu.ng", UniversityName: "University of Ibadan"},
		{Name: "Fatima Bello", Email: "fatima@abu.edu.ng", UniversityName: "Ahmadu Bello University"},
	}
	for i := range users {
		users[i].ID = st.NextID()
		st.AddUser(users[i])
	}

	products := []models.Product{
		{
			Name:           "Scientific Calculator (Casio fx-991)",
			Description:    "Barely used Casio fx-991ES Plus, perfect for engineering courses.",
			Price:          7500,
			ImageURL:       "https://picsum.photos/seed/calc/600/400",
			UniversityName: users[0].UniversityName,
			Category:       "Electronics",
			Condition:      models.ConditionUsed,
			Seller:         users[0].AsSeller(),
		},
		{
			Name:           "Mini Fridge",
			Description:    "Compact hostel fridge, keeps drinks cold through the heat.",
			Price:          45000,
			ImageURL:       "https://picsum.photos/seed/fridge/600/400",
			UniversityName: users[1].UniversityName,
			Category:       "Appliances",
			Condition:      models.ConditionUsed,
			Seller:         users[1].AsSeller(),
		},
		{
			Name:           "Engineering Mathematics by K.A. Stroud",
			Description:    "Brand new copy, 7th edition. Never opened.",
			Price:          12000,
			ImageURL:       "https://picsum.photos/seed/stroud/600/400",
			UniversityName: users[2].UniversityName,
			Category:       "Books",
			Condition:      models.ConditionNew,
			Seller:         users[2].AsSeller(),
		},
		{
			Name:           "Study Desk and Chair",
			Description:    "Sturdy wooden desk with matching chair, pickup only.",
			Price:          18000,
			ImageURL:       "https://picsum.photos/seed/desk/600/400",
			UniversityName: users[0].UniversityName,
			Category:       "Furniture",
			Condition:      models.ConditionUsed,
			Seller:         users[0].AsSeller(),
		},
		{
			Name:           "Rechargeable Standing Fan",
			Description:    "New rechargeable fan, lasts up to 8 hours off power.",
			Price:          30000,
			ImageURL:       "https://picsum.photos/seed/fan/600/400",
			UniversityName: users[1].UniversityName,
			Category:       "Appliances",
			Condition:      models.ConditionNew,
			Seller:         users[1].AsSeller(),
		},
	}
	// Prepend in reverse so the first entry above ends up newest-first.
	for i := len(products) - 1; i >= 0; i-- {
		products[i].ID = st.NextID()
		st.PrependProduct(products[i])
	}

	log.Printf("Seeded %d demo users and %d demo products", len(users), len(products))
}
