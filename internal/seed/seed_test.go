package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Obiagu00/CampusConnectNG/internal/store"
)

func TestApply_SeedsUsersAndProducts(t *testing.T) {
	st := store.New()
	Apply(st)

	products := st.Products()
	require.Len(t, products, 5)
	assert.Equal(t, "Scientific Calculator (Casio fx-991)", products[0].Name, "first seed entry must be newest")

	for _, p := range products {
		assert.NotZero(t, p.ID)
		assert.Greater(t, p.Price, 0.0)
		assert.NotZero(t, p.Seller.ID)
		assert.NotEmpty(t, p.Seller.Name)
		_, ok := st.FindUserByID(p.Seller.ID)
		assert.True(t, ok, "seller of %q must be a seeded user", p.Name)
	}
}

func TestApply_ProductIDsDistinctFromUserIDs(t *testing.T) {
	st := store.New()
	Apply(st)

	userIDs := make(map[int64]bool)
	for _, p := range st.Products() {
		userIDs[p.Seller.ID] = true
	}
	seen := make(map[int64]bool)
	for _, p := range st.Products() {
		assert.False(t, seen[p.ID], "duplicate product id %d", p.ID)
		seen[p.ID] = true
		assert.False(t, userIDs[p.ID], "product id %d collides with a user id", p.ID)
	}
}

func TestApply_NoSessionUser(t *testing.T) {
	st := store.New()
	Apply(st)

	_, ok := st.CurrentUser()
	assert.False(t, ok, "visitors must start logged out")
}

func TestApply_SeededUsersCanBeFoundByEmail(t *testing.T) {
	st := store.New()
	Apply(st)

	user, ok := st.FindUserByEmail("chiamaka@unilag.edu.ng")
	require.True(t, ok)
	assert.Equal(t, "Chiamaka Obi", user.Name)
	assert.Equal(t, "University of Lagos", user.UniversityName)
}

func TestUniversities_NonEmptyAndNamed(t *testing.T) {
	require.NotEmpty(t, Universities)
	for _, u := range Universities {
		assert.NotEmpty(t, u.Name)
		assert.Contains(t, []string{"Federal", "State", "Private"}, u.Type)
	}
}
