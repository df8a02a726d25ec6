package cache

import "time"

// TTL is how long catalog reads stay cached.
const TTL = 5 * time.Minute

// CategoriesKey holds the full category list.
const CategoriesKey = "categories:all"

// MedicineKey holds one medicine's detail view.
func MedicineKey(id string) string {
	return "medicines:" + id
}
