package catalog

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"medistore/internal/apperr"
	"medistore/internal/cache"
	"medistore/internal/dbtest"
	"medistore/internal/models"
)

type fixture struct {
	db     *gorm.DB
	svc    *Service
	seller models.User
	other  models.User
	pain   models.Category
	skin   models.Category
}

func newFixture(t *testing.T, c cache.Cache) *fixture {
	db := dbtest.Open(t)
	f := &fixture{
		db:     db,
		svc:    NewService(db, c, nil),
		seller: models.User{Email: "seller@example.com", Name: "Good Pharmacy", PasswordHash: "x", Role: models.RoleSeller},
		other:  models.User{Email: "other@example.com", Name: "Other Shop", PasswordHash: "x", Role: models.RoleSeller},
		pain:   models.Category{Name: "Pain relief"},
		skin:   models.Category{Name: "Dermatology"},
	}
	require.NoError(t, db.Create(&f.seller).Error)
	require.NoError(t, db.Create(&f.other).Error)
	require.NoError(t, db.Create(&f.pain).Error)
	require.NoError(t, db.Create(&f.skin).Error)
	return f
}

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func intp(n int) *int { return &n }

func strp(s string) *string { return &s }

func (f *fixture) add(t *testing.T, name, desc, p string, cat models.Category) *models.Medicine {
	m, err := f.svc.CreateMedicine(context.Background(), f.seller.ID, MedicineInput{
		Name: name, Description: desc, Price: price(p), Stock: intp(10), CategoryID: cat.ID,
	})
	require.NoError(t, err)
	return m
}

func TestListCategoriesSortedByName(t *testing.T) {
	f := newFixture(t, nil)
	cats, err := f.svc.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Dermatology", cats[0].Name)
	assert.Equal(t, "Pain relief", cats[1].Name)
}

func TestListCategoriesCached(t *testing.T) {
	mr := miniredis.RunT(t)
	rc := cache.NewRedisWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	f := newFixture(t, rc)
	ctx := context.Background()

	_, err := f.svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.True(t, mr.Exists(cache.CategoriesKey))

	require.NoError(t, f.db.Create(&models.Category{Name: "Allergy"}).Error)
	cats, err := f.svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 2, "served from cache")
}

func TestListMedicinesFilters(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	aspirin := f.add(t, "Aspirin", "Relieves HEADACHE", "4.50", f.pain)
	ibuprofen := f.add(t, "Ibuprofen", "Anti-inflammatory", "8", f.pain)
	cream := f.add(t, "Hydro Cream", "For itchy skin", "12.25", f.skin)

	all, err := f.svc.ListMedicines(ctx, Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	require.NotNil(t, all[0].Category)
	require.NotNil(t, all[0].Seller)
	assert.Equal(t, "Good Pharmacy", all[0].Seller.Name)
	assert.Empty(t, all[0].Seller.Email)

	ids := func(ms []models.Medicine) []string {
		out := []string{}
		for _, m := range ms {
			out = append(out, m.ID)
		}
		return out
	}

	got, err := f.svc.ListMedicines(ctx, Filter{CategoryID: f.skin.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{cream.ID}, ids(got))

	got, err = f.svc.ListMedicines(ctx, Filter{Search: "headache"})
	require.NoError(t, err)
	assert.Equal(t, []string{aspirin.ID}, ids(got))

	got, err = f.svc.ListMedicines(ctx, Filter{Search: "CREAM"})
	require.NoError(t, err)
	assert.Equal(t, []string{cream.ID}, ids(got))

	got, err = f.svc.ListMedicines(ctx, Filter{MinPrice: "5", MaxPrice: "10"})
	require.NoError(t, err)
	assert.Equal(t, []string{ibuprofen.ID}, ids(got))

	_, err = f.svc.ListMedicines(ctx, Filter{MinPrice: "cheap"})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestGetMedicine(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	m := f.add(t, "Aspirin", "", "4.50", f.pain)

	first, err := f.svc.GetMedicine(ctx, m.ID)
	require.NoError(t, err)
	second, err := f.svc.GetMedicine(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, "Pain relief", first.Category.Name)
	assert.Equal(t, "Good Pharmacy", first.Seller.Name)

	_, err = f.svc.GetMedicine(ctx, "missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestGetMedicineCachedIsStable(t *testing.T) {
	mr := miniredis.RunT(t)
	rc := cache.NewRedisWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	ctx := context.Background()
	f := newFixture(t, rc)
	m := f.add(t, "Aspirin", "", "4.50", f.pain)

	first, err := f.svc.GetMedicine(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, mr.Exists(cache.MedicineKey(m.ID)))
	second, err := f.svc.GetMedicine(ctx, m.ID)
	require.NoError(t, err)

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	assert.JSONEq(t, string(a), string(b))

	_, err = f.svc.UpdateMedicine(ctx, f.seller.ID, m.ID, MedicineUpdate{Stock: intp(1)})
	require.NoError(t, err)
	assert.False(t, mr.Exists(cache.MedicineKey(m.ID)))

	third, err := f.svc.GetMedicine(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, third.Stock)
}

func TestAddReview(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	m := f.add(t, "Aspirin", "", "4.50", f.pain)

	r, err := f.svc.AddReview(ctx, "cust-1", ReviewInput{MedicineID: m.ID, Rating: 5, Comment: " works "})
	require.NoError(t, err)
	assert.Equal(t, "works", r.Comment)
	assert.NotEmpty(t, r.ID)

	_, err = f.svc.AddReview(ctx, "cust-1", ReviewInput{MedicineID: m.ID, Rating: 2})
	require.NoError(t, err, "a second review is allowed")

	_, err = f.svc.AddReview(ctx, "cust-1", ReviewInput{MedicineID: m.ID})
	assert.ErrorIs(t, err, apperr.ErrValidation)
	_, err = f.svc.AddReview(ctx, "cust-1", ReviewInput{MedicineID: m.ID, Rating: 6})
	assert.ErrorIs(t, err, apperr.ErrValidation)
	_, err = f.svc.AddReview(ctx, "cust-1", ReviewInput{MedicineID: "missing", Rating: 3})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
