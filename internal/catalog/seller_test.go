package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medistore/internal/apperr"
	"medistore/internal/models"
)

func TestCreateMedicine(t *testing.T) {
	f := newFixture(t, nil)
	m, err := f.svc.CreateMedicine(context.Background(), f.seller.ID, MedicineInput{
		Name: " Aspirin ", Price: price("4.499"), CategoryID: f.pain.ID, Image: "/uploads/a.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "Aspirin", m.Name)
	assert.Equal(t, 0, m.Stock)
	assert.Equal(t, "4.5", m.Price.String())
	assert.Equal(t, f.seller.ID, m.SellerID)
	assert.Equal(t, "/uploads/a.png", m.Image)
}

func TestCreateMedicineValidation(t *testing.T) {
	f := newFixture(t, nil)
	cases := map[string]MedicineInput{
		"no name":          {Price: price("1"), CategoryID: f.pain.ID},
		"no price":         {Name: "A", CategoryID: f.pain.ID},
		"no category":      {Name: "A", Price: price("1")},
		"negative price":   {Name: "A", Price: price("-1"), CategoryID: f.pain.ID},
		"negative stock":   {Name: "A", Price: price("1"), Stock: intp(-2), CategoryID: f.pain.ID},
		"unknown category": {Name: "A", Price: price("1"), CategoryID: "nope"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.CreateMedicine(context.Background(), f.seller.ID, in)
			assert.ErrorIs(t, err, apperr.ErrValidation)
		})
	}
}

func TestSellerMedicinesOnlyOwn(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	mine := f.add(t, "Aspirin", "", "1", f.pain)
	_, err := f.svc.CreateMedicine(ctx, f.other.ID, MedicineInput{Name: "Other", Price: price("1"), CategoryID: f.pain.ID})
	require.NoError(t, err)

	list, err := f.svc.SellerMedicines(ctx, f.seller.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, mine.ID, list[0].ID)
	assert.NotNil(t, list[0].Category)
}

func TestUpdateMedicineByOwner(t *testing.T) {
	f := newFixture(t, nil)
	m := f.add(t, "Aspirin", "old", "1", f.pain)

	got, err := f.svc.UpdateMedicine(context.Background(), f.seller.ID, m.ID, MedicineUpdate{
		Name:        strp("Aspirin 500"),
		Description: strp("new"),
		Price:       price("2.25"),
		Stock:       intp(7),
		CategoryID:  &f.skin.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Aspirin 500", got.Name)
	assert.Equal(t, "new", got.Description)
	assert.Equal(t, "2.25", got.Price.String())
	assert.Equal(t, 7, got.Stock)
	assert.Equal(t, f.skin.ID, got.CategoryID)
	assert.Equal(t, "Dermatology", got.Category.Name)
}

func TestUpdateMedicineNotOwned(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	m := f.add(t, "Aspirin", "", "1", f.pain)

	_, err := f.svc.UpdateMedicine(ctx, f.other.ID, m.ID, MedicineUpdate{Name: strp("Stolen"), Stock: intp(0)})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	var stored models.Medicine
	require.NoError(t, f.db.First(&stored, "id = ?", m.ID).Error)
	assert.Equal(t, "Aspirin", stored.Name)
	assert.Equal(t, 10, stored.Stock)

	_, err = f.svc.UpdateMedicine(ctx, f.seller.ID, "missing", MedicineUpdate{Name: strp("x")})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdateMedicineRejectsBadValues(t *testing.T) {
	f := newFixture(t, nil)
	m := f.add(t, "Aspirin", "", "1", f.pain)
	cases := map[string]MedicineUpdate{
		"blank name":       {Name: strp(" ")},
		"negative price":   {Price: price("-0.01")},
		"negative stock":   {Stock: intp(-1)},
		"unknown category": {CategoryID: strp("nope")},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.UpdateMedicine(context.Background(), f.seller.ID, m.ID, in)
			assert.ErrorIs(t, err, apperr.ErrValidation)
		})
	}
}

func TestDeleteMedicine(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	m := f.add(t, "Aspirin", "", "1", f.pain)

	err := f.svc.DeleteMedicine(ctx, f.other.ID, m.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = f.svc.GetMedicine(ctx, m.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteMedicine(ctx, f.seller.ID, m.ID))
	_, err = f.svc.GetMedicine(ctx, m.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
