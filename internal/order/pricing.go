package order

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"medistore/internal/apperr"
	"medistore/internal/models"
)

// stockDemand is the total quantity requested for one medicine.
type stockDemand struct {
	medicine *models.Medicine
	quantity int
}

// buildOrder reads every referenced medicine in one query and checks the
// items in request order. Repeated medicine ids are summed against a single
// stock snapshot. Demand is returned in first-seen order.
func buildOrder(tx *gorm.DB, in PlaceInput) (*models.Order, []stockDemand, error) {
	ids := make([]string, 0, len(in.Items))
	for _, it := range in.Items {
		ids = append(ids, it.MedicineID)
	}
	var meds []models.Medicine
	if err := tx.Where("id IN ?", ids).Find(&meds).Error; err != nil {
		return nil, nil, fmt.Errorf("load medicines: %w", err)
	}
	byID := make(map[string]*models.Medicine, len(meds))
	for i := range meds {
		byID[meds[i].ID] = &meds[i]
	}

	order := &models.Order{
		CustomerID:      in.CustomerID,
		ShippingAddress: strings.TrimSpace(in.ShippingAddress),
		TotalPrice:      decimal.Zero,
		Items:           make([]models.OrderItem, 0, len(in.Items)),
	}
	var demand []stockDemand
	index := map[string]int{}
	for pos, it := range in.Items {
		med, ok := byID[it.MedicineID]
		if !ok {
			return nil, nil, apperr.New(apperr.NotFound, "Medicine %s not found", it.MedicineID)
		}
		i, seen := index[med.ID]
		if !seen {
			i = len(demand)
			index[med.ID] = i
			demand = append(demand, stockDemand{medicine: med})
		}
		// demand never exceeds stock, so the subtraction cannot overflow
		if it.Quantity > med.Stock-demand[i].quantity {
			return nil, nil, insufficient(med)
		}
		demand[i].quantity += it.Quantity

		item := models.OrderItem{
			Position:   pos,
			MedicineID: med.ID,
			Quantity:   it.Quantity,
			Price:      med.Price,
		}
		order.Items = append(order.Items, item)
		order.TotalPrice = order.TotalPrice.Add(item.Subtotal())
	}
	return order, demand, nil
}

func insufficient(med *models.Medicine) error {
	return apperr.New(apperr.InsufficientStock, "Insufficient stock for %s", med.Name)
}
