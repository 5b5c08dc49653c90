package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Anu1650/team-mange-sam/internal/models"
	"github.com/Anu1650/team-mange-sam/internal/store"
)

func formatAmount(a models.Amount) string {
	return "₹" + strconv.FormatFloat(float64(a), 'f', -1, 64)
}

func validateAmount(field string, a models.Amount) error {
	if !a.Valid() {
		return fmt.Errorf("%w: %s must be a non-negative number", ErrValidation, field)
	}
	return nil
}

// CreateExpense は経費を記録します。ステータスは pending で作成されます
func (s *Service) CreateExpense(ctx context.Context, e models.Expense) (models.Expense, error) {
	if err := required("description", e.Description); err != nil {
		return models.Expense{}, err
	}
	if err := validateAmount("amount", e.Amount); err != nil {
		return models.Expense{}, err
	}

	e.ID = s.newID()
	e.Status = "pending"
	e.CreatedAt = s.timestamp()

	err := s.store.Mutate(ctx, func(d *models.Dataset) (store.Change, error) {
		d.Expenses = append(d.Expenses, e)
		return changed(models.Expenses, e.CreatedBy, "expense_added",
			fmt.Sprintf("Added expense: %s - %s", e.Description, formatAmount(e.Amount))), nil
	})
	if err != nil {
		return models.Expense{}, err
	}
	return e, nil
}

func (s *Service) UpdateExpense(ctx context.Context, id string, patch Patch) (models.Expense, error) {
	var out models.Expense
	err := s.store.Mutate(ctx, func(d *models.Dataset) (store.Change, error) {
		idx := indexOf(d.Expenses, func(e models.Expense) string { return e.ID }, id)
		if idx < 0 {
			return store.Change{}, notFound("expense")
		}
		e := d.Expenses[idx]
		if err := mergePatch(&e, patch); err != nil {
			return store.Change{}, err
		}
		if err := validateAmount("amount", e.Amount); err != nil {
			return store.Change{}, err
		}
		d.Expenses[idx] = e
		out = e
		return changed(models.Expenses, patch.StringField("updatedBy"), "expense_updated", "Updated expense: "+e.Description), nil
	})
	return out, err
}

// CreateIncome は売上・入金を記録します
func (s *Service) CreateIncome(ctx context.Context, in models.Income) (models.Income, error) {
	if err := required("description", in.Description); err != nil {
		return models.Income{}, err
	}
	if err := validateAmount("amount", in.Amount); err != nil {
		return models.Income{}, err
	}

	in.ID = s.newID()
	in.CreatedAt = s.timestamp()

	err := s.store.Mutate(ctx, func(d *models.Dataset) (store.Change, error) {
		d.Income = append(d.Income, in)
		return changed(models.Incomes, in.CreatedBy, "income_added",
			fmt.Sprintf("Added income: %s - %s", in.Description, formatAmount(in.Amount))), nil
	})
	if err != nil {
		return models.Income{}, err
	}
	return in, nil
}
