package repository

import (
	"context"

	"github.com/plateful/plateful/internal/domain"
	"gorm.io/gorm"
)

// InteractionExporter flattens the like/dislike sets and historical orders
// into immutable interaction records for offline training. Duplicates across
// kinds are preserved: a pair that was liked, disliked, and ordered yields
// three rows.
type InteractionExporter struct {
	db *gorm.DB
}

// NewInteractionExporter creates a new InteractionExporter.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *InteractionExporter: exporter instance bound to db.
func NewInteractionExporter(db *gorm.DB) *InteractionExporter {
	return &InteractionExporter{db: db}
}

type interactionRow struct {
	UserID      uint
	FoodID      uint
	Ingredients *string
}

// ExportInteractions scans all interaction sources and returns flattened
// records with the item's ingredient text attached. An empty store yields an
// empty slice, not an error.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - []domain.InteractionRecord: one record per like, dislike, and order line.
//   - error: non-nil if any scan fails.
func (e *InteractionExporter) ExportInteractions(ctx context.Context) ([]domain.InteractionRecord, error) {
	records := make([]domain.InteractionRecord, 0)

	likes, err := e.scanJoin(ctx, "food_likes")
	if err != nil {
		return nil, err
	}
	for _, row := range likes {
		records = append(records, newRecord(row, domain.InteractionLike))
	}

	dislikes, err := e.scanJoin(ctx, "food_dislikes")
	if err != nil {
		return nil, err
	}
	for _, row := range dislikes {
		records = append(records, newRecord(row, domain.InteractionDislike))
	}

	orderRecords, err := e.scanOrders(ctx)
	if err != nil {
		return nil, err
	}
	records = append(records, orderRecords...)

	return records, nil
}

func (e *InteractionExporter) scanJoin(ctx context.Context, table string) ([]interactionRow, error) {
	var rows []interactionRow
	err := e.db.WithContext(ctx).
		Table(table).
		Select(table+".user_id, "+table+".food_id, food_items.ingredients").
		Joins("JOIN food_items ON food_items.id = "+table+".food_id").
		Order(table + ".user_id, " + table + ".food_id").
		Scan(&rows).Error
	return rows, err
}

func (e *InteractionExporter) scanOrders(ctx context.Context) ([]domain.InteractionRecord, error) {
	var orders []domain.Order
	if err := e.db.WithContext(ctx).Order("id").Find(&orders).Error; err != nil {
		return nil, err
	}

	// Resolve ingredient text for each distinct ordered item once.
	ids := make([]uint, 0)
	seen := make(map[uint]bool)
	for _, o := range orders {
		for _, line := range o.Items {
			if !seen[line.FoodID] {
				seen[line.FoodID] = true
				ids = append(ids, line.FoodID)
			}
		}
	}

	ingredients := make(map[uint]string, len(ids))
	if len(ids) > 0 {
		var items []domain.FoodItem
		if err := e.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
			return nil, err
		}
		for i := range items {
			ingredients[items[i].ID] = items[i].IngredientsText()
		}
	}

	records := make([]domain.InteractionRecord, 0)
	for _, o := range orders {
		for _, line := range o.Items {
			records = append(records, domain.InteractionRecord{
				UserID:      o.UserID,
				FoodID:      line.FoodID,
				Kind:        domain.InteractionOrder,
				Ingredients: ingredients[line.FoodID],
			})
		}
	}
	return records, nil
}

func newRecord(row interactionRow, kind domain.InteractionKind) domain.InteractionRecord {
	text := ""
	if row.Ingredients != nil {
		text = *row.Ingredients
	}
	return domain.InteractionRecord{
		UserID:      row.UserID,
		FoodID:      row.FoodID,
		Kind:        kind,
		Ingredients: text,
	}
}
