package analysis

import (
	"github.com/maroof-insights/storefront-dashboard/internal/dataset"
	"github.com/maroof-insights/storefront-dashboard/internal/models"
)

func store(name string, rating float64, reviews int64) models.StoreRecord {
	return models.StoreRecord{
		Name:         name,
		Rating:       models.FloatPtr(rating),
		TotalReviews: models.IntPtr(reviews),
	}
}

func typed(r models.StoreRecord, primary, freeText *string) models.StoreRecord {
	r.BusinessType = primary
	r.OtherType = freeText
	return r
}

func table(records ...models.StoreRecord) *dataset.Table {
	return dataset.NewTable("test", records)
}
