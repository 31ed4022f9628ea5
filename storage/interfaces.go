package storage

import "campscan/models"

// RowWriter stores a flattened set of availability records
type RowWriter interface {
	WriteRecords(records []*models.AvailabilityRecord) error
}
