package storage

import (
	"errors"

	"github.com/lib/pq"
)

// uniqueViolation — код ошибки Postgres для нарушения уникального индекса
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
