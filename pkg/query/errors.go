package query

import "fmt"

// QueryBuilderError reports illegal builder-API sequencing or arguments:
// a second From call, Using misuse, an empty GroupBy, an order-by criterion
// of the wrong kind, or a clause invalid for the query's command kind.
type QueryBuilderError struct {
	Message string
}

func (e *QueryBuilderError) Error() string { return e.Message }

func builderErrorf(format string, args ...any) *QueryBuilderError {
	return &QueryBuilderError{Message: fmt.Sprintf(format, args...)}
}
