package models

// Event is one immutable audit record. SortKey is "<unix-millis>#<suffix>"
// where the suffix disambiguates same-millisecond writes; range reads order
// by it. Once written an event is never mutated or deleted.
type Event struct {
	Subject string         `dynamodbav:"-" db:"subject"`
	SortKey string         `dynamodbav:"sk" db:"sk"`
	Type    string         `dynamodbav:"type" db:"type"`
	Status  string         `dynamodbav:"status" db:"status"`
	Message string         `dynamodbav:"message" db:"message"`
	Data    map[string]any `dynamodbav:"data" db:"data"`
	TS      int64          `dynamodbav:"ts" db:"ts"`
}
