package models

// Requests for the analytics HTTP endpoints. Defined in domain for
// consistency and reuse.

type SnapshotRequest struct {
	Symbol string `param:"symbol" json:"symbol" validate:"required,min=2,max=20"`
}

type HistoryRequest struct {
	Symbol string `param:"symbol" json:"symbol" validate:"required,min=2,max=20"`
	Limit  int    `query:"limit" json:"limit" default:"168" validate:"gte=1,lte=168"`
}
