package model

import "github.com/campdir/campdir/rest/query"

// ListResponse is the envelope wrapping every list endpoint's payload.
type ListResponse struct {
	Success    bool              `json:"success"`
	Count      int               `json:"count"`
	Pagination *query.Pagination `json:"pagination,omitempty"`
	Data       any               `json:"data"`
}

// NewListResponse wraps a page of results in the standard envelope.
func NewListResponse(data any, count int, pagination query.Pagination) *ListResponse {
	return &ListResponse{
		Success:    true,
		Count:      count,
		Pagination: &pagination,
		Data:       data,
	}
}

// DataResponse is the envelope wrapping single-document payloads.
type DataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// NewDataResponse wraps a single result in the standard envelope.
func NewDataResponse(data any) *DataResponse {
	return &DataResponse{Success: true, Data: data}
}

// TokenResponse is the payload returned by login, register and password
// reset.
type TokenResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}
