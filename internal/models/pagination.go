package models

import "github.com/roleready/roleready-api/pkg/listquery"

// PaginationMeta is the pagination block of list responses
type PaginationMeta = listquery.Metadata

// ListParams carries the normalized page and sort of a list request
type ListParams struct {
	Page listquery.Page
	Sort listquery.Sort
}
